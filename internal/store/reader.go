package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/world"
)

// Cell is one exported tile.
type Cell struct {
	Hilbert int
	Point   world.Point
	Variant string
	Road    bool
}

// Reader reads a database written by Writer.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader opens filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT x, y FROM routes WHERE route_id = ? ORDER BY seq")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// VisitCells calls visitor for every cell in Hilbert order.
func (r *Reader) VisitCells(visitor func(Cell) error) error {
	rows, err := r.db.Query("SELECT hilbert, x, y, variant, road FROM cells ORDER BY hilbert")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c Cell
		if err := rows.Scan(&c.Hilbert, &c.Point.X, &c.Point.Y, &c.Variant, &c.Road); err != nil {
			return err
		}
		if err := visitor(c); err != nil {
			return err
		}
	}

	return rows.Err()
}

// ReadRoute returns the stored path of a route, or an empty path when the
// id is unknown.
func (r *Reader) ReadRoute(id string) (nav.Path, error) {
	rows, err := r.stmt.Query(id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var path nav.Path
	for rows.Next() {
		var p world.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		path = append(path, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return path, nil
}

// RouteIDs lists stored route ids of the given kind in insertion order.
func (r *Reader) RouteIDs(kind string) ([]string, error) {
	rows, err := r.db.Query("SELECT route_id FROM routes WHERE kind = ? AND seq = 0 ORDER BY rowid", kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
