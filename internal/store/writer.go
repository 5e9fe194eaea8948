// Package store exports generated maps and their routes to SQLite.
//
// Cells carry a Hilbert curve code so that spatially close tiles sit close
// together in the index. Callers must register the sqlite3 driver, e.g.
// import _ "github.com/mattn/go-sqlite3", before using this package.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/hilbert"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/world"
)

// Route kinds stored in the routes table.
const (
	KindAgent     = "agent"
	KindObjective = "objective"
)

// Route is a named path to export.
type Route struct {
	ID   string
	Kind string
	Path nav.Path
}

// Writer writes one map per database file.
type Writer struct {
	db        *sql.DB
	cellStmt  *sql.Stmt
	routeStmt *sql.Stmt
	log       *logrus.Entry
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *logrus.Entry
}

// WriterOption configures NewWriter.
type WriterOption func(*writerConfig)

// WithMetadata stores key/value pairs in the metadata table.
func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// WithLogger overrides the component logger.
func WithLogger(l *logrus.Entry) WriterOption {
	return func(c *writerConfig) { c.Logger = l }
}

// NewWriter creates the schema in a new database at filePath.
//
// The returned Writer must be closed after use to release database resources.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: logger.For("store"),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE cells (
			hilbert INTEGER,
			x INTEGER,
			y INTEGER,
			variant TEXT,
			road INTEGER
		);
		CREATE TABLE routes (
			route_id TEXT,
			kind TEXT,
			seq INTEGER,
			x INTEGER,
			y INTEGER
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	cellStmt, err := db.Prepare("INSERT INTO cells (hilbert, x, y, variant, road) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	routeStmt, err := db.Prepare("INSERT INTO routes (route_id, kind, seq, x, y) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		cellStmt.Close()
		return nil, err
	}

	return &Writer{db: db, cellStmt: cellStmt, routeStmt: routeStmt, log: config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.cellStmt.Close(), w.routeStmt.Close(), w.db.Close())
}

// WriteGrid inserts every placed cell of g in one transaction. Unplaced
// cells are skipped.
func (w *Writer) WriteGrid(ctx context.Context, g *world.Grid) error {
	curve, err := NewCurve(g.Width(), g.Height())
	if err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt := tx.StmtContext(ctx, w.cellStmt)
	for _, pl := range g.Placements() {
		code, err := curve.Code(pl.Point)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.ExecContext(ctx, code, pl.X, pl.Y, pl.Variant.ID, pl.Variant.Road); err != nil {
			tx.Rollback()
			return fmt.Errorf("write cell %s: %w", pl.Point, err)
		}
	}
	return tx.Commit()
}

// WriteRoute inserts the cells of r in path order.
func (w *Writer) WriteRoute(ctx context.Context, r Route) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt := tx.StmtContext(ctx, w.routeStmt)
	for i, p := range r.Path {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Kind, i, p.X, p.Y); err != nil {
			tx.Rollback()
			return fmt.Errorf("write route %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// Finalize builds the lookup indexes. Call it once after all writes.
func (w *Writer) Finalize() error {
	w.log.Debug("Creating indexes")
	_, err := w.db.Exec(`
		CREATE UNIQUE INDEX cell_index ON cells (hilbert);
		CREATE INDEX route_index ON routes (route_id, seq);
	`)
	return err
}

// Curve maps grid cells to Hilbert codes. The curve covers the smallest
// power-of-two square holding the grid.
type Curve struct {
	h *hilbert.Hilbert
}

// NewCurve returns a curve covering a width x height grid.
func NewCurve(width, height int) (*Curve, error) {
	side := 1
	for side < width || side < height {
		side <<= 1
	}
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		return nil, err
	}
	return &Curve{h: h}, nil
}

// Code returns the Hilbert index of p.
func (c *Curve) Code(p world.Point) (int, error) {
	return c.h.MapInverse(p.X, p.Y)
}

// Point is the inverse of Code.
func (c *Curve) Point(code int) (world.Point, error) {
	x, y, err := c.h.Map(code)
	if err != nil {
		return world.Point{}, err
	}
	return world.Point{X: x, Y: y}, nil
}
