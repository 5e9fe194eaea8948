package world

import (
	"fmt"

	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
)

const (
	// Default map dimensions
	DefaultWidth  = 10
	DefaultHeight = 10

	DefaultTileSize = 1.0
)

// Store is the mutable per-cell domain substrate the solver works on.
// It is owned by a single generation session and is not safe for
// concurrent use.
type Store struct {
	width     int
	height    int
	tileSize  float64
	cells     []Cell // indexed by x*height + y
	collapsed int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTileSize sets the world-space edge length of one cell.
func WithTileSize(size float64) StoreOption {
	return func(s *Store) { s.tileSize = size }
}

// NewStore creates a width × height store where every cell is superposed
// over the whole catalog.
func NewStore(width, height int, catalog *tiles.Catalog, opts ...StoreOption) (*Store, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	s := &Store{
		width:    width,
		height:   height,
		tileSize: DefaultTileSize,
		cells:    make([]Cell, width*height),
	}
	for _, opt := range opts {
		opt(s)
	}

	all := catalog.All()
	for i := range s.cells {
		domain := make([]*tiles.Variant, len(all))
		copy(domain, all)
		s.cells[i].domain = domain
	}
	return s, nil
}

// Width returns the number of columns.
func (s *Store) Width() int { return s.width }

// Height returns the number of rows.
func (s *Store) Height() int { return s.height }

// TileSize returns the world-space edge length of one cell.
func (s *Store) TileSize() float64 { return s.tileSize }

// InBounds reports whether p lies on the grid.
func (s *Store) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height
}

// WorldPos returns the world position of p: (x·tileSize, 0, y·tileSize).
func (s *Store) WorldPos(p Point) vmath.Vec3 {
	return vmath.Vec3{X: float64(p.X) * s.tileSize, Z: float64(p.Y) * s.tileSize}
}

func (s *Store) cell(p Point) *Cell {
	return &s.cells[p.X*s.height+p.Y]
}

func (s *Store) checked(p Point) (*Cell, error) {
	if !s.InBounds(p) {
		return nil, fmt.Errorf("%w: %v on %dx%d", ErrInvalidCoordinates, p, s.width, s.height)
	}
	return s.cell(p), nil
}

// Domain returns a copy of the candidates still allowed at p.
func (s *Store) Domain(p Point) ([]*tiles.Variant, error) {
	c, err := s.checked(p)
	if err != nil {
		return nil, err
	}
	return c.Domain(), nil
}

// IsCollapsed reports whether p has been fixed to one variant.
func (s *Store) IsCollapsed(p Point) (bool, error) {
	c, err := s.checked(p)
	if err != nil {
		return false, err
	}
	return c.Collapsed(), nil
}

// Resolved returns the variant p collapsed to, or nil while superposed.
func (s *Store) Resolved(p Point) (*tiles.Variant, error) {
	c, err := s.checked(p)
	if err != nil {
		return nil, err
	}
	return c.Resolved(), nil
}

// Collapse fixes p to v. The variant must still be in p's domain and p must
// not be collapsed yet. Only p changes; propagation is the solver's job.
func (s *Store) Collapse(p Point, v *tiles.Variant) error {
	c, err := s.checked(p)
	if err != nil {
		return err
	}
	if c.Collapsed() {
		return fmt.Errorf("%w: %v", ErrAlreadyCollapsed, p)
	}
	if v == nil || !c.has(v) {
		return fmt.Errorf("%w: %v at %v", ErrNotInDomain, v, p)
	}

	c.resolved = v
	c.domain = nil
	c.worldPos = s.WorldPos(p)
	s.collapsed++
	return nil
}

// Restrict removes every candidate at p for which keep returns false and
// returns how many were removed. If the removal leaves an uncollapsed cell
// with nothing, the count comes back together with ErrContradiction; the
// caller decides what to do about it. Collapsed cells are never restricted.
func (s *Store) Restrict(p Point, keep func(*tiles.Variant) bool) (int, error) {
	c, err := s.checked(p)
	if err != nil {
		return 0, err
	}
	if c.Collapsed() {
		return 0, fmt.Errorf("%w: %v", ErrAlreadyCollapsed, p)
	}

	kept := c.domain[:0]
	for _, v := range c.domain {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	removed := len(c.domain) - len(kept)
	c.domain = kept

	if len(kept) == 0 && removed > 0 {
		return removed, fmt.Errorf("%w: %v", ErrContradiction, p)
	}
	return removed, nil
}

// AllCollapsed reports whether every cell has been fixed.
func (s *Store) AllCollapsed() bool {
	return s.collapsed == len(s.cells)
}

// CollapsedCount returns the number of fixed cells.
func (s *Store) CollapsedCount() int {
	return s.collapsed
}

// Contradictions returns every superposed cell whose domain is empty, in
// scan order.
func (s *Store) Contradictions() []Point {
	var out []Point
	s.each(func(p Point, c *Cell) {
		if c.Contradicted() {
			out = append(out, p)
		}
	})
	return out
}

// each visits cells in scan order: x-major, then y.
func (s *Store) each(fn func(Point, *Cell)) {
	for x := 0; x < s.width; x++ {
		for y := 0; y < s.height; y++ {
			p := Point{x, y}
			fn(p, s.cell(p))
		}
	}
}
