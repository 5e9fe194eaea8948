package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/telemetry"
	"github.com/samdwyer/tileroads/internal/tiles"
)

// failSafeFactor bounds the selection loop at width*height*failSafeFactor steps.
const failSafeFactor = 10

// State is the solver lifecycle.
type State int

const (
	// StateUninitialized - no cell has been collapsed yet
	StateUninitialized State = iota
	// StateCollapsing - seeded, selection steps in progress
	StateCollapsing
	// StateDone - the selection loop ran out of work
	StateDone
	// StateFailed - the fail-safe step cap stopped the run
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCollapsing:
		return "collapsing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result summarizes one generation run.
type Result struct {
	Grid           *Grid
	State          State
	Seed           Point // First cell collapsed
	Steps          int   // Selection steps taken after the seed
	Collapsed      int
	Contradictions []Point // Cells left with an empty domain
	Incomplete     bool    // True when any cell is left uncollapsed
}

// Err returns nil for a complete run, otherwise an error wrapping
// ErrIncomplete. The result is still usable either way.
func (r *Result) Err() error {
	if !r.Incomplete {
		return nil
	}
	return fmt.Errorf("%w: %s after %d steps, %d/%d cells collapsed, %d contradictions",
		ErrIncomplete, r.State, r.Steps, r.Collapsed, r.Grid.Width()*r.Grid.Height(), len(r.Contradictions))
}

// Solver collapses a Store cell by cell, propagating edge constraints after
// every collapse. It never backtracks: a collapsed cell is final even when a
// later contradiction makes the whole assignment inconsistent.
type Solver struct {
	store    *Store
	rng      *rand.Rand
	state    State
	seed     Point
	steps    int
	maxSteps int
	log      *logrus.Entry
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithMaxSteps overrides the fail-safe step cap.
func WithMaxSteps(n int) SolverOption {
	return func(s *Solver) { s.maxSteps = n }
}

// NewSolver creates a solver over store drawing every random choice from rng.
func NewSolver(store *Store, rng *rand.Rand, opts ...SolverOption) *Solver {
	s := &Solver{
		store:    store,
		rng:      rng,
		state:    StateUninitialized,
		maxSteps: store.Width() * store.Height() * failSafeFactor,
		log:      logger.For("solver"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Solver) State() State { return s.state }

// Steps returns the number of selection steps taken so far.
func (s *Solver) Steps() int { return s.steps }

// Seed collapses one uniformly chosen cell to a uniformly chosen variant and
// propagates from it.
func (s *Solver) Seed() Point {
	p := Point{s.rng.Intn(s.store.Width()), s.rng.Intn(s.store.Height())}
	s.seed = p
	s.state = StateCollapsing
	if s.collapseRandom(p) {
		s.propagate(p)
	}
	return p
}

// SelectCell returns the uncollapsed cell with the smallest non-empty
// domain. Ties go to the first cell in scan order. ok is false when no
// such cell exists.
func (s *Solver) SelectCell() (p Point, ok bool) {
	best := -1
	s.store.each(func(q Point, c *Cell) {
		if c.Collapsed() {
			return
		}
		options := len(c.domain)
		if options > 0 && (best < 0 || options < best) {
			best = options
			p = q
		}
	})
	return p, best > 0
}

// Step runs one selection step: pick the most constrained cell, collapse it
// at random and propagate. It returns false when there was nothing to pick.
func (s *Solver) Step() bool {
	p, ok := s.SelectCell()
	if !ok {
		return false
	}
	s.steps++
	if s.collapseRandom(p) {
		s.propagate(p)
	}
	return true
}

// Run seeds the store if needed and collapses until every cell is fixed,
// no selectable cell remains, or the fail-safe cap is hit.
func (s *Solver) Run(ctx context.Context) *Result {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	if s.state == StateUninitialized {
		s.Seed()
	}

	for !s.store.AllCollapsed() {
		if s.steps >= s.maxSteps {
			s.state = StateFailed
			s.log.WithField("max_steps", s.maxSteps).
				Warn("Collapse loop cap reached; some cells may remain uncollapsed")
			break
		}
		if !s.Step() {
			break
		}
	}
	if s.state != StateFailed {
		s.state = StateDone
	}

	grid := s.store.Grid()
	result := &Result{
		Grid:           grid,
		State:          s.state,
		Seed:           s.seed,
		Steps:          s.steps,
		Collapsed:      s.store.CollapsedCount(),
		Contradictions: s.store.Contradictions(),
		Incomplete:     !s.store.AllCollapsed(),
	}

	fields := logrus.Fields{
		"width":          s.store.Width(),
		"height":         s.store.Height(),
		"steps":          result.Steps,
		"collapsed":      result.Collapsed,
		"contradictions": len(result.Contradictions),
		"roads":          len(grid.roads),
		"non_roads":      len(grid.nonRoads),
	}
	if result.Incomplete {
		s.log.WithFields(fields).Warn("Generation incomplete")
	} else {
		s.log.WithFields(fields).Debug("Generation complete")
	}

	span.SetAttributes(
		attribute.Int("world.width", s.store.Width()),
		attribute.Int("world.height", s.store.Height()),
		attribute.Int("world.steps", result.Steps),
		attribute.Int("world.collapsed", result.Collapsed),
		attribute.Int("world.contradictions", len(result.Contradictions)),
		attribute.Int("world.roads", len(grid.roads)),
		attribute.Bool("world.incomplete", result.Incomplete),
		attribute.String("world.state", result.State.String()),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return result
}

// Generate builds a store over catalog and solves it in one call.
func Generate(ctx context.Context, width, height int, catalog *tiles.Catalog, rng *rand.Rand, opts ...StoreOption) (*Result, error) {
	store, err := NewStore(width, height, catalog, opts...)
	if err != nil {
		return nil, err
	}
	return NewSolver(store, rng).Run(ctx), nil
}

// collapseRandom fixes p to a uniformly chosen candidate. It reports false
// when p has nothing left to choose from.
func (s *Solver) collapseRandom(p Point) bool {
	c := s.store.cell(p)
	if len(c.domain) == 0 {
		s.log.WithField("cell", p.String()).Warn("No options to collapse")
		return false
	}
	v := c.domain[s.rng.Intn(len(c.domain))]
	if err := s.store.Collapse(p, v); err != nil {
		s.log.WithError(err).Error("Collapse rejected a domain member")
		return false
	}
	return true
}

// propagate filters the neighbors of collapsed cells breadth-first, starting
// at start. A neighbor keeps only variants whose facing edge equals the
// collapsed cell's edge exactly. A neighbor left with one candidate is
// collapsed on the spot and propagates in turn; one left with none is a
// contradiction and stays as it is.
func (s *Solver) propagate(start Point) {
	queue := []Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Shrunk but still superposed cells constrain nothing.
		cell := s.store.cell(current)
		if !cell.Collapsed() {
			continue
		}

		for _, d := range tiles.Directions {
			n := current.Step(d)
			if !s.store.InBounds(n) {
				continue
			}
			neighbor := s.store.cell(n)
			if neighbor.Collapsed() {
				continue
			}

			removed, err := s.store.Restrict(n, func(v *tiles.Variant) bool {
				return v.Compatible(cell.resolved, d)
			})
			if errors.Is(err, ErrContradiction) {
				s.log.WithFields(logrus.Fields{
					"cell": n.String(),
					"from": current.String(),
				}).Debug("Contradiction")
				continue
			}
			if len(neighbor.domain) == 0 {
				continue
			}

			if len(neighbor.domain) == 1 {
				if err := s.store.Collapse(n, neighbor.domain[0]); err == nil {
					queue = append(queue, n)
				}
			} else if removed > 0 {
				queue = append(queue, n)
			}
		}
	}
}
