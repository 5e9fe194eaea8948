// Package route picks start and goal road cells and asks a pathfinder to
// connect them, for autonomous agents and for the player objective.
package route

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/telemetry"
	"github.com/samdwyer/tileroads/internal/world"
)

var (
	ErrNoPath        = errors.New("route: no path found")
	ErrNoObjective   = errors.New("route: no objective route found")
	ErrInvalidConfig = errors.New("route: invalid configuration")
)

const (
	DefaultMaxAttemptsPerAgent  = 50
	DefaultGoalResampleAttempts = 50
	DefaultMaxObjectiveStarts   = 20
)

// Config bounds the planner's search effort.
type Config struct {
	MaxAttemptsPerAgent  int // Start/goal pairs tried per agent
	GoalResampleAttempts int // Redraws while the goal equals the start
	MaxObjectiveStarts   int // Shuffled start cells tried for the objective
}

// DefaultConfig returns the stock limits.
func DefaultConfig() Config {
	return Config{
		MaxAttemptsPerAgent:  DefaultMaxAttemptsPerAgent,
		GoalResampleAttempts: DefaultGoalResampleAttempts,
		MaxObjectiveStarts:   DefaultMaxObjectiveStarts,
	}
}

// Validate checks that every limit is positive.
func (c Config) Validate() error {
	switch {
	case c.MaxAttemptsPerAgent < 1:
		return fmt.Errorf("%w: MaxAttemptsPerAgent must be positive, got %d", ErrInvalidConfig, c.MaxAttemptsPerAgent)
	case c.GoalResampleAttempts < 1:
		return fmt.Errorf("%w: GoalResampleAttempts must be positive, got %d", ErrInvalidConfig, c.GoalResampleAttempts)
	case c.MaxObjectiveStarts < 1:
		return fmt.Errorf("%w: MaxObjectiveStarts must be positive, got %d", ErrInvalidConfig, c.MaxObjectiveStarts)
	}
	return nil
}

// Route is a planned trip between two road cells.
type Route struct {
	Start    world.Point
	Goal     world.Point
	Path     nav.Path
	Attempts int
}

// AgentResult is the outcome for one agent of a batch. Exactly one of
// Route.Path and Err is set.
type AgentResult struct {
	Index int
	Route Route
	Err   error
}

// Planner draws random road endpoints and validates them with a
// pathfinder. It shares its rng with the rest of the session and is not
// safe for concurrent use.
type Planner struct {
	finder nav.Pathfinder
	roads  []world.Point
	rng    *rand.Rand
	cfg    Config
	log    *logrus.Entry
}

// NewPlanner creates a planner over the given road cells.
func NewPlanner(finder nav.Pathfinder, roads []world.Point, rng *rand.Rand, cfg Config) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Planner{
		finder: finder,
		roads:  append([]world.Point(nil), roads...),
		rng:    rng,
		cfg:    cfg,
		log:    logger.For("route"),
	}, nil
}

// Roads returns the number of road cells the planner draws from.
func (p *Planner) Roads() int { return len(p.roads) }

// RandomRoad returns a uniformly chosen road cell.
func (p *Planner) RandomRoad() (world.Point, bool) {
	if len(p.roads) == 0 {
		return world.Point{}, false
	}
	return p.roads[p.rng.Intn(len(p.roads))], true
}

// AgentRoute samples start/goal pairs until the pathfinder connects one or
// the attempt budget runs out. With a single road cell the route is that
// cell alone.
func (p *Planner) AgentRoute(ctx context.Context) (Route, error) {
	tracer := telemetry.Tracer("route")
	ctx, span := tracer.Start(ctx, "route.agent")
	defer span.End()

	if len(p.roads) == 0 {
		err := fmt.Errorf("%w: no road cells", ErrNoPath)
		span.SetStatus(codes.Error, err.Error())
		return Route{}, err
	}

	attempts := 0
	route, err := backoff.Retry(ctx, func() (Route, error) {
		attempts++
		start := p.roads[p.rng.Intn(len(p.roads))]
		goal := p.sampleGoal(start)

		path, ok := p.finder.FindPath(start, goal)
		if !ok || len(path) == 0 {
			return Route{}, fmt.Errorf("%w: %v -> %v", ErrNoPath, start, goal)
		}
		return Route{Start: start, Goal: goal, Path: path}, nil
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(uint(p.cfg.MaxAttemptsPerAgent)),
		backoff.WithNotify(func(err error, _ time.Duration) {
			p.log.WithField("attempt", attempts).Debug("No valid path, retrying")
		}),
	)

	span.SetAttributes(attribute.Int("route.attempts", attempts))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Route{}, fmt.Errorf("after %d attempts: %w", attempts, err)
	}
	route.Attempts = attempts
	span.SetAttributes(attribute.Int("route.length", route.Path.Len()))
	return route, nil
}

// sampleGoal draws a goal, redrawing a bounded number of times while it
// equals start. The bound only matters when more than one road exists.
func (p *Planner) sampleGoal(start world.Point) world.Point {
	goal := start
	if len(p.roads) < 2 {
		return goal
	}
	for i := 0; goal == start && i < p.cfg.GoalResampleAttempts; i++ {
		goal = p.roads[p.rng.Intn(len(p.roads))]
	}
	return goal
}

// AgentRoutes plans n independent agent routes. A failed agent is reported
// in its result and never stops the batch.
func (p *Planner) AgentRoutes(ctx context.Context, n int) []AgentResult {
	results := make([]AgentResult, n)
	for i := range results {
		route, err := p.AgentRoute(ctx)
		results[i] = AgentResult{Index: i, Route: route, Err: err}

		entry := p.log.WithField("agent", i+1)
		if err != nil {
			entry.WithError(err).Warn("Failed to route agent")
			continue
		}
		entry.WithFields(logrus.Fields{
			"start": route.Start.String(),
			"goal":  route.Goal.String(),
			"steps": nav.PathCost(route.Path),
		}).Debug("Agent routed")
	}
	return results
}
