package route

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/telemetry"
)

// ObjectiveRoute finds a route of at least minLen cells for the player.
// Road cells are shuffled; up to MaxObjectiveStarts of them are tried as
// start, each against every other road cell as goal in shuffled order.
// Goals closer than minLen by Manhattan distance are skipped without a
// search. The first qualifying path wins.
func (p *Planner) ObjectiveRoute(ctx context.Context, minLen int) (Route, error) {
	tracer := telemetry.Tracer("route")
	ctx, span := tracer.Start(ctx, "route.objective")
	defer span.End()
	span.SetAttributes(attribute.Int("route.min_length", minLen))

	if minLen < 1 {
		err := fmt.Errorf("%w: minimum path length must be positive, got %d", ErrInvalidConfig, minLen)
		span.SetStatus(codes.Error, err.Error())
		return Route{}, err
	}
	if len(p.roads) < 2 {
		err := fmt.Errorf("%w: need at least 2 road cells, have %d", ErrNoObjective, len(p.roads))
		span.SetStatus(codes.Error, err.Error())
		return Route{}, err
	}

	shuffled := p.rng.Perm(len(p.roads))

	starts := min(p.cfg.MaxObjectiveStarts, len(shuffled))
	attempt := 0
	searches := 0

	route, err := backoff.Retry(ctx, func() (Route, error) {
		start := p.roads[shuffled[attempt]]
		attempt++

		for _, gi := range shuffled {
			goal := p.roads[gi]
			if goal == start || nav.Manhattan(start, goal) < minLen {
				continue
			}
			searches++
			path, ok := p.finder.FindPath(start, goal)
			if ok && path.Len() >= minLen {
				return Route{Start: start, Goal: goal, Path: path}, nil
			}
		}
		return Route{}, fmt.Errorf("%w: no goal from %v", ErrNoObjective, start)
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(uint(starts)),
		backoff.WithNotify(func(err error, _ time.Duration) {
			p.log.WithError(err).Debug("Objective start rejected")
		}),
	)

	span.SetAttributes(
		attribute.Int("route.starts_tried", attempt),
		attribute.Int("route.searches", searches),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		p.log.WithFields(logrus.Fields{
			"starts":     attempt,
			"min_length": minLen,
		}).Warn("No valid path found for player objective")
		return Route{}, fmt.Errorf("tried %d starts for length %d: %w", attempt, minLen, err)
	}

	route.Attempts = attempt
	span.SetAttributes(attribute.Int("route.length", route.Path.Len()))
	p.log.WithFields(logrus.Fields{
		"start":  route.Start.String(),
		"goal":   route.Goal.String(),
		"length": route.Path.Len(),
	}).Info("Objective route found")
	return route, nil
}
