package main

import (
	"context"
	"flag"
	"os"

	"github.com/samdwyer/tileroads/internal/game"
	"github.com/samdwyer/tileroads/internal/logger"
)

// sessionFlags binds the shared map and routing options. Defaults come
// from game.DefaultConfig with TILEROADS_* environment overrides applied,
// so explicit flags win over the environment.
type sessionFlags struct {
	cfg    game.Config
	envErr error
}

func (s *sessionFlags) SetFlags(f *flag.FlagSet) {
	s.cfg = game.DefaultConfig()
	s.envErr = s.cfg.ApplyEnv(os.Getenv)

	f.IntVar(&s.cfg.Width, "w", s.cfg.Width, "Map width in tiles")
	f.IntVar(&s.cfg.Height, "h", s.cfg.Height, "Map height in tiles")
	f.Float64Var(&s.cfg.TileSize, "tile", s.cfg.TileSize, "World size of one tile")
	f.Int64Var(&s.cfg.Seed, "seed", s.cfg.Seed, "Random seed (0 picks one)")
	f.IntVar(&s.cfg.Agents, "agents", s.cfg.Agents, "Number of cars to route")
	f.Float64Var(&s.cfg.AgentSpeed, "speed", s.cfg.AgentSpeed, "Car speed in world units per second")
	f.IntVar(&s.cfg.MinPathLength, "min-path", s.cfg.MinPathLength, "Minimum cells on the objective route")
	f.IntVar(&s.cfg.MaxAttemptsPerAgent, "attempts", s.cfg.MaxAttemptsPerAgent, "Routing attempts per car")
	f.IntVar(&s.cfg.MaxObjectiveStarts, "starts", s.cfg.MaxObjectiveStarts, "Start cells tried for the objective route")
	f.DurationVar(&s.cfg.TimeLimit, "time", s.cfg.TimeLimit, "Objective time limit")
	f.StringVar(&s.cfg.CatalogPath, "catalog", s.cfg.CatalogPath, "Tile catalog JSON (default: built in)")
}

// session builds and runs a session with the bound config.
func (s *sessionFlags) session(ctx context.Context, opts ...game.Option) (*game.Session, *game.Report, error) {
	if s.envErr != nil {
		return nil, nil, s.envErr
	}
	session, err := game.NewSession(s.cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	report, err := session.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session, report, nil
}

func fail(err error) {
	logger.Log.WithError(err).Error("Command failed")
}
