package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/objective"
	"github.com/samdwyer/tileroads/internal/route"
	"github.com/samdwyer/tileroads/internal/telemetry"
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// Report summarizes one session run.
type Report struct {
	SessionID       string
	Seed            int64
	Width, Height   int
	Steps           int
	Collapsed       int
	Contradictions  int
	Incomplete      bool
	Roads           int
	NonRoads        int
	AgentsPlaced    int
	AgentsFailed    int
	ObjectiveFound  bool
	ObjectiveLength int
	Duration        time.Duration
}

// Fields returns the report as structured log fields.
func (r *Report) Fields() logrus.Fields {
	return logrus.Fields{
		"session":          r.SessionID,
		"seed":             r.Seed,
		"width":            r.Width,
		"height":           r.Height,
		"steps":            r.Steps,
		"collapsed":        r.Collapsed,
		"contradictions":   r.Contradictions,
		"incomplete":       r.Incomplete,
		"roads":            r.Roads,
		"non_roads":        r.NonRoads,
		"agents_placed":    r.AgentsPlaced,
		"agents_failed":    r.AgentsFailed,
		"objective_found":  r.ObjectiveFound,
		"objective_length": r.ObjectiveLength,
		"duration_ms":      r.Duration.Milliseconds(),
	}
}

// Session owns one generated map and everything planned on it. It is
// single-threaded; independent sessions may run side by side.
type Session struct {
	id        string
	cfg       Config
	seed      int64
	rng       *rand.Rand
	catalog   *tiles.Catalog
	renderer  Renderer
	agents    AgentSink
	objective ObjectiveSink
	state     State
	log       *logrus.Entry

	result      *world.Result
	agentRoutes []route.AgentResult
	goal        route.Route
	hasGoal     bool
	spawn       world.Point
	hasSpawn    bool
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer sets the tile renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithAgentSink sets the receiver of routed agents.
func WithAgentSink(a AgentSink) Option {
	return func(s *Session) { s.agents = a }
}

// WithObjectiveSink sets the receiver of the player objective.
func WithObjectiveSink(o ObjectiveSink) Option {
	return func(s *Session) { s.objective = o }
}

// WithCatalog overrides the tile catalog, ignoring Config.CatalogPath.
func WithCatalog(c *tiles.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// NewSession validates cfg, loads the catalog and seeds the session rng.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		renderer:  NopRenderer{},
		agents:    NopAgentSink{},
		objective: NopObjectiveSink{},
		state:     StateNew,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil {
		var err error
		if cfg.CatalogPath != "" {
			s.catalog, err = tiles.LoadCatalogFile(cfg.CatalogPath)
		} else {
			s.catalog, err = tiles.DefaultCatalog()
		}
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	s.seed = cfg.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.log = logger.For("game").WithField("session", s.id)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the seed actually used, which differs from Config.Seed when
// that was 0.
func (s *Session) Seed() int64 { return s.seed }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Catalog returns the tile catalog in use.
func (s *Session) Catalog() *tiles.Catalog { return s.catalog }

// Result returns the generation result, nil before Run.
func (s *Session) Result() *world.Result { return s.result }

// Grid returns the finalized grid, nil before Run.
func (s *Session) Grid() *world.Grid {
	if s.result == nil {
		return nil
	}
	return s.result.Grid
}

// AgentRoutes returns the per-agent planning outcomes.
func (s *Session) AgentRoutes() []route.AgentResult { return s.agentRoutes }

// Objective returns the player objective route, if one was found.
func (s *Session) Objective() (route.Route, bool) { return s.goal, s.hasGoal }

// PlayerSpawn returns the player's start cell. ok is false when the map has
// no roads at all.
func (s *Session) PlayerSpawn() (world.Point, bool) { return s.spawn, s.hasSpawn }

// Run generates the map, renders it, plans agent and objective routes and
// dispatches them to the collaborators. Routing failures degrade the
// session rather than failing it; the returned error is reserved for
// problems that make the session unusable.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	start := time.Now()

	s.state = StateGenerating
	result, err := world.Generate(ctx, s.cfg.Width, s.cfg.Height, s.catalog, s.rng, world.WithTileSize(s.cfg.TileSize))
	if err != nil {
		return nil, fmt.Errorf("generate map: %w", err)
	}
	s.result = result
	grid := result.Grid

	for _, pl := range grid.Placements() {
		s.renderer.RenderTile(pl.Point, pl.Variant, pl.WorldPos)
	}

	s.state = StatePlanning
	planner, err := route.NewPlanner(nav.NewGridPathfinder(grid), grid.RoadCells(), s.rng, s.cfg.RouteConfig())
	if err != nil {
		return nil, err
	}

	placed, failed := s.dispatchAgents(ctx, planner, grid)
	s.dispatchObjective(ctx, planner, grid)
	s.state = StateReady

	report := &Report{
		SessionID:      s.id,
		Seed:           s.seed,
		Width:          grid.Width(),
		Height:         grid.Height(),
		Steps:          result.Steps,
		Collapsed:      result.Collapsed,
		Contradictions: len(result.Contradictions),
		Incomplete:     result.Incomplete,
		Roads:          len(grid.RoadCells()),
		NonRoads:       len(grid.NonRoadCells()),
		AgentsPlaced:   placed,
		AgentsFailed:   failed,
		ObjectiveFound: s.hasGoal,
		Duration:       time.Since(start),
	}
	if s.hasGoal {
		report.ObjectiveLength = s.goal.Path.Len()
	}

	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Int64("session.seed", s.seed),
		attribute.Int("session.agents_placed", placed),
		attribute.Int("session.agents_failed", failed),
		attribute.Bool("session.objective_found", s.hasGoal),
		attribute.Bool("session.incomplete", result.Incomplete),
	)
	s.log.WithFields(report.Fields()).Info("Session ready")
	return report, nil
}

func (s *Session) dispatchAgents(ctx context.Context, planner *route.Planner, grid *world.Grid) (placed, failed int) {
	if planner.Roads() == 0 && s.cfg.Agents > 0 {
		s.log.Warn("No road tiles; no agents will spawn")
	}
	s.agentRoutes = planner.AgentRoutes(ctx, s.cfg.Agents)
	for _, r := range s.agentRoutes {
		if r.Err != nil {
			failed++
			continue
		}
		waypoints := r.Route.Path.Waypoints(grid, s.cfg.AgentHeight)
		s.agents.SpawnAgent(uuid.NewString(), waypoints, s.cfg.AgentSpeed)
		placed++
	}
	return placed, failed
}

func (s *Session) dispatchObjective(ctx context.Context, planner *route.Planner, grid *world.Grid) {
	goal, err := planner.ObjectiveRoute(ctx, s.cfg.MinPathLength)
	if err == nil {
		s.goal, s.hasGoal = goal, true
		s.spawn, s.hasSpawn = goal.Start, true

		// The player starts on the first cell; every later cell is a waypoint.
		waypoints := make([]vmath.Vec3, 0, goal.Path.Len()-1)
		for _, p := range goal.Path[1:] {
			waypoints = append(waypoints, vmath.Up(grid.WorldPos(p), objective.WaypointHeight))
		}
		spawn := vmath.Up(grid.WorldPos(goal.Start), s.cfg.PlayerHeight)
		s.objective.StartObjective(spawn, waypoints, len(waypoints), s.cfg.TimeLimit)
		return
	}
	if !errors.Is(err, route.ErrNoObjective) {
		s.log.WithError(err).Error("Objective planning failed")
	}

	p, ok := planner.RandomRoad()
	if !ok {
		s.log.Warn("No road tiles; player not spawned")
		return
	}
	s.spawn, s.hasSpawn = p, true
	s.log.WithField("spawn", p.String()).Warn("Spawning player without an objective")
	s.objective.StartObjective(vmath.Up(grid.WorldPos(p), s.cfg.PlayerHeight), nil, 0, 0)
}
