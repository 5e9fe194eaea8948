package game

import (
	"time"

	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// Renderer draws finalized tiles. Implementations must not fail the
// session; anything that goes wrong while drawing is theirs to handle.
type Renderer interface {
	RenderTile(p world.Point, v *tiles.Variant, pos vmath.Vec3)
}

// AgentSink receives one call per successfully routed agent.
type AgentSink interface {
	SpawnAgent(id string, waypoints []vmath.Vec3, speed float64)
}

// ObjectiveSink receives the player objective. When no objective route
// exists it is still called with the fallback spawn, no waypoints and a
// zero total.
type ObjectiveSink interface {
	StartObjective(spawn vmath.Vec3, waypoints []vmath.Vec3, total int, budget time.Duration)
}

// NopRenderer discards tiles.
type NopRenderer struct{}

func (NopRenderer) RenderTile(world.Point, *tiles.Variant, vmath.Vec3) {}

// NopAgentSink discards agents.
type NopAgentSink struct{}

func (NopAgentSink) SpawnAgent(string, []vmath.Vec3, float64) {}

// NopObjectiveSink discards the objective.
type NopObjectiveSink struct{}

func (NopObjectiveSink) StartObjective(vmath.Vec3, []vmath.Vec3, int, time.Duration) {}
