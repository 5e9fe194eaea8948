package game

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tileroads/internal/entity"
	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/objective"
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/ui"
)

func newTestPlay(t *testing.T, cfg Config) (*Play, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(40, 20)

	p, err := NewPlay(cfg, screen)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p, sim
}

func TestPlayQuits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	p, sim := newTestPlay(t, cfg)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	if p.running {
		t.Error("loop still marked running after 'q'")
	}
	if p.Session().State() != StateReady {
		t.Errorf("session state = %s, want ready", p.Session().State())
	}
	if len(p.fleet.Cars) != len(p.Session().AgentRoutes())-countFailed(p) {
		t.Errorf("fleet has %d cars", len(p.fleet.Cars))
	}
}

func countFailed(p *Play) int {
	n := 0
	for _, r := range p.Session().AgentRoutes() {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func TestPlayTryMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	p, _ := newTestPlay(t, cfg)
	_, err := p.session.Run(context.Background())
	require.NoError(t, err)

	spawn, ok := p.session.PlayerSpawn()
	if !ok {
		t.Skip("seed 11 map has no roads")
	}
	grid := p.session.Grid()

	var open, closed []tiles.Direction
	for _, d := range []tiles.Direction{tiles.Top, tiles.Bottom, tiles.Left, tiles.Right} {
		if nav.Connected(grid, spawn, d) {
			open = append(open, d)
		} else {
			closed = append(closed, d)
		}
	}

	for _, d := range closed {
		p.player = entity.NewPlayer(spawn, cfg.PlayerHeight)
		if p.tryMove(d) {
			t.Errorf("moved %s through a closed edge", d)
		}
		if p.player.Position() != spawn {
			t.Errorf("player left %v after a blocked move", spawn)
		}
	}
	for _, d := range open {
		p.player = entity.NewPlayer(spawn, cfg.PlayerHeight)
		if !p.tryMove(d) {
			t.Errorf("blocked moving %s along a connected road", d)
			continue
		}
		dx, dy := d.Offset()
		if got := p.player.Position(); got.X != spawn.X+dx || got.Y != spawn.Y+dy {
			t.Errorf("after moving %s player at %v", d, got)
		}
		if !grid.IsRoad(p.player.Position()) {
			t.Errorf("player drove off the road to %v", p.player.Position())
		}
	}
}

func TestPlayWalkObjective(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 8
	p, _ := newTestPlay(t, cfg)
	_, err := p.session.Run(context.Background())
	require.NoError(t, err)

	goal, ok := p.session.Objective()
	if !ok {
		t.Skip("seed 8 map has no objective route")
	}
	p.player = entity.NewPlayer(goal.Start, cfg.PlayerHeight)

	for i := 1; i < goal.Path.Len(); i++ {
		from, to := goal.Path[i-1], goal.Path[i]
		var dir tiles.Direction
		for _, d := range []tiles.Direction{tiles.Top, tiles.Bottom, tiles.Left, tiles.Right} {
			dx, dy := d.Offset()
			if from.X+dx == to.X && from.Y+dy == to.Y {
				dir = d
			}
		}
		require.True(t, p.tryMove(dir), "step %d from %v to %v", i, from, to)
	}

	if p.tracker.Status() != objective.StatusCompleted {
		t.Errorf("status = %s after walking the route, want completed", p.tracker.Status())
	}
	if p.tracker.Collected() != p.tracker.Total() {
		t.Errorf("collected %d of %d", p.tracker.Collected(), p.tracker.Total())
	}
}

func TestPlayTickLogsDroppedFrames(t *testing.T) {
	hooks := logger.Log.ReplaceHooks(make(logrus.LevelHooks))
	hook := logtest.NewLocal(logger.Log)
	level := logger.Log.GetLevel()
	logger.Log.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logger.Log.SetLevel(level)
		logger.Log.ReplaceHooks(hooks)
	})

	p, _ := newTestPlay(t, DefaultConfig())
	p.frame = time.Millisecond

	// Nothing polls the screen, so the event queue fills up.
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		p.tick(done)
		close(stopped)
	}()

	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "Frame tick dropped" && e.Data[logrus.ErrorKey] != nil {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("tick did not stop after done closed")
	}
}
