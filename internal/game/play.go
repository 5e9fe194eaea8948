package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileroads/internal/entity"
	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/nav"
	"github.com/samdwyer/tileroads/internal/objective"
	"github.com/samdwyer/tileroads/internal/telemetry"
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/ui"
)

// DefaultFrameInterval is the tick rate of the interactive loop.
const DefaultFrameInterval = 50 * time.Millisecond

const hudLines = 3

// Play is the interactive terminal game on top of a Session: cars drive
// their routes while the player steers along the roads collecting
// waypoints before the clock runs out.
type Play struct {
	session  *Session
	screen   *ui.Screen
	renderer *ui.Renderer
	fleet    *entity.Fleet
	tracker  *objective.Tracker
	player   *entity.Player
	frame    time.Duration
	message  string
	running  bool
	log      *logrus.Entry
}

// NewPlay creates a game drawing to screen.
func NewPlay(cfg Config, screen *ui.Screen, opts ...Option) (*Play, error) {
	p := &Play{
		screen:   screen,
		renderer: ui.NewRenderer(screen, cfg.Width, cfg.Height, cfg.TileSize),
		fleet:    &entity.Fleet{},
		frame:    DefaultFrameInterval,
		running:  true,
		log:      logger.For("game"),
	}
	p.tracker = objective.NewTracker(p)

	opts = append(opts,
		WithRenderer(p.renderer),
		WithAgentSink(p.fleet),
		WithObjectiveSink(p.tracker),
	)
	session, err := NewSession(cfg, opts...)
	if err != nil {
		return nil, err
	}
	p.session = session
	return p, nil
}

// Session returns the underlying session.
func (p *Play) Session() *Session { return p.session }

// Run executes the main game loop until the player quits or ctx ends.
func (p *Play) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	// Initialize game (traced)
	ctx, initSpan := tracer.Start(ctx, "game.init")
	report, err := p.session.Run(ctx)
	if err != nil {
		initSpan.End()
		return err
	}
	if spawn, ok := p.session.PlayerSpawn(); ok {
		p.player = entity.NewPlayer(spawn, p.session.Config().PlayerHeight)
	}
	switch {
	case report.ObjectiveFound:
		p.message = fmt.Sprintf("Collect %d waypoints!", p.tracker.Total())
	case p.player != nil:
		p.message = "No objective on this map. Free drive."
	default:
		p.message = "No roads on this map."
	}
	initSpan.SetAttributes(
		attribute.Int("game.cars", len(p.fleet.Cars)),
		attribute.Bool("game.objective", report.ObjectiveFound),
	)
	initSpan.End()
	p.checkSize()

	done := make(chan struct{})
	defer close(done)
	go p.tick(done)

	// Main game loop
	last := time.Now()
	for p.running && ctx.Err() == nil {
		p.render()

		ev := p.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			p.running = false
		case *tcell.EventKey:
			p.handleKeyEvent(ev)
		case *tcell.EventResize:
			p.screen.Sync()
			p.checkSize()
		case *tcell.EventInterrupt:
			now := time.Now()
			p.update(now.Sub(last))
			last = now
		}
	}
	return nil
}

// tick posts a frame event every interval until done closes.
func (p *Play) tick(done <-chan struct{}) {
	ticker := time.NewTicker(p.frame)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// Fails while the event queue is full, e.g. after the screen
			// stopped polling.
			if err := p.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
				p.log.WithError(err).Debug("Frame tick dropped")
			}
		}
	}
}

// update advances cars and the clock by dt.
func (p *Play) update(dt time.Duration) {
	p.fleet.Update(dt.Seconds())
	p.tracker.Tick(dt)
}

// handleKeyEvent processes keyboard input. Up moves toward +y, which is
// the top of the screen.
func (p *Play) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.running = false

	case tcell.KeyUp:
		p.tryMove(tiles.Top)
	case tcell.KeyDown:
		p.tryMove(tiles.Bottom)
	case tcell.KeyLeft:
		p.tryMove(tiles.Left)
	case tcell.KeyRight:
		p.tryMove(tiles.Right)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			p.running = false
		}
	}
}

// tryMove moves the player one cell if the road connects that way, then
// checks for a waypoint under the new position.
func (p *Play) tryMove(d tiles.Direction) bool {
	if p.player == nil {
		return false
	}
	if !nav.Connected(p.session.Grid(), p.player.Position(), d) {
		return false
	}
	p.player.Move(d)
	p.tracker.Reach(p.player.WorldPos(p.session.Config().TileSize))
	return true
}

// checkSize warns when the terminal cannot hold the map and the HUD.
func (p *Play) checkSize() {
	cfg := p.session.Config()
	w, h := p.screen.Size()
	if w < cfg.Width || h < cfg.Height+hudLines+1 {
		p.message = fmt.Sprintf("Terminal too small: need %dx%d", cfg.Width, cfg.Height+hudLines+1)
	}
}

func (p *Play) render() {
	p.renderer.Render(ui.Frame{
		Waypoints: p.tracker.Waypoints(),
		Cars:      p.fleet.Cars,
		Player:    p.player,
		HUD: []string{
			p.tracker.ScoreText() + "  " + p.tracker.WaypointsText() + "  " + p.tracker.TimerText(),
			p.message,
			"arrows: drive  q: quit",
		},
	})
}

// WaypointReached implements objective.Listener.
func (p *Play) WaypointReached(order, collected, total int) {
	p.message = fmt.Sprintf("Waypoint %d! (%d/%d)", order, collected, total)
}

// Completed implements objective.Listener.
func (p *Play) Completed(score int, remaining time.Duration) {
	p.message = fmt.Sprintf("Success! Final score: %d, %d seconds left", score, int(remaining.Seconds()))
}

// TimeExpired implements objective.Listener.
func (p *Play) TimeExpired(score, collected, total int) {
	p.message = fmt.Sprintf("Time's up! Final score: %d, waypoints %d/%d", score, collected, total)
}

// Close cleans up game resources.
func (p *Play) Close() {
	if p.screen != nil {
		p.screen.Close()
	}
}
