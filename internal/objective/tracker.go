// Package objective tracks the player's waypoint run: which waypoints are
// collected, the score, and the countdown that bounds the attempt.
package objective

import (
	"fmt"
	"time"

	"github.com/samdwyer/tileroads/internal/vmath"
)

const (
	DefaultPointsPerWaypoint = 10
	DefaultReachRadius       = 0.5

	// WaypointHeight lifts waypoint markers above their tile.
	WaypointHeight = 0.5
)

// Status is the tracker lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusTimeUp
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusTimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// Waypoint is one marker on the objective route. Order counts from 1.
type Waypoint struct {
	Order     int
	Pos       vmath.Vec3
	Collected bool
}

// Listener receives objective events. Calls happen synchronously on the
// goroutine driving the tracker.
type Listener interface {
	WaypointReached(order, collected, total int)
	Completed(score int, remaining time.Duration)
	TimeExpired(score, collected, total int)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) WaypointReached(int, int, int) {}
func (NopListener) Completed(int, time.Duration)  {}
func (NopListener) TimeExpired(int, int, int)     {}

// Tracker holds the state of one objective attempt.
type Tracker struct {
	listener  Listener
	points    int
	radius    float64
	spawn     vmath.Vec3
	waypoints []Waypoint
	total     int
	collected int
	score     int
	remaining time.Duration
	status    Status
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithPointsPerWaypoint sets the score awarded per collected waypoint.
func WithPointsPerWaypoint(points int) Option {
	return func(t *Tracker) { t.points = points }
}

// WithReachRadius sets how close the player must come to collect a waypoint.
func WithReachRadius(r float64) Option {
	return func(t *Tracker) { t.radius = r }
}

// NewTracker creates an idle tracker reporting to l. A nil listener is
// replaced by NopListener.
func NewTracker(l Listener, opts ...Option) *Tracker {
	if l == nil {
		l = NopListener{}
	}
	t := &Tracker{
		listener: l,
		points:   DefaultPointsPerWaypoint,
		radius:   DefaultReachRadius,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartObjective resets the tracker for a new run. Waypoints are numbered
// in route order. The timer only starts when there is something to
// collect and a positive budget.
func (t *Tracker) StartObjective(spawn vmath.Vec3, waypoints []vmath.Vec3, total int, budget time.Duration) {
	t.spawn = spawn
	t.waypoints = make([]Waypoint, len(waypoints))
	for i, pos := range waypoints {
		t.waypoints[i] = Waypoint{Order: i + 1, Pos: pos}
	}
	t.total = total
	t.collected = 0
	t.score = 0
	t.remaining = budget
	t.status = StatusIdle
	if total > 0 && budget > 0 {
		t.status = StatusRunning
	}
}

// Tick counts the timer down by dt. Reaching zero ends the run.
func (t *Tracker) Tick(dt time.Duration) {
	if t.status != StatusRunning {
		return
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return
	}
	t.remaining = 0
	t.status = StatusTimeUp
	t.listener.TimeExpired(t.score, t.collected, t.total)
}

// AddScore credits one collected waypoint worth points. Nothing is
// credited once the timer has stopped. Collecting the last waypoint
// stops the timer and completes the run.
func (t *Tracker) AddScore(points int) {
	if t.status != StatusRunning {
		return
	}
	t.score += points
	t.collected++
	if t.collected >= t.total && t.total > 0 {
		t.status = StatusCompleted
		t.listener.Completed(t.score, t.remaining)
	}
}

// Reach collects the first uncollected waypoint within the reach radius
// of pos, measured on the ground plane.
func (t *Tracker) Reach(pos vmath.Vec3) (Waypoint, bool) {
	if t.status != StatusRunning {
		return Waypoint{}, false
	}
	for i := range t.waypoints {
		w := &t.waypoints[i]
		if w.Collected {
			continue
		}
		d := vmath.Sub(w.Pos, pos)
		d.Y = 0
		if vmath.Mag(d) > t.radius {
			continue
		}
		w.Collected = true
		t.listener.WaypointReached(w.Order, t.collected+1, t.total)
		t.AddScore(t.points)
		return *w, true
	}
	return Waypoint{}, false
}

// Status returns the lifecycle state.
func (t *Tracker) Status() Status { return t.status }

// Running reports whether the timer is counting down.
func (t *Tracker) Running() bool { return t.status == StatusRunning }

// Score returns the points earned so far.
func (t *Tracker) Score() int { return t.score }

// Collected returns the number of waypoints collected.
func (t *Tracker) Collected() int { return t.collected }

// Total returns the number of waypoints in the run.
func (t *Tracker) Total() int { return t.total }

// Remaining returns the time left on the clock.
func (t *Tracker) Remaining() time.Duration { return t.remaining }

// Spawn returns where the player started.
func (t *Tracker) Spawn() vmath.Vec3 { return t.spawn }

// Waypoints returns the route markers. The slice is a copy.
func (t *Tracker) Waypoints() []Waypoint {
	return append([]Waypoint(nil), t.waypoints...)
}

// ScoreText formats the score line.
func (t *Tracker) ScoreText() string {
	return fmt.Sprintf("Score: %d", t.score)
}

// WaypointsText formats the collected/total line.
func (t *Tracker) WaypointsText() string {
	return fmt.Sprintf("Waypoints: %d/%d", t.collected, t.total)
}

// TimerText formats the remaining time as mm:ss.
func (t *Tracker) TimerText() string {
	secs := int(t.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
