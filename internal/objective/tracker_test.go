package objective

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/samdwyer/tileroads/internal/vmath"
)

// recorder captures listener events as strings.
type recorder struct {
	events []string
}

func (r *recorder) WaypointReached(order, collected, total int) {
	r.events = append(r.events, "reached")
}

func (r *recorder) Completed(score int, remaining time.Duration) {
	r.events = append(r.events, "completed")
}

func (r *recorder) TimeExpired(score, collected, total int) {
	r.events = append(r.events, "expired")
}

func route(n int) []vmath.Vec3 {
	out := make([]vmath.Vec3, n)
	for i := range out {
		out[i] = vmath.Vec3{X: float64(i + 1), Y: WaypointHeight}
	}
	return out
}

func TestTrackerCollectsAllWaypoints(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)
	tr.StartObjective(vmath.Vec3{}, route(3), 3, 2*time.Minute)

	if !tr.Running() {
		t.Fatal("tracker not running after StartObjective")
	}

	// Out of order is fine; each marker counts once.
	for _, x := range []float64{2, 2, 1, 3} {
		tr.Reach(vmath.Vec3{X: x})
		tr.Tick(time.Second)
	}

	if tr.Status() != StatusCompleted {
		t.Errorf("Status() = %s, want completed", tr.Status())
	}
	if tr.Score() != 3*DefaultPointsPerWaypoint {
		t.Errorf("Score() = %d, want %d", tr.Score(), 3*DefaultPointsPerWaypoint)
	}
	if tr.WaypointsText() != "Waypoints: 3/3" {
		t.Errorf("WaypointsText() = %q", tr.WaypointsText())
	}
	want := []string{"reached", "reached", "reached", "completed"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	// Timer stopped on completion.
	if tr.Remaining() != 2*time.Minute-3*time.Second {
		t.Errorf("Remaining() = %s, want 1m57s", tr.Remaining())
	}
}

func TestTrackerTimeUp(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec, WithPointsPerWaypoint(5))
	tr.StartObjective(vmath.Vec3{}, route(2), 2, 3*time.Second)

	tr.Reach(vmath.Vec3{X: 1.2, Y: 4})
	tr.Tick(2 * time.Second)
	if tr.TimerText() != "00:01" {
		t.Errorf("TimerText() = %q, want 00:01", tr.TimerText())
	}
	tr.Tick(2 * time.Second)

	if tr.Status() != StatusTimeUp {
		t.Fatalf("Status() = %s, want time_up", tr.Status())
	}
	if tr.Remaining() != 0 {
		t.Errorf("Remaining() = %s, want 0", tr.Remaining())
	}

	// Nothing counts after the clock runs out.
	if _, ok := tr.Reach(vmath.Vec3{X: 2}); ok {
		t.Error("Reach() succeeded after time ran out")
	}
	tr.AddScore(100)
	if tr.Score() != 5 || tr.Collected() != 1 {
		t.Errorf("score %d collected %d after time up, want 5 and 1", tr.Score(), tr.Collected())
	}

	tr.Tick(time.Second)
	want := []string{"reached", "expired"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTrackerReachRadius(t *testing.T) {
	tr := NewTracker(nil, WithReachRadius(0.25))
	tr.StartObjective(vmath.Vec3{}, route(1), 1, time.Minute)

	if _, ok := tr.Reach(vmath.Vec3{X: 1.3}); ok {
		t.Error("Reach() collected a waypoint outside the radius")
	}
	w, ok := tr.Reach(vmath.Vec3{X: 1.2, Z: 0.1})
	if !ok || w.Order != 1 || !w.Collected {
		t.Errorf("Reach() = %+v, %v; want waypoint 1 collected", w, ok)
	}
}

func TestTrackerWithoutWaypoints(t *testing.T) {
	tr := NewTracker(nil)
	tr.StartObjective(vmath.Vec3{X: 4}, nil, 0, time.Minute)

	if tr.Running() {
		t.Error("timer started with nothing to collect")
	}
	tr.AddScore(10)
	if tr.Score() != 0 {
		t.Errorf("Score() = %d, want 0", tr.Score())
	}
	if tr.Spawn() != (vmath.Vec3{X: 4}) {
		t.Errorf("Spawn() = %+v", tr.Spawn())
	}
}

func TestWaypointOrder(t *testing.T) {
	tr := NewTracker(nil)
	tr.StartObjective(vmath.Vec3{}, route(4), 4, time.Minute)

	for i, w := range tr.Waypoints() {
		if w.Order != i+1 {
			t.Errorf("waypoint %d has order %d", i, w.Order)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusIdle, "idle"},
		{StatusRunning, "running"},
		{StatusCompleted, "completed"},
		{StatusTimeUp, "time_up"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
