// Package game wires a map session together: it generates the grid, plans
// agent and objective routes, and hands the results to rendering, agent
// and objective collaborators. It also runs the interactive terminal loop.
package game

// State represents where a session is in its lifecycle.
type State int

const (
	// StateNew - configured, nothing generated yet
	StateNew State = iota
	// StateGenerating - the tile solver is running
	StateGenerating
	// StatePlanning - routes are being planned and dispatched
	StatePlanning
	// StateReady - the map and routes are in place
	StateReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateGenerating:
		return "generating"
	case StatePlanning:
		return "planning"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
