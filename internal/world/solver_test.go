package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tileroads/internal/tiles"
)

// horizontalRoad returns a road variant that connects left and right.
func horizontalRoad(id string) *tiles.Variant {
	road := tiles.NewSocketSet(tiles.SocketRoadHorizontal)
	grass := tiles.NewSocketSet(tiles.SocketGrass)
	v := &tiles.Variant{ID: id, Road: true, Edges: tiles.Edges{Top: grass, Bottom: grass, Left: road, Right: road}}
	v.Connect.Left = true
	v.Connect.Right = true
	return v
}

// variantIDs flattens a grid into a comparable form.
func variantIDs(g *Grid) [][]string {
	out := make([][]string, g.Width())
	for x := range out {
		out[x] = make([]string, g.Height())
		for y := range out[x] {
			if v := g.Variant(Point{x, y}); v != nil {
				out[x][y] = v.ID
			}
		}
	}
	return out
}

func generate(t *testing.T, width, height int, catalog *tiles.Catalog, seed int64) *Result {
	t.Helper()
	result, err := Generate(context.Background(), width, height, catalog, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return result
}

func TestGenerateReproducibility(t *testing.T) {
	catalog := tiles.MustDefaultCatalog()

	r1 := generate(t, DefaultWidth, DefaultHeight, catalog, 12345)
	r2 := generate(t, DefaultWidth, DefaultHeight, catalog, 12345)

	if r1.Seed != r2.Seed {
		t.Errorf("Seed cell mismatch: %v != %v", r1.Seed, r2.Seed)
	}
	if r1.Steps != r2.Steps {
		t.Errorf("Step count mismatch: %d != %d", r1.Steps, r2.Steps)
	}
	if diff := cmp.Diff(variantIDs(r1.Grid), variantIDs(r2.Grid)); diff != "" {
		t.Errorf("Same seed produced different grids (-first +second):\n%s", diff)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	catalog := tiles.MustDefaultCatalog()

	r1 := generate(t, DefaultWidth, DefaultHeight, catalog, 12345)
	r2 := generate(t, DefaultWidth, DefaultHeight, catalog, 54321)

	// 16 variants over 100 cells; identical grids would be a broken rng.
	if cmp.Equal(variantIDs(r1.Grid), variantIDs(r2.Grid)) {
		t.Error("Grids with different seeds should not be identical")
	}
}

func TestGenerateSingleGrassCell(t *testing.T) {
	catalog := mustCatalog(t, uniformVariant("grass", tiles.SocketGrass))

	result := generate(t, 1, 1, catalog, 1)

	if result.State != StateDone {
		t.Errorf("State = %s, want done", result.State)
	}
	if result.Collapsed != 1 {
		t.Errorf("Collapsed = %d, want 1", result.Collapsed)
	}
	if len(result.Contradictions) != 0 {
		t.Errorf("Contradictions = %v, want none", result.Contradictions)
	}
	if result.Steps != 0 {
		t.Errorf("Steps = %d, want 0 (the seed collapses the only cell)", result.Steps)
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	if got := result.Grid.Variant(Point{0, 0}); got == nil || got.ID != "grass" {
		t.Errorf("Variant(0,0) = %v, want grass", got)
	}
}

func TestGenerateTwoRoadTiles(t *testing.T) {
	catalog := mustCatalog(t, horizontalRoad("road_a"), horizontalRoad("road_b"))

	for seed := int64(1); seed <= 10; seed++ {
		result := generate(t, 2, 1, catalog, seed)

		if result.Incomplete || result.Collapsed != 2 {
			t.Fatalf("seed %d: collapsed %d of 2, incomplete=%v", seed, result.Collapsed, result.Incomplete)
		}
		left := result.Grid.Variant(Point{0, 0})
		right := result.Grid.Variant(Point{1, 0})
		if !left.Edge(tiles.Right).Equal(right.Edge(tiles.Left)) {
			t.Errorf("seed %d: facing edges differ: %s vs %s", seed, left.Edge(tiles.Right), right.Edge(tiles.Left))
		}
		if got := result.Grid.RoadCells(); len(got) != 2 {
			t.Errorf("seed %d: RoadCells() = %v, want both cells", seed, got)
		}
	}
}

func TestGenerateAdjacentEdgesMatch(t *testing.T) {
	catalog := tiles.MustDefaultCatalog()

	for seed := int64(1); seed <= 20; seed++ {
		result := generate(t, 12, 9, catalog, seed)

		// The default catalog holds every connection pattern, so no domain
		// can ever run dry.
		if result.Incomplete || len(result.Contradictions) != 0 {
			t.Fatalf("seed %d: incomplete=%v contradictions=%v", seed, result.Incomplete, result.Contradictions)
		}

		g := result.Grid
		for _, pl := range g.Placements() {
			for _, d := range []tiles.Direction{tiles.Top, tiles.Right} {
				n := pl.Point.Step(d)
				other := g.Variant(n)
				if other == nil {
					continue
				}
				if !pl.Variant.Edge(d).Equal(other.Edge(d.Opposite())) {
					t.Errorf("seed %d: %v %s edge %s does not match %v %s edge %s",
						seed, pl.Point, d, pl.Variant.Edge(d), n, d.Opposite(), other.Edge(d.Opposite()))
				}
				if pl.Variant.Connects(d) != other.Connects(d.Opposite()) {
					t.Errorf("seed %d: %v and %v disagree on road continuity", seed, pl.Point, n)
				}
			}
		}
	}
}

func TestSelectCellPicksSmallestDomain(t *testing.T) {
	catalog := tiles.MustDefaultCatalog()
	store, err := NewStore(3, 3, catalog)
	require.NoError(t, err)

	firstN := func(n int) func(*tiles.Variant) bool {
		keep := make(map[*tiles.Variant]bool)
		for _, v := range catalog.All()[:n] {
			keep[v] = true
		}
		return func(v *tiles.Variant) bool { return keep[v] }
	}

	_, err = store.Restrict(Point{2, 0}, firstN(3))
	require.NoError(t, err)
	_, err = store.Restrict(Point{1, 1}, firstN(3))
	require.NoError(t, err)
	_, err = store.Restrict(Point{0, 2}, func(*tiles.Variant) bool { return false })
	require.True(t, errors.Is(err, ErrContradiction))

	solver := NewSolver(store, rand.New(rand.NewSource(1)))

	// (1,1) and (2,0) tie; (1,1) comes first in x-major order. The empty
	// cell at (0,2) is never selectable.
	p, ok := solver.SelectCell()
	require.True(t, ok)
	if p != (Point{1, 1}) {
		t.Errorf("SelectCell() = %v, want (1,1)", p)
	}

	require.NoError(t, store.Collapse(Point{1, 1}, catalog.All()[0]))
	p, ok = solver.SelectCell()
	require.True(t, ok)
	if p != (Point{2, 0}) {
		t.Errorf("SelectCell() after collapsing (1,1) = %v, want (2,0)", p)
	}
}

func TestSolverNeverRevisitsCollapsedCells(t *testing.T) {
	catalog := tiles.MustDefaultCatalog()
	store, err := NewStore(6, 6, catalog)
	require.NoError(t, err)

	solver := NewSolver(store, rand.New(rand.NewSource(7)))
	solver.Seed()

	fixed := make(map[Point]*tiles.Variant)
	record := func() {
		store.each(func(p Point, c *Cell) {
			if !c.Collapsed() {
				return
			}
			if prev, ok := fixed[p]; ok && prev != c.resolved {
				t.Fatalf("cell %v changed from %s to %s", p, prev, c.resolved)
			}
			fixed[p] = c.resolved
		})
	}

	record()
	for solver.Step() {
		record()
	}
	if len(fixed) != 36 {
		t.Errorf("collapsed %d cells, want 36", len(fixed))
	}
}

func TestSeedCollapsesForcedNeighbors(t *testing.T) {
	tests := []struct {
		name    string
		catalog []*tiles.Variant
	}{
		{"single variant", []*tiles.Variant{uniformVariant("grass", tiles.SocketGrass)}},
		{"two disjoint variants", []*tiles.Variant{
			uniformVariant("grass", tiles.SocketGrass),
			uniformVariant("plaza", tiles.SocketConnector),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				store, err := NewStore(5, 4, mustCatalog(t, tt.catalog...))
				require.NoError(t, err)
				solver := NewSolver(store, rand.New(rand.NewSource(seed)))

				p := solver.Seed()
				first, err := store.Resolved(p)
				require.NoError(t, err)
				require.NotNil(t, first)

				// One seed decides every cell: each neighbor is left with a
				// single candidate and collapses without a selection step.
				if got := store.CollapsedCount(); got != 20 {
					t.Fatalf("seed %d: %d of 20 cells collapsed after Seed()", seed, got)
				}
				if solver.Steps() != 0 {
					t.Errorf("seed %d: Steps() = %d, want 0", seed, solver.Steps())
				}
				if _, ok := solver.SelectCell(); ok {
					t.Errorf("seed %d: SelectCell() found a cell after a full chain", seed)
				}
				for _, pl := range store.Grid().Placements() {
					if pl.Variant != first {
						t.Errorf("seed %d: %v is %s, want %s", seed, pl.Point, pl.Variant.ID, first.ID)
					}
				}
			}
		})
	}
}

// sidesVariant returns a non-road variant with the given left and right
// sockets and grass above and below.
func sidesVariant(id string, left, right tiles.Socket) *tiles.Variant {
	grass := tiles.NewSocketSet(tiles.SocketGrass)
	return &tiles.Variant{ID: id, Edges: tiles.Edges{
		Top:    grass,
		Bottom: grass,
		Left:   tiles.NewSocketSet(left),
		Right:  tiles.NewSocketSet(right),
	}}
}

func TestPropagateContinuesPastSuperposedCells(t *testing.T) {
	hub := sidesVariant("hub", tiles.SocketGrass, tiles.SocketConnector)
	catalog := mustCatalog(t,
		hub,
		sidesVariant("meadow", tiles.SocketGrass, tiles.SocketGrass),
		sidesVariant("lane", tiles.SocketRoadHorizontal, tiles.SocketGrass),
		sidesVariant("bridge", tiles.SocketConnector, tiles.SocketCrossing),
		sidesVariant("end", tiles.SocketCrossing, tiles.SocketNone),
	)
	store, err := NewStore(4, 1, catalog)
	require.NoError(t, err)
	require.NoError(t, store.Collapse(Point{1, 0}, hub))

	// (0,0) shrinks to two candidates and is queued before (2,0), which is
	// forced to "bridge" and must still constrain (3,0).
	NewSolver(store, rand.New(rand.NewSource(1))).propagate(Point{1, 0})

	domain, err := store.Domain(Point{0, 0})
	require.NoError(t, err)
	if len(domain) != 2 {
		t.Errorf("(0,0) has %d candidates, want 2", len(domain))
	}
	for x, want := range map[int]string{2: "bridge", 3: "end"} {
		v, err := store.Resolved(Point{x, 0})
		require.NoError(t, err)
		if v == nil || v.ID != want {
			t.Errorf("(%d,0) resolved to %v, want %s", x, v, want)
		}
	}
}

func TestSolverStepCap(t *testing.T) {
	catalog := tiles.MustDefaultCatalog()
	store, err := NewStore(5, 5, catalog)
	require.NoError(t, err)

	result := NewSolver(store, rand.New(rand.NewSource(3)), WithMaxSteps(1)).Run(context.Background())

	if result.State != StateFailed {
		t.Errorf("State = %s, want failed", result.State)
	}
	if result.Steps != 1 {
		t.Errorf("Steps = %d, want 1", result.Steps)
	}
	if !result.Incomplete {
		t.Error("Incomplete = false after hitting the step cap")
	}
	if err := result.Err(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Err() = %v, want ErrIncomplete", err)
	}
}

func TestSolverContradictionsAreReported(t *testing.T) {
	road := tiles.NewSocketSet(tiles.SocketRoadHorizontal)
	grass := tiles.NewSocketSet(tiles.SocketGrass)
	connector := tiles.NewSocketSet(tiles.SocketConnector)

	// Only west-then-east fits side by side; every other pairing runs dry.
	west := &tiles.Variant{ID: "west", Edges: tiles.Edges{Top: grass, Bottom: grass, Left: grass, Right: road}}
	east := &tiles.Variant{ID: "east", Edges: tiles.Edges{Top: grass, Bottom: grass, Left: road, Right: connector}}
	catalog := mustCatalog(t, west, east)

	var sawContradiction, sawComplete bool
	for seed := int64(1); seed <= 40; seed++ {
		result := generate(t, 2, 1, catalog, seed)

		if result.State != StateDone {
			t.Errorf("seed %d: State = %s, want done", seed, result.State)
		}
		if got := result.Collapsed + len(result.Contradictions); got != 2 {
			t.Errorf("seed %d: collapsed %d + contradictions %d != 2", seed, result.Collapsed, len(result.Contradictions))
		}

		if len(result.Contradictions) > 0 {
			sawContradiction = true
			if !result.Incomplete {
				t.Errorf("seed %d: contradiction reported on a complete run", seed)
			}
			continue
		}
		sawComplete = true
		if result.Grid.Variant(Point{0, 0}) != west || result.Grid.Variant(Point{1, 0}) != east {
			t.Errorf("seed %d: complete run placed %v", seed, variantIDs(result.Grid))
		}
	}
	if !sawContradiction || !sawComplete {
		t.Errorf("expected both outcomes over 40 seeds: contradiction=%v complete=%v", sawContradiction, sawComplete)
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	catalog := mustCatalog(t)

	result := generate(t, 2, 2, catalog, 1)

	if result.Collapsed != 0 {
		t.Errorf("Collapsed = %d, want 0", result.Collapsed)
	}
	if len(result.Contradictions) != 4 {
		t.Errorf("Contradictions = %v, want all 4 cells", result.Contradictions)
	}
	if result.Grid.Placed() != 0 {
		t.Errorf("Placed() = %d, want 0", result.Grid.Placed())
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	_, err := Generate(context.Background(), 0, 4, tiles.MustDefaultCatalog(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Generate(0, 4) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestGenerateWorldPositions(t *testing.T) {
	result, err := Generate(context.Background(), 3, 2, tiles.MustDefaultCatalog(),
		rand.New(rand.NewSource(9)), WithTileSize(4))
	require.NoError(t, err)

	for _, pl := range result.Grid.Placements() {
		if pl.WorldPos.X != float64(pl.X)*4 || pl.WorldPos.Y != 0 || pl.WorldPos.Z != float64(pl.Y)*4 {
			t.Errorf("%v placed at %+v", pl.Point, pl.WorldPos)
		}
	}
}
