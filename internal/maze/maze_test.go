package maze

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

// scriptedSource replays fixed choices and records every range it was asked for.
type scriptedSource struct {
	choices []int
	calls   []int
}

func (s *scriptedSource) Intn(n int) int {
	s.calls = append(s.calls, n)
	if len(s.choices) == 0 {
		return 0
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c % n
}

func generate(t *testing.T, size int, rng Source) *Maze {
	t.Helper()
	m, err := New(size, rng)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", size, err)
	}
	if err := m.Generate(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m
}

func TestNewCellDefaults(t *testing.T) {
	tests := []struct {
		coord Coord
		want  [4]bool
	}{
		{Coord{0, 0}, [4]bool{true, true, true, true}},
		{Coord{2, 0}, [4]bool{true, true, true, false}},
		{Coord{0, 3}, [4]bool{false, true, true, true}},
		{Coord{2, 3}, [4]bool{false, true, true, false}},
	}

	for _, tt := range tests {
		cell := NewCell(tt.coord)
		if cell.Walls != tt.want {
			t.Errorf("NewCell(%v).Walls = %v, want %v", tt.coord, cell.Walls, tt.want)
		}
		if cell.Visited {
			t.Errorf("NewCell(%v) should start unvisited", tt.coord)
		}
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -50} {
		m, err := New(size, rand.New(rand.NewSource(1)))
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("New(%d) error = %v, want ErrInvalidConfiguration", size, err)
		}
		if m != nil {
			t.Errorf("New(%d) should not return a maze", size)
		}
	}
}

func TestNeighborsOrder(t *testing.T) {
	m, err := New(3, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	got := m.neighbors(Coord{1, 1})
	want := []step{
		{Top, Coord{1, 0}},
		{Right, Coord{2, 1}},
		{Bottom, Coord{1, 2}},
		{Left, Coord{0, 1}},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d neighbors, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbor %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Corner only sees two neighbors
	corner := m.neighbors(Coord{0, 0})
	if len(corner) != 2 || corner[0].side != Right || corner[1].side != Bottom {
		t.Errorf("Unexpected corner neighbors: %v", corner)
	}

	// Visited cells are filtered out
	m.at(Coord{1, 0}).Visited = true
	m.at(Coord{0, 1}).Visited = true
	filtered := m.neighbors(Coord{1, 1})
	if len(filtered) != 2 || filtered[0].to != (Coord{2, 1}) || filtered[1].to != (Coord{1, 2}) {
		t.Errorf("Unexpected filtered neighbors: %v", filtered)
	}
}

func TestCarveClearsBothFlags(t *testing.T) {
	m, err := New(3, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	from := Coord{1, 1}
	for _, side := range Sides {
		m.carve(from, side)
		to := from.Step(side)
		if m.Cell(from.X, from.Y).Wall(side) {
			t.Errorf("carve %s left %v closed", side, from)
		}
		if m.Cell(to.X, to.Y).Wall(side.Opposite()) {
			t.Errorf("carve %s left %v closed on %s", side, to, side.Opposite())
		}
		if !m.CanMove(from, side) || !m.CanMove(to, side.Opposite()) {
			t.Errorf("carve %s did not open a passage", side)
		}
	}
}

func TestGenerateVisitsEveryCell(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 20} {
		m := generate(t, size, rand.New(rand.NewSource(int64(size))))
		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				if !m.Cell(x, y).Visited {
					t.Errorf("size %d: cell (%d,%d) not visited", size, x, y)
				}
			}
		}
	}
}

func TestGenerateProducesSpanningTree(t *testing.T) {
	for _, seed := range []int64{1, 2, 42, 12345} {
		for _, size := range []int{1, 2, 5, 16} {
			m := generate(t, size, rand.New(rand.NewSource(seed)))
			assertSpanningTree(t, m)
		}
	}
}

// assertSpanningTree checks the open passages with a union-find:
// exactly size²-1 edges, none closing a cycle, one component.
func assertSpanningTree(t *testing.T, m *Maze) {
	t.Helper()
	size := m.Size()
	parent := make([]int, size*size)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	index := func(c Coord) int { return c.Y*size + c.X }

	edges := 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := Coord{x, y}
			for _, side := range []Side{Right, Bottom} {
				if !m.CanMove(c, side) {
					continue
				}
				edges++
				a, b := find(index(c)), find(index(c.Step(side)))
				if a == b {
					t.Fatalf("size %d: passage %v %s closes a cycle", size, c, side)
				}
				parent[a] = b
			}
		}
	}

	if edges != size*size-1 {
		t.Errorf("size %d: expected %d passages, got %d", size, size*size-1, edges)
	}
	if m.Passages() != edges {
		t.Errorf("size %d: Passages() = %d, counted %d", size, m.Passages(), edges)
	}
	root := find(0)
	for i := range parent {
		if find(i) != root {
			t.Fatalf("size %d: cell %d is disconnected", size, i)
		}
	}
}

func TestWallMirrorInvariant(t *testing.T) {
	m := generate(t, 12, rand.New(rand.NewSource(7)))

	for x := 0; x < m.Size(); x++ {
		for y := 0; y < m.Size(); y++ {
			c := Coord{x, y}
			for _, side := range Sides {
				n := c.Step(side)
				if !m.InBounds(n) {
					continue
				}
				if m.HasWall(c, side) != m.HasWall(n, side.Opposite()) {
					t.Errorf("%v %s disagrees with %v %s", c, side, n, side.Opposite())
				}
				// A carved wall is open on both raw flags
				if !m.HasWall(c, side) {
					if m.Cell(c.X, c.Y).Wall(side) || m.Cell(n.X, n.Y).Wall(side.Opposite()) {
						t.Errorf("open wall between %v and %v still flagged", c, n)
					}
				}
			}
		}
	}
}

func TestBorderSealed(t *testing.T) {
	m := generate(t, 9, rand.New(rand.NewSource(99)))
	last := m.Size() - 1

	for i := 0; i < m.Size(); i++ {
		if !m.Cell(i, 0).Wall(Top) {
			t.Errorf("cell (%d,0) top wall open", i)
		}
		if !m.Cell(0, i).Wall(Left) {
			t.Errorf("cell (0,%d) left wall open", i)
		}
		if !m.Cell(i, last).Wall(Bottom) {
			t.Errorf("cell (%d,%d) bottom wall open", i, last)
		}
		if !m.Cell(last, i).Wall(Right) {
			t.Errorf("cell (%d,%d) right wall open", last, i)
		}
	}
}

func TestGenerateSingleCell(t *testing.T) {
	src := &scriptedSource{}
	m := generate(t, 1, src)

	cell := m.Cell(0, 0)
	if cell.Walls != [4]bool{true, true, true, true} {
		t.Errorf("1x1 maze walls = %v, want all closed", cell.Walls)
	}
	if !cell.Visited {
		t.Error("1x1 maze cell should be visited")
	}
	if m.Passages() != 0 {
		t.Errorf("1x1 maze should have no passages, got %d", m.Passages())
	}
	if len(src.calls) != 0 {
		t.Errorf("1x1 maze should make no random choices, made %v", src.calls)
	}
}

func TestGenerateTwiceIsRejected(t *testing.T) {
	m := generate(t, 6, rand.New(rand.NewSource(3)))
	before := m.Walls()

	err := m.Generate(context.Background())
	if !errors.Is(err, ErrAlreadyGenerated) {
		t.Fatalf("second Generate error = %v, want ErrAlreadyGenerated", err)
	}

	after := m.Walls()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("second Generate changed cell %d: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	seed := int64(12345)

	m1 := generate(t, 15, rand.New(rand.NewSource(seed)))
	m2 := generate(t, 15, rand.New(rand.NewSource(seed)))

	w1, w2 := m1.Walls(), m2.Walls()
	for i := range w1 {
		if w1[i] != w2[i] {
			t.Errorf("Cell %d mismatch: %v != %v", i, w1[i], w2[i])
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	m1 := generate(t, 15, rand.New(rand.NewSource(12345)))
	m2 := generate(t, 15, rand.New(rand.NewSource(54321)))

	if m1.String() == m2.String() {
		t.Error("Mazes with different seeds should not be identical")
	}
}

// Every 2x2 backtracker run is decided by its first choice: after that each
// step has a single candidate. Cells are listed row by row.
var twoByTwoOracle = map[int][][4]bool{
	// right first: (0,0)->(1,0)->(1,1)->(0,1)
	0: {
		{true, false, true, true},
		{true, true, false, false},
		{false, false, true, true},
		{false, true, true, false},
	},
	// bottom first: (0,0)->(0,1)->(1,1)->(1,0)
	1: {
		{true, true, false, true},
		{true, true, false, false},
		{false, false, true, true},
		{false, true, true, false},
	},
}

func TestTwoByTwoOracle(t *testing.T) {
	for choice, want := range twoByTwoOracle {
		src := &scriptedSource{choices: []int{choice}}
		m := generate(t, 2, src)

		got := m.Walls()
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("choice %d: cell %d walls = %v, want %v", choice, i, got[i], want[i])
			}
		}
		if m.Passages() != 3 {
			t.Errorf("choice %d: expected 3 passages, got %d", choice, m.Passages())
		}

		wantCalls := []int{2, 1, 1}
		if len(src.calls) != len(wantCalls) {
			t.Fatalf("choice %d: random calls = %v, want %v", choice, src.calls, wantCalls)
		}
		for i := range wantCalls {
			if src.calls[i] != wantCalls[i] {
				t.Errorf("choice %d: call %d asked Intn(%d), want Intn(%d)", choice, i, src.calls[i], wantCalls[i])
			}
		}
	}
}

func TestTwoByTwoSeedsMatchOracle(t *testing.T) {
	seen := map[int]bool{}
	for seed := int64(0); seed < 64; seed++ {
		m := generate(t, 2, rand.New(rand.NewSource(seed)))
		got := m.Walls()

		matched := -1
		for choice, want := range twoByTwoOracle {
			same := true
			for i := range want {
				if got[i] != want[i] {
					same = false
					break
				}
			}
			if same {
				matched = choice
			}
		}
		if matched < 0 {
			t.Fatalf("seed %d produced a configuration outside the oracle: %v", seed, got)
		}
		seen[matched] = true
	}

	if len(seen) != len(twoByTwoOracle) {
		t.Errorf("Expected every oracle configuration across seeds, saw %v", seen)
	}
}

func TestShortestPath(t *testing.T) {
	m := generate(t, 2, &scriptedSource{choices: []int{0}})

	path := m.ShortestPath(Coord{0, 0}, Coord{0, 1})
	want := []Coord{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}

	if got := m.ShortestPath(Coord{0, 0}, Coord{5, 5}); got != nil {
		t.Errorf("out of bounds target should yield nil, got %v", got)
	}

	big := generate(t, 25, rand.New(rand.NewSource(8)))
	route := big.ShortestPath(Coord{0, 0}, Coord{24, 24})
	if len(route) == 0 {
		t.Fatal("generated maze should connect opposite corners")
	}
	for i := 1; i < len(route); i++ {
		moved := false
		for _, side := range Sides {
			if route[i-1].Step(side) == route[i] && big.CanMove(route[i-1], side) {
				moved = true
			}
		}
		if !moved {
			t.Fatalf("path step %v -> %v crosses a wall", route[i-1], route[i])
		}
	}
}

func TestShortestPathUngenerated(t *testing.T) {
	m, err := New(3, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if path := m.ShortestPath(Coord{0, 0}, Coord{2, 2}); path != nil {
		t.Errorf("walled grid should have no path, got %v", path)
	}
	if path := m.ShortestPath(Coord{1, 1}, Coord{1, 1}); len(path) != 1 {
		t.Errorf("path to self should be a single cell, got %v", path)
	}
}

func TestString(t *testing.T) {
	single := generate(t, 1, &scriptedSource{})
	if got, want := single.String(), "+---+\n|   |\n+---+\n"; got != want {
		t.Errorf("1x1 String() =\n%s\nwant\n%s", got, want)
	}

	m := generate(t, 2, &scriptedSource{choices: []int{0}})
	want := "+---+---+\n" +
		"|       |\n" +
		"+---+   +\n" +
		"|       |\n" +
		"+---+---+\n"
	if got := m.String(); got != want {
		t.Errorf("2x2 String() =\n%s\nwant\n%s", got, want)
	}
}

func TestRestore(t *testing.T) {
	m := generate(t, 6, rand.New(rand.NewSource(11)))

	restored, err := Restore(6, m.Walls())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if !restored.Generated() {
		t.Error("restored maze should be marked generated")
	}
	if restored.String() != m.String() {
		t.Errorf("restored maze differs:\n%s\nvs\n%s", restored.String(), m.String())
	}
	assertSpanningTree(t, restored)

	if _, err := Restore(6, m.Walls()[:5]); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("short wall list error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := Restore(0, nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("zero size error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRestoreRejectsCorruptWalls(t *testing.T) {
	valid := func() [][4]bool {
		w := make([][4]bool, len(twoByTwoOracle[0]))
		copy(w, twoByTwoOracle[0])
		return w
	}

	tests := []struct {
		name    string
		corrupt func(w [][4]bool)
	}{
		{"all open", func(w [][4]bool) {
			for i := range w {
				w[i] = [4]bool{}
			}
		}},
		{"top border open", func(w [][4]bool) { w[0][Top] = false }},
		{"left border open", func(w [][4]bool) { w[2][Left] = false }},
		{"bottom border open", func(w [][4]bool) { w[3][Bottom] = false }},
		{"right border open", func(w [][4]bool) { w[1][Right] = false }},
		{"mirror flag set", func(w [][4]bool) { w[3][Top] = true }},
		{"extra passage closes a cycle", func(w [][4]bool) { w[0][Bottom] = false }},
		{"missing passage", func(w [][4]bool) { w[0][Right] = true }},
	}

	if _, err := Restore(2, valid()); err != nil {
		t.Fatalf("Oracle maze should restore, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walls := valid()
			tt.corrupt(walls)
			m, err := Restore(2, walls)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Restore error = %v, want ErrInvalidConfiguration", err)
			}
			if m != nil {
				t.Error("Corrupt walls should not produce a maze")
			}
		})
	}

	if _, err := Restore(1, [][4]bool{{true, true, false, true}}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Open 1x1 border error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRestoreRejectsDisconnectedCells(t *testing.T) {
	// 3x3 with eight passages: the top-left 2x2 block is a ring, which
	// leaves (2,2) cut off from the rest.
	m, err := New(3, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	m.carve(Coord{0, 0}, Right)
	m.carve(Coord{1, 0}, Bottom)
	m.carve(Coord{1, 1}, Left)
	m.carve(Coord{0, 1}, Top)
	m.carve(Coord{1, 0}, Right)
	m.carve(Coord{2, 0}, Bottom)
	m.carve(Coord{0, 1}, Bottom)
	m.carve(Coord{0, 2}, Right)

	if _, err := Restore(3, m.Walls()); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Disconnected maze error = %v, want ErrInvalidConfiguration", err)
	}
}
