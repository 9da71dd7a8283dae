package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerated(t *testing.T, width, height int, seed int64) *Maze {
	t.Helper()
	m, err := New(width, height, 3.0)
	require.NoError(t, err)
	m.Generate(rand.New(rand.NewSource(seed)))
	return m
}

// openDoorways counts carved passages, each shared wall counted once.
func openDoorways(m *Maze) int {
	count := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.HasWall(x, y, East) && m.InBound(x+1, y) {
				count++
			}
			if !m.HasWall(x, y, South) && m.InBound(x, y+1) {
				count++
			}
		}
	}
	return count
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	testCases := []struct {
		name     string
		width    int
		height   int
		cellSize float64
		want     error
	}{
		{"zero width", 0, 5, 3.0, ErrInvalidDimensions},
		{"negative height", 5, -1, 3.0, ErrInvalidDimensions},
		{"zero cell size", 5, 5, 0, ErrInvalidCellSize},
		{"negative cell size", 5, 5, -2.5, ErrInvalidCellSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.width, tc.height, tc.cellSize)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewStartsFullyWalled(t *testing.T) {
	m, err := New(4, 3, 2.0)
	require.NoError(t, err)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			for _, dir := range []Direction{North, East, South, West} {
				assert.True(t, m.HasWall(x, y, dir), "cell (%d,%d) side %s", x, y, dir)
			}
		}
	}
	assert.Equal(t, CellPos{X: 0, Y: 0}, m.Start())
	assert.Equal(t, CellPos{X: 3, Y: 2}, m.Exit())
}

func TestGenerateConnectsEveryCellExactlyOnce(t *testing.T) {
	m := newGenerated(t, 15, 15, 42)

	// BFS over open doorways from the start cell.
	visited := make(map[CellPos]bool)
	queue := []CellPos{m.Start()}
	visited[m.Start()] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dir := range []Direction{North, East, South, West} {
			if m.HasWall(cur.X, cur.Y, dir) {
				continue
			}
			dx, dy := dir.Delta()
			next := CellPos{X: cur.X + dx, Y: cur.Y + dy}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	assert.Len(t, visited, m.Width()*m.Height())
}

func TestGenerateProducesSpanningTreeEdgeCount(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		m := newGenerated(t, 12, 9, seed)
		assert.Equal(t, m.Width()*m.Height()-1, openDoorways(m), "seed %d", seed)
	}
}

func TestHasWallOutsideGridIsSolid(t *testing.T) {
	m := newGenerated(t, 5, 5, 7)

	outside := []CellPos{
		{X: -1, Y: 0}, {X: 5, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 5},
		{X: -10, Y: -10}, {X: 100, Y: 100},
	}
	for _, pos := range outside {
		for _, dir := range []Direction{North, East, South, West} {
			assert.True(t, m.HasWall(pos.X, pos.Y, dir), "cell (%d,%d) side %s", pos.X, pos.Y, dir)
		}
	}
}

func TestCellWorldRoundTrip(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 2}, {7, 4}, {15, 15}} {
		m := newGenerated(t, dims[0], dims[1], 3)
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				wx, wz := m.CellToWorld(x, y)
				cx, cy := m.WorldToCell(wx, wz)
				assert.Equal(t, x, cx, "maze %dx%d cell (%d,%d)", dims[0], dims[1], x, y)
				assert.Equal(t, y, cy, "maze %dx%d cell (%d,%d)", dims[0], dims[1], x, y)
			}
		}
	}
}

func TestWorldToCellTruncatesTowardZero(t *testing.T) {
	m, err := New(4, 4, 2.0)
	require.NoError(t, err)

	// Grid spans [-4, 4) on both axes. A point just west of it lands in
	// the fractional band that truncation collapses into column 0.
	x, y := m.WorldToCell(-4.5, 0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)
}

func TestOneByOneMaze(t *testing.T) {
	m := newGenerated(t, 1, 1, 99)

	for _, dir := range []Direction{North, East, South, West} {
		assert.True(t, m.HasWall(0, 0, dir))
	}
	assert.Equal(t, m.Start(), m.Exit())
	assert.True(t, m.IsExit(0, 0))
	assert.Equal(t, 0, openDoorways(m))
}

func TestTwoByTwoMaze(t *testing.T) {
	m := newGenerated(t, 2, 2, 5)

	assert.Equal(t, 3, openDoorways(m))

	visited := map[CellPos]bool{m.Start(): true}
	queue := []CellPos{m.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dir := range []Direction{North, East, South, West} {
			if m.HasWall(cur.X, cur.Y, dir) {
				continue
			}
			dx, dy := dir.Delta()
			next := CellPos{X: cur.X + dx, Y: cur.Y + dy}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	assert.Len(t, visited, 4)
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := newGenerated(t, 10, 10, 1234)
	b := newGenerated(t, 10, 10, 1234)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	// A pair of colliding layouts is astronomically unlikely at this
	// size; five distinct seeds producing five distinct mazes is a safe
	// expectation.
	layouts := make(map[string]bool)
	for seed := int64(0); seed < 5; seed++ {
		m := newGenerated(t, 10, 10, seed)
		layouts[m.String()] = true
	}
	assert.Len(t, layouts, 5)
}

func TestIsExit(t *testing.T) {
	m := newGenerated(t, 6, 4, 11)
	assert.True(t, m.IsExit(5, 3))
	assert.False(t, m.IsExit(0, 0))
	assert.False(t, m.IsExit(5, 0))
}

func TestStringRendersGrid(t *testing.T) {
	m := newGenerated(t, 3, 3, 21)
	s := m.String()
	assert.Contains(t, s, "+")
	// One header line plus two lines per row.
	assert.Equal(t, 2*m.Height()+1, len(splitNonEmptyLines(s)))
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
