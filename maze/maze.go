/*
Package maze provides generation and querying of rectangular perfect mazes.

A Maze is a dense grid of cells, each holding a bitmask of its four walls.
Generate carves a spanning tree through the grid with a randomized
depth-first backtracker, after which the maze is connected and acyclic:
exactly one path exists between any two cells. The finished maze answers
wall queries, converts between cell and world coordinates, extracts
axis-aligned collision rectangles for its walls, and places decorative
torches along them.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
	ErrInvalidCellSize   = errors.New("maze cell size must be positive")
)

// CellPos addresses a single cell. X is the column, Y the row; Y grows
// southward so that it maps directly onto the world Z axis.
type CellPos struct {
	X int
	Y int
}

// Maze is a rectangular grid of wall-masked cells in XZ world space.
// The start cell is the north-west corner, the exit the south-east one.
type Maze struct {
	width    int
	height   int
	cellSize float64
	cells    []Wall
	start    CellPos
	exit     CellPos
}

// New creates a fully walled maze of the given dimensions. cellSize is the
// edge length of one cell in world units. The maze is not carved yet; call
// Generate exactly once before querying walls.
func New(width, height int, cellSize float64) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	if cellSize <= 0 {
		return nil, ErrInvalidCellSize
	}

	cells := make([]Wall, width*height)
	for i := range cells {
		cells[i] = WallAll
	}

	return &Maze{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    cells,
		start:    CellPos{X: 0, Y: 0},
		exit:     CellPos{X: width - 1, Y: height - 1},
	}, nil
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// CellSize returns the edge length of one cell in world units.
func (m *Maze) CellSize() float64 { return m.cellSize }

// Start returns the spawn cell.
func (m *Maze) Start() CellPos { return m.start }

// Exit returns the exit cell.
func (m *Maze) Exit() CellPos { return m.exit }

// InBound reports whether the cell coordinates lie inside the grid.
func (m *Maze) InBound(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Maze) index(x, y int) int {
	return y*m.width + x
}

// HasWall reports whether the cell at (x, y) has a wall on side dir.
// Coordinates outside the grid report a wall: the exterior is solid, so
// boundary-probing callers never need a bounds check of their own.
func (m *Maze) HasWall(x, y int, dir Direction) bool {
	if !m.InBound(x, y) {
		return true
	}
	return m.cells[m.index(x, y)]&dir.bit() != 0
}

// openWall removes the wall between (x, y) and its neighbor in direction
// dir, clearing the facing bit on both cells.
func (m *Maze) openWall(x, y int, dir Direction) {
	dx, dy := dir.Delta()
	m.cells[m.index(x, y)] &^= dir.bit()
	m.cells[m.index(x+dx, y+dy)] &^= dir.Opposite().bit()
}

// Generate carves a perfect maze with a randomized depth-first backtracker.
// Starting from the start cell it repeatedly visits a random unvisited
// neighbor of the current cell, opening the wall between them, and
// backtracks when none is left. The walk uses an explicit stack, so
// recursion depth is not a concern for large grids.
//
// The result is a spanning tree over the grid: every cell reachable from
// every other by exactly one path, with width*height-1 open doorways.
// Generate must run once, on a freshly created maze.
func (m *Maze) Generate(rng *rand.Rand) {
	visited := make([]bool, len(m.cells))
	stack := make([]CellPos, 0, len(m.cells))

	visited[m.index(m.start.X, m.start.Y)] = true
	stack = append(stack, m.start)

	dirs := [4]Direction{North, East, South, West}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		// A fresh permutation of the four directions every step keeps
		// the tree shape unbiased.
		rng.Shuffle(len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})

		carved := false
		for _, dir := range dirs {
			dx, dy := dir.Delta()
			nx, ny := cur.X+dx, cur.Y+dy
			if !m.InBound(nx, ny) || visited[m.index(nx, ny)] {
				continue
			}
			m.openWall(cur.X, cur.Y, dir)
			visited[m.index(nx, ny)] = true
			stack = append(stack, CellPos{X: nx, Y: ny})
			carved = true
			break
		}

		if !carved {
			stack = stack[:len(stack)-1]
		}
	}
}

// CellToWorld returns the world-space center of the cell at (x, y). The
// whole maze is centered on the world origin.
func (m *Maze) CellToWorld(x, y int) (worldX, worldZ float64) {
	worldX = (float64(x) - float64(m.width)*0.5 + 0.5) * m.cellSize
	worldZ = (float64(y) - float64(m.height)*0.5 + 0.5) * m.cellSize
	return worldX, worldZ
}

// WorldToCell returns the cell containing the world-space point. The
// conversion truncates toward zero rather than flooring; positions outside
// the maze on the negative side therefore collapse toward the grid center.
// Exit detection depends on this exact arithmetic, so it stays as is.
func (m *Maze) WorldToCell(worldX, worldZ float64) (x, y int) {
	x = int(worldX/m.cellSize + float64(m.width)*0.5)
	y = int(worldZ/m.cellSize + float64(m.height)*0.5)
	return x, y
}

// IsExit reports whether (x, y) is the exit cell.
func (m *Maze) IsExit(x, y int) bool {
	return x == m.exit.X && y == m.exit.Y
}

// String renders the maze as an ASCII box drawing, one row of cells per
// text row plus the separating wall rows.
func (m *Maze) String() string {
	var b strings.Builder

	b.WriteString("+" + strings.Repeat("---+", m.width) + "\n")

	for y := 0; y < m.height; y++ {
		b.WriteString("|")
		for x := 0; x < m.width; x++ {
			if m.HasWall(x, y, East) {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n+")
		for x := 0; x < m.width; x++ {
			if m.HasWall(x, y, South) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
