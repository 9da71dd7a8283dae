package maze

// wallThickness pads wall rectangles beyond the zero-width cell boundary
// so circle-vs-rectangle tests downstream never degenerate.
const wallThickness = 0.1

// WallRect is one wall segment as an axis-aligned rectangle in the XZ
// plane. X and Z are the minimum corner, W and H the extents along X and Z.
// Vertical is true for walls separating east/west neighbors (the segment
// runs along Z), false for north/south ones.
type WallRect struct {
	X float64
	Z float64
	W float64
	H float64

	Vertical bool
}

// MaxWallRects returns a buffer capacity that AppendWallRects can never
// exceed: four segments per cell, before shared-edge de-duplication.
func (m *Maze) MaxWallRects() int {
	return m.width * m.height * 4
}

// AppendWallRects writes the maze's wall rectangles into buf and returns
// how many were produced. It never writes past len(buf).
//
// Each cell emits its north and west walls; east and south walls are only
// emitted on the rightmost column and bottommost row. Interior walls are
// shared by two cells and attributed to the one whose north/west side they
// form, so every segment appears exactly once. Rectangles extend half a
// wall thickness beyond the cell edge on every side.
func (m *Maze) AppendWallRects(buf []WallRect) int {
	count := 0
	halfCell := m.cellSize * 0.5
	halfThick := wallThickness * 0.5

	for y := 0; y < m.height && count < len(buf); y++ {
		for x := 0; x < m.width && count < len(buf); x++ {
			centerX, centerZ := m.CellToWorld(x, y)

			if m.HasWall(x, y, North) {
				buf[count] = WallRect{
					X: centerX - halfCell - halfThick,
					Z: centerZ - halfCell - halfThick,
					W: m.cellSize + wallThickness,
					H: wallThickness,
				}
				count++
				if count == len(buf) {
					break
				}
			}

			if m.HasWall(x, y, West) {
				buf[count] = WallRect{
					X:        centerX - halfCell - halfThick,
					Z:        centerZ - halfCell - halfThick,
					W:        wallThickness,
					H:        m.cellSize + wallThickness,
					Vertical: true,
				}
				count++
				if count == len(buf) {
					break
				}
			}

			if x == m.width-1 && m.HasWall(x, y, East) {
				buf[count] = WallRect{
					X:        centerX + halfCell - halfThick,
					Z:        centerZ - halfCell - halfThick,
					W:        wallThickness,
					H:        m.cellSize + wallThickness,
					Vertical: true,
				}
				count++
				if count == len(buf) {
					break
				}
			}

			if y == m.height-1 && m.HasWall(x, y, South) {
				buf[count] = WallRect{
					X: centerX - halfCell - halfThick,
					Z: centerZ + halfCell - halfThick,
					W: m.cellSize + wallThickness,
					H: wallThickness,
				}
				count++
			}
		}
	}

	return count
}
