package maze

// Direction identifies one side of a cell.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var (
	opposites = [4]Direction{South, West, North, East}

	// Grid deltas per direction. Y grows southward, matching the
	// world Z axis.
	deltaX = [4]int{0, 1, 0, -1}
	deltaY = [4]int{-1, 0, 1, 0}

	directionNames = [4]string{"north", "east", "south", "west"}
)

// Opposite returns the direction facing back at d.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

// Delta returns the cell-coordinate offset of the neighbor in direction d.
func (d Direction) Delta() (dx, dy int) {
	return deltaX[d], deltaY[d]
}

func (d Direction) String() string {
	if d > West {
		return "invalid"
	}
	return directionNames[d]
}

// Wall is a bitmask of wall sides present on a single cell.
type Wall uint8

const (
	WallNorth Wall = 1 << iota
	WallEast
	WallSouth
	WallWest

	// WallAll is the mask of a fully enclosed cell.
	WallAll = WallNorth | WallEast | WallSouth | WallWest
)

// bit returns the wall-mask bit guarding side d of a cell.
func (d Direction) bit() Wall {
	return 1 << d
}
