package maze

import (
	"math"
	"math/rand"
)

const (
	torchHeight     = 2.0  // mounting height on the wall
	torchWallOffset = 0.11 // clearance from the wall surface
	torchChance     = 0.08 // fraction of wall faces that carry a torch

	torchEdgeMargin = 0.25 // keep torches away from wall ends
)

// Torch is a light fixture mounted on a wall face. The server only decides
// placement; flames and lighting are rendered client-side. The normal
// points into the corridor the torch illuminates.
type Torch struct {
	X float64
	Y float64
	Z float64

	NormalX float64
	NormalZ float64

	// FlickerPhase desynchronizes the flame animations between torches,
	// BaseIntensity varies their brightness.
	FlickerPhase  float64
	BaseIntensity float64
}

// PlaceTorches scatters up to max torches over the maze's wall faces. Each
// face gets one with a small independent probability, at a random lateral
// position along the wall, so lit stretches stay sparse and uneven.
// Placement must run after Generate.
func (m *Maze) PlaceTorches(rng *rand.Rand, max int) []Torch {
	if max <= 0 {
		return nil
	}

	type wallFace struct {
		dir          Direction
		faceX, faceZ float64 // center of the wall face
	}

	faces := make([]wallFace, 0, m.MaxWallRects())
	halfCell := m.cellSize * 0.5

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			centerX, centerZ := m.CellToWorld(x, y)
			if m.HasWall(x, y, North) {
				faces = append(faces, wallFace{dir: North, faceX: centerX, faceZ: centerZ - halfCell})
			}
			if m.HasWall(x, y, South) {
				faces = append(faces, wallFace{dir: South, faceX: centerX, faceZ: centerZ + halfCell})
			}
			if m.HasWall(x, y, West) {
				faces = append(faces, wallFace{dir: West, faceX: centerX - halfCell, faceZ: centerZ})
			}
			if m.HasWall(x, y, East) {
				faces = append(faces, wallFace{dir: East, faceX: centerX + halfCell, faceZ: centerZ})
			}
		}
	}

	torches := make([]Torch, 0, max)
	for _, face := range faces {
		if len(torches) == max {
			break
		}
		if rng.Float64() >= torchChance {
			continue
		}

		// Random position along the wall, clear of both ends.
		along := rng.Float64()*(m.cellSize-2*torchEdgeMargin) + torchEdgeMargin

		t := Torch{
			Y:             torchHeight,
			FlickerPhase:  rng.Float64() * 2 * math.Pi,
			BaseIntensity: 0.6 + rng.Float64()*0.3,
		}
		switch face.dir {
		case North:
			t.X = face.faceX - halfCell + along
			t.Z = face.faceZ - torchWallOffset
			t.NormalZ = 1
		case South:
			t.X = face.faceX - halfCell + along
			t.Z = face.faceZ + torchWallOffset
			t.NormalZ = -1
		case West:
			t.X = face.faceX - torchWallOffset
			t.Z = face.faceZ - halfCell + along
			t.NormalX = 1
		case East:
			t.X = face.faceX + torchWallOffset
			t.Z = face.faceZ - halfCell + along
			t.NormalX = -1
		}

		torches = append(torches, t)
	}

	return torches
}
