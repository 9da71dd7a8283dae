// Package gameapi exposes hunt sessions, run history and the leaderboard
// over HTTP.
package gameapi

import (
	"github.com/mazehunt/mazehunt-api/maze"
)

// StartHuntRequest asks for a new hunt. Zero dimensions fall back to the
// server defaults.
type StartHuntRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CellResponse lists which of a cell's four walls are solid.
type CellResponse struct {
	North bool `json:"north"`
	East  bool `json:"east"`
	South bool `json:"south"`
	West  bool `json:"west"`
}

// CellPosResponse is a cell coordinate, column then row.
type CellPosResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WallRectResponse is one collision rectangle on the floor plane.
type WallRectResponse struct {
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Vertical bool    `json:"vertical"`
}

// TorchResponse is one decorative torch on a wall face.
type TorchResponse struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	NormalX       float64 `json:"normal_x"`
	NormalZ       float64 `json:"normal_z"`
	FlickerPhase  float64 `json:"flicker_phase"`
	BaseIntensity float64 `json:"base_intensity"`
}

// MazeResponse is the full generated layout a client needs to render and
// predict movement locally.
type MazeResponse struct {
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	CellSize  float64            `json:"cell_size"`
	Start     CellPosResponse    `json:"start"`
	Exit      CellPosResponse    `json:"exit"`
	Cells     [][]CellResponse   `json:"cells"` // indexed [row][col]
	WallRects []WallRectResponse `json:"wall_rects"`
	Torches   []TorchResponse    `json:"torches"`
}

// StartHuntResponse is returned when a hunt begins: the layout plus the
// realtime socket the client must connect to.
type StartHuntResponse struct {
	Maze         MazeResponse `json:"maze"`
	SocketPubKey []byte       `json:"socket_pubkey"`
	SocketAddr   string       `json:"socket_addr"`
}

// SessionInfoResponse points a reconnecting client at the realtime socket.
type SessionInfoResponse struct {
	SocketPubKey []byte `json:"socket_pubkey"`
	SocketAddr   string `json:"socket_addr"`
}

// RunResponse is one finished hunt in a player's history.
type RunResponse struct {
	ID             string `json:"id"`
	MazeWidth      int    `json:"maze_width"`
	MazeHeight     int    `json:"maze_height"`
	Outcome        string `json:"outcome"`
	DurationMillis int64  `json:"duration_millis"`
	FinishedAt     string `json:"finished_at"`
}

// LeaderboardEntryResponse is one ranked escape time.
type LeaderboardEntryResponse struct {
	PlayerID   string `json:"player_id"`
	TimeMillis int64  `json:"time_millis"`
}

// newMazeResponse flattens a generated maze into its wire form.
func newMazeResponse(m *maze.Maze, torches []maze.Torch) MazeResponse {
	cells := make([][]CellResponse, m.Height())
	for y := 0; y < m.Height(); y++ {
		row := make([]CellResponse, m.Width())
		for x := 0; x < m.Width(); x++ {
			row[x] = CellResponse{
				North: m.HasWall(x, y, maze.North),
				East:  m.HasWall(x, y, maze.East),
				South: m.HasWall(x, y, maze.South),
				West:  m.HasWall(x, y, maze.West),
			}
		}
		cells[y] = row
	}

	buf := make([]maze.WallRect, m.MaxWallRects())
	buf = buf[:m.AppendWallRects(buf)]
	rects := make([]WallRectResponse, 0, len(buf))
	for _, r := range buf {
		rects = append(rects, WallRectResponse{X: r.X, Z: r.Z, W: r.W, H: r.H, Vertical: r.Vertical})
	}

	torchResponses := make([]TorchResponse, 0, len(torches))
	for _, t := range torches {
		torchResponses = append(torchResponses, TorchResponse{
			X:             t.X,
			Y:             t.Y,
			Z:             t.Z,
			NormalX:       t.NormalX,
			NormalZ:       t.NormalZ,
			FlickerPhase:  t.FlickerPhase,
			BaseIntensity: t.BaseIntensity,
		})
	}

	return MazeResponse{
		Width:     m.Width(),
		Height:    m.Height(),
		CellSize:  m.CellSize(),
		Start:     CellPosResponse{X: m.Start().X, Y: m.Start().Y},
		Exit:      CellPosResponse{X: m.Exit().X, Y: m.Exit().Y},
		Cells:     cells,
		WallRects: rects,
		Torches:   torchResponses,
	}
}
