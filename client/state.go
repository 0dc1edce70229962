package client

import "github.com/zucenko/eggroll/model"

// State mirrors what the server has told this client about its session.
type State struct {
	LevelID     int
	Width       int
	Height      int
	EditMode    bool
	TileIds     [][]int
	Players     []model.PlayerInfo
	Tick        int
	RenderAngle int
	RotationLag float32
	Status      model.Status
}

// Apply folds one server message into the mirror in wire order: setup,
// tiles, frames, status. It reports whether a new status arrived.
func (s *State) Apply(msg model.ServerMessage) bool {
	for _, setup := range msg.Setup {
		s.LevelID = setup.LevelID
		s.Width = setup.Width
		s.Height = setup.Height
		s.EditMode = setup.EditMode
		s.TileIds = make([][]int, len(setup.TileIds))
		for x := range setup.TileIds {
			s.TileIds[x] = append([]int(nil), setup.TileIds[x]...)
		}
	}
	for _, t := range msg.Tiles {
		if t.X >= 0 && t.X < len(s.TileIds) && t.Y >= 0 && t.Y < len(s.TileIds[t.X]) {
			s.TileIds[t.X][t.Y] = t.Id
		}
	}
	if n := len(msg.Frames); n > 0 {
		f := msg.Frames[n-1]
		s.Tick = f.Tick
		s.RenderAngle = f.RenderAngle
		s.RotationLag = f.RotationLag
		s.Players = f.Players
	}
	if n := len(msg.Status); n > 0 {
		s.Status = msg.Status[n-1]
		return true
	}
	return false
}

// TileAt returns 0 outside the board.
func (s *State) TileAt(x, y int) int {
	if x < 0 || x >= len(s.TileIds) || y < 0 || y >= len(s.TileIds[x]) {
		return 0
	}
	return s.TileIds[x][y]
}

// CellAt maps a pixel inside the board view to a tile.
func (s *State) CellAt(px, py, tileSize int) (int, int, bool) {
	if tileSize <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y := px/tileSize, py/tileSize
	if x >= s.Width || y >= s.Height {
		return 0, 0, false
	}
	return x, y, true
}

// PlayerPosition is the top-left pixel of an egg for the given tile size.
func PlayerPosition(p model.PlayerInfo, tileSize int) (float64, float64) {
	fullX, fullY := model.Coords{X: p.X, Y: p.Y, OffsetX: p.OffsetX, OffsetY: p.OffsetY}.ActualPosition()
	scale := float64(tileSize) / model.SPRITE_SIZE
	return float64(fullX) * scale, float64(fullY) * scale
}
