package model

import "math/rand"

func NewModel(tileSize int, rnd *rand.Rand, listener Listener) *Model {
	if listener == nil {
		listener = NopListener{}
	}
	tiles := DefaultTileSet()
	types := DefaultPlayerTypes()
	return &Model{
		Board:        NewBlankBoard(tiles, NewBoardSize(BLANK_BOARD_SIZE), rnd),
		Tiles:        tiles,
		Types:        types,
		Collisions:   &Collisions{Types: types},
		Players:      make(map[int32]*Player),
		PlayerKeys:   make([]int32, 0),
		MoveSpeed:    DEFAULT_MOVE_SPEED,
		State:        MS_LOADING,
		nextPlayerId: 1,
		tileSize:     tileSize,
		listener:     listener,
		rnd:          rnd,
	}
}

func (m *Model) TileSize() int {
	return m.tileSize
}

// SetTileSize is called by the scale provider whenever the view is resized.
func (m *Model) SetTileSize(tileSize int) {
	if tileSize > 0 {
		m.tileSize = tileSize
	}
}

func (m *Model) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	m.listener = l
}

func (m *Model) setState(s ModelState) {
	if m.State == s {
		return
	}
	m.State = s
	m.listener.StateChanged(s)
}

// BeginLoad stops ticking until LoadBoard installs the requested board.
func (m *Model) BeginLoad() {
	m.setState(MS_LOADING)
}

// LoadBoard installs a freshly loaded board, respawns the eggs and resets
// score and rotations. The model is left paused.
func (m *Model) LoadBoard(b *Board, levelID int) {
	m.Board = b
	m.LevelID = levelID
	m.Board.MarkAllForRedraw()
	m.destroyPlayers()
	if !m.EditMode {
		m.CreatePlayers()
	}
	m.RotationsUsed = 0
	m.resetScore()
	m.setState(MS_PAUSED)
}

func (m *Model) NewRandomBoard(size BoardSize) *Board {
	return NewRandomBoard(m.Tiles, size, m.rnd)
}

func (m *Model) NewBoardFromIds(size BoardSize, ids [][]int) *Board {
	return NewBoardFromIds(m.Tiles, size, ids, m.rnd)
}

// Start resumes ticking. It refuses while loading, rotating, editing or
// without a tile size.
func (m *Model) Start() bool {
	if m.State != MS_PAUSED || m.EditMode || m.tileSize <= 0 {
		return false
	}
	m.setState(MS_PLAY)
	return true
}

// Pause is idempotent and cannot interrupt a rotation.
func (m *Model) Pause() bool {
	if m.State != MS_PLAY {
		return false
	}
	m.setState(MS_PAUSED)
	return true
}

// SetEditMode pauses and clears the eggs on entry; leaving respawns them.
func (m *Model) SetEditMode(edit bool) {
	if edit == m.EditMode {
		return
	}
	m.EditMode = edit
	if edit {
		m.Pause()
		m.destroyPlayers()
		return
	}
	m.CreatePlayers()
}

func (m *Model) resetScore() {
	m.Score = 0
	m.listener.ScoreChanged(m.Score)
}

func (m *Model) AddScore(amount int) {
	m.Score += amount
	m.listener.ScoreChanged(m.Score)
}

func (m *Model) CountPlayers() int {
	return len(m.Players)
}

// Collectable is the score still lying on the board.
func (m *Model) Collectable() int {
	return m.Board.Collectable()
}

// CompleteLevel ends the level once nothing is left to collect and at most
// one egg survives.
func (m *Model) CompleteLevel() bool {
	if m.Collectable() > 0 || m.CountPlayers() >= 2 {
		return false
	}
	m.setState(MS_COMPLETE)
	return true
}

// CreatePlayers spawns one egg per spawn tile, facing right.
func (m *Model) CreatePlayers() {
	m.destroyPlayers()
	m.Board.Each(func(x, y int, t *Tile) {
		if t.CreatePlayer != "" {
			m.CreateNewPlayer(t.CreatePlayer, Coords{X: x, Y: y}, 1)
		}
	})
}

func (m *Model) destroyPlayers() {
	m.Players = make(map[int32]*Player)
	m.PlayerKeys = make([]int32, 0)
}

// CreateNewPlayer returns nil for an unknown type.
func (m *Model) CreateNewPlayer(typeName string, c Coords, direction int) *Player {
	t, found := m.Types.ByName(typeName)
	if !found {
		return nil
	}
	p := NewPlayer(m.nextPlayerId, t, c, direction, m.MoveSpeed, m.Board, m)
	m.nextPlayerId++
	m.Players[p.Id] = p
	m.PlayerKeys = append(m.PlayerKeys, p.Id)
	return p
}

func (m *Model) DeletePlayer(id int32) {
	if _, found := m.Players[id]; !found {
		return
	}
	delete(m.Players, id)
	for i, k := range m.PlayerKeys {
		if k == id {
			m.PlayerKeys = append(m.PlayerKeys[:i], m.PlayerKeys[i+1:]...)
			break
		}
	}
}

// Tick moves every egg once in registry order, then applies the merges found
// during the sweep.
func (m *Model) Tick() bool {
	if m.State != MS_PLAY {
		return false
	}
	keys := append([]int32(nil), m.PlayerKeys...)
	consumed := make(map[int32]bool)
	merges := make([]*Merge, 0)

	for _, id := range keys {
		if m.State != MS_PLAY {
			break
		}
		p, found := m.Players[id]
		if !found {
			continue
		}
		p.DoCalcs()
		if consumed[id] {
			continue
		}
		for _, otherId := range keys {
			if consumed[otherId] {
				continue
			}
			merge := m.Collisions.CheckCollision(p, m.Players[otherId])
			if merge != nil {
				consumed[id] = true
				consumed[otherId] = true
				merges = append(merges, merge)
				break
			}
		}
	}

	for _, merge := range merges {
		m.applyMerge(merge)
	}
	m.Ticks++
	return true
}

func (m *Model) applyMerge(merge *Merge) {
	winner := merge.First
	merged := m.CreateNewPlayer(merge.Type.Type, winner.Coords(), winner.Direction)
	m.DeletePlayer(merge.First.Id)
	m.DeletePlayer(merge.Second.Id)
	if merged != nil {
		m.listener.PlayersMerged(merged)
	}
}

// Rotate turns the board and every egg a quarter turn and suspends ticking
// until FinishRotation.
func (m *Model) Rotate(clockwise bool) bool {
	if m.State != MS_PLAY || m.EditMode {
		return false
	}
	m.RotationsUsed++
	m.Board.Rotate(clockwise)
	for _, id := range m.PlayerKeys {
		m.Players[id].rotate(clockwise)
	}
	m.setState(MS_ROTATING)
	return true
}

func (m *Model) FinishRotation() bool {
	if m.State != MS_ROTATING {
		return false
	}
	m.setState(MS_PLAY)
	return true
}

func (m *Model) CycleTile(x, y int) bool {
	if !m.EditMode {
		return false
	}
	m.Board.CycleTile(x, y)
	return true
}

func (m *Model) GrowBoard() bool {
	if !m.EditMode {
		return false
	}
	return m.Board.Grow()
}

func (m *Model) ShrinkBoard() bool {
	if !m.EditMode {
		return false
	}
	return m.Board.Shrink()
}

// RandomizeBoard regenerates the board in place, edit mode only.
func (m *Model) RandomizeBoard() bool {
	if !m.EditMode {
		return false
	}
	m.Board.Randomize()
	return true
}

// OrderedPlayers returns the live eggs in registry order.
func (m *Model) OrderedPlayers() []*Player {
	out := make([]*Player, 0, len(m.PlayerKeys))
	for _, id := range m.PlayerKeys {
		out = append(out, m.Players[id])
	}
	return out
}

func (m *Model) PlayerInfos() []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(m.PlayerKeys))
	for _, p := range m.OrderedPlayers() {
		infos = append(infos, PlayerInfo{
			Id:           p.Id,
			Type:         p.Type,
			X:            p.X,
			Y:            p.Y,
			OffsetX:      p.OffsetX,
			OffsetY:      p.OffsetY,
			Direction:    p.Direction,
			CurrentFrame: p.CurrentFrame,
			Falling:      p.Falling,
		})
	}
	return infos
}

// DirtyTiles collects the tiles marked for redraw and clears the mark.
func (m *Model) DirtyTiles() []TileInfo {
	infos := make([]TileInfo, 0)
	m.Board.Each(func(x, y int, t *Tile) {
		if t.NeedsDraw {
			infos = append(infos, TileInfo{X: x, Y: y, Id: t.Id})
			t.NeedsDraw = false
		}
	})
	return infos
}

func (m *Model) MakeStatus(message string) Status {
	return Status{
		State:         m.State.Name(),
		LevelID:       m.LevelID,
		Score:         m.Score,
		RotationsUsed: m.RotationsUsed,
		Collectable:   m.Collectable(),
		Message:       message,
	}
}
