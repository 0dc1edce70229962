package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	scores []int
	states []ModelState
	merged []*Player
}

func (r *recordingListener) ScoreChanged(score int)        { r.scores = append(r.scores, score) }
func (r *recordingListener) StateChanged(state ModelState) { r.states = append(r.states, state) }
func (r *recordingListener) PlayersMerged(p *Player)       { r.merged = append(r.merged, p) }

// newTestModel returns a playing model on an all-sky board.
func newTestModel(t *testing.T, size int, l Listener) *Model {
	t.Helper()
	m := NewModel(SPRITE_SIZE, rand.New(rand.NewSource(1)), l)
	m.LoadBoard(NewBlankBoard(m.Tiles, NewBoardSize(size), m.rnd), 1)
	require.True(t, m.Start())
	return m
}

func setTile(m *Model, x, y, id int) {
	m.Board.SetTile(Coords{X: x, Y: y}, m.Tiles.Clone(id))
}

func floor(m *Model, y int) {
	for x := 0; x < m.Board.Size.Width; x++ {
		setTile(m, x, y, 2)
	}
}

func TestPlayerDefaultsFromType(t *testing.T) {
	m := newTestModel(t, 5, nil)
	p := m.CreateNewPlayer("blue-egg", Coords{X: 2, Y: 3}, 1)
	require.NotNil(t, p)
	assert.Equal(t, int32(1), p.Id)
	assert.Equal(t, 3, p.Value)
	assert.Equal(t, 5, p.Multiplier)
	assert.Equal(t, 18, p.Frames)
	assert.Equal(t, DEFAULT_MOVE_SPEED, p.MoveSpeed)
	assert.Equal(t, 0, p.CurrentFrame)
	assert.Equal(t, 0, p.OldDirection)
	assert.False(t, p.Falling)
	assert.Equal(t, PL_RIGHT, p.State())

	assert.Nil(t, m.CreateNewPlayer("golden-egg", Coords{}, 1))
	assert.Equal(t, 1, m.CountPlayers())
}

func TestIncrementPlayerFrame(t *testing.T) {
	p := &Player{Frames: 1}
	assert.False(t, p.incrementPlayerFrame(), "still player stays still")

	p = &Player{Frames: 1, OldDirection: 1}
	p.incrementPlayerFrame()
	assert.Equal(t, 0, p.OldDirection, "old direction wiped when stopped")

	p = &Player{Frames: 18, CurrentFrame: 3, Direction: -1}
	p.incrementPlayerFrame()
	assert.Equal(t, 2, p.CurrentFrame)

	p = &Player{Frames: 18, CurrentFrame: 0, Direction: -1}
	p.incrementPlayerFrame()
	assert.Equal(t, 17, p.CurrentFrame)

	p = &Player{Frames: 11, CurrentFrame: 10, OldDirection: 1}
	p.incrementPlayerFrame()
	assert.Equal(t, 0, p.CurrentFrame)

	// reversed player unwinds the old animation while starting the new one
	p = &Player{Frames: 18, CurrentFrame: 5, Direction: -1, OldDirection: 1}
	p.incrementPlayerFrame()
	assert.Equal(t, 5, p.CurrentFrame)
}

func TestCalcMoveAmount(t *testing.T) {
	assert.Equal(t, 10, CalcMoveAmount(10, 64))
	assert.Equal(t, 5, CalcMoveAmount(10, 32))
	assert.Equal(t, 11, CalcMoveAmount(15, 48))
	assert.Equal(t, 15, CalcMoveAmount(15, 64))
}

func TestTileActionOnlyWhenAligned(t *testing.T) {
	p := &Player{OffsetX: 12}
	assert.False(t, p.checkPlayerTileAction())
}

func TestCollectablePickup(t *testing.T) {
	l := &recordingListener{}
	m := newTestModel(t, 5, l)
	floor(m, 2)
	setTile(m, 1, 1, 4)
	p := m.CreateNewPlayer("red-egg", Coords{X: 1, Y: 1}, 0)

	assert.True(t, p.checkPlayerTileAction())
	assert.Equal(t, 20, m.Score)
	assert.Equal(t, TILE_SKY, m.Board.Matrix[1][1].Id)
	assert.Equal(t, []int{0, 20}, l.scores)

	assert.False(t, p.checkPlayerTileAction(), "one award per arrival")
	assert.Equal(t, 20, m.Score)
}

func TestTeleportPairing(t *testing.T) {
	m := newTestModel(t, 6, nil)
	setTile(m, 1, 1, TILE_DOOR)
	setTile(m, 4, 3, TILE_DOOR)
	p := m.CreateNewPlayer("egg", Coords{X: 1, Y: 1}, 0)

	assert.True(t, p.checkPlayerTileAction())
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 3, p.Y)
	assert.Equal(t, LAST_ACTION_TELEPORT, p.LastAction)

	assert.False(t, p.checkPlayerTileAction())
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 3, p.Y)
}

func TestTeleportWithoutSecondDoor(t *testing.T) {
	m := newTestModel(t, 6, nil)
	setTile(m, 2, 2, TILE_DOOR)
	p := m.CreateNewPlayer("egg", Coords{X: 2, Y: 2}, 0)

	assert.False(t, p.checkPlayerTileAction())
	assert.Equal(t, Coords{X: 2, Y: 2}, p.Coords())
	assert.Empty(t, p.LastAction)
}

func TestFallingThroughSky(t *testing.T) {
	m := newTestModel(t, 5, nil)
	p := m.CreateNewPlayer("egg", Coords{X: 2, Y: 1}, 1)

	p.DoCalcs()
	assert.True(t, p.Falling)
	assert.Equal(t, 23, p.OffsetY)
	assert.Equal(t, 0, p.OffsetX, "no horizontal movement while falling")

	for i := 0; i < 2; i++ {
		p.DoCalcs()
	}
	assert.Equal(t, 2, p.Y, "crossed into the next row")
	assert.Equal(t, 0, p.OffsetY)
}

func TestFallingWrapsAroundBoard(t *testing.T) {
	m := newTestModel(t, 5, nil)
	p := m.CreateNewPlayer("egg", Coords{X: 0, Y: 4}, 0)
	for i := 0; i < 3; i++ {
		p.DoCalcs()
	}
	assert.Equal(t, 0, p.Y)
}

func TestFallingPlayerSmashesCrate(t *testing.T) {
	m := newTestModel(t, 5, nil)
	setTile(m, 2, 2, TILE_CRATE)
	p := m.CreateNewPlayer("egg", Coords{X: 2, Y: 1}, 0)
	p.Falling = true

	assert.True(t, p.checkFloorBelowPlayer())
	assert.Equal(t, TILE_SKY, m.Board.Matrix[2][2].Id)
	assert.True(t, p.Falling)
}

func TestLandingOnSolidStopsFall(t *testing.T) {
	m := newTestModel(t, 5, nil)
	floor(m, 2)
	p := m.CreateNewPlayer("egg", Coords{X: 2, Y: 1}, 0)
	p.Falling = true

	p.checkFloorBelowPlayer()
	assert.False(t, p.Falling)
	assert.Equal(t, TILE_SKY, m.Board.Matrix[2][1].Id)
}

func TestWalkingCrossesTiles(t *testing.T) {
	m := newTestModel(t, 5, nil)
	floor(m, 2)
	p := m.CreateNewPlayer("egg", Coords{X: 0, Y: 1}, 1)

	for i := 1; i <= 4; i++ {
		p.DoCalcs()
		assert.Equal(t, 15*i, p.OffsetX)
		assert.Equal(t, 0, p.X)
	}
	p.DoCalcs()
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 0, p.OffsetX)
	assert.Equal(t, 5, p.CurrentFrame)
}

func TestWalkingWrapsAroundBoard(t *testing.T) {
	m := newTestModel(t, 5, nil)
	floor(m, 2)
	p := m.CreateNewPlayer("egg", Coords{X: 4, Y: 1}, 1)
	for i := 0; i < 5; i++ {
		p.DoCalcs()
	}
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 1, p.Y)
}

func TestReverseAtWall(t *testing.T) {
	m := newTestModel(t, 5, nil)
	floor(m, 2)
	setTile(m, 3, 1, 2)
	p := m.CreateNewPlayer("egg", Coords{X: 2, Y: 1}, 1)
	p.OffsetX = 0

	p.incrementPlayerDirection()
	assert.Equal(t, -1, p.Direction)
	assert.Equal(t, 0, p.OffsetX)

	// blocked on the left: turn around and step right in the same tick
	setTile(m, 1, 1, 2)
	setTile(m, 3, 1, TILE_SKY)
	p.incrementPlayerDirection()
	assert.Equal(t, 1, p.Direction)
	assert.Equal(t, 15, p.OffsetX)
}

func TestIdlePlayerSquaresUp(t *testing.T) {
	m := newTestModel(t, 5, nil)
	floor(m, 2)
	p := m.CreateNewPlayer("egg", Coords{X: 2, Y: 1, OffsetX: 30}, 0)

	p.incrementPlayerDirection()
	assert.Equal(t, 15, p.OffsetX)
	p.incrementPlayerDirection()
	assert.Equal(t, 0, p.OffsetX)
}

func TestArrivingOnCupCompletesLevel(t *testing.T) {
	l := &recordingListener{}
	m := newTestModel(t, 5, l)
	floor(m, 2)
	setTile(m, 2, 1, TILE_CUP)
	p := m.CreateNewPlayer("egg", Coords{X: 1, Y: 1}, 1)

	for i := 0; i < 5; i++ {
		p.DoCalcs()
	}
	assert.Equal(t, 2, p.X)
	assert.Equal(t, MS_COMPLETE, m.State)
	assert.Contains(t, l.states, MS_COMPLETE)
}
