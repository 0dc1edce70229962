package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickMergesCollidingEggs(t *testing.T) {
	l := &recordingListener{}
	m := newTestModel(t, 5, l)
	floor(m, 2)
	m.CreateNewPlayer("egg", Coords{X: 1, Y: 1}, 0)
	m.CreateNewPlayer("egg", Coords{X: 1, Y: 1}, 0)

	require.True(t, m.Tick())
	require.Equal(t, 1, m.CountPlayers())
	assert.Equal(t, []int32{3}, m.PlayerKeys)
	merged := m.Players[3]
	require.NotNil(t, merged)
	assert.Equal(t, "red-egg", merged.Type)
	assert.Equal(t, Coords{X: 1, Y: 1}, merged.Coords())
	assert.Equal(t, []*Player{merged}, l.merged)

	// ids are never reused
	p := m.CreateNewPlayer("egg", Coords{X: 3, Y: 1}, 0)
	assert.Equal(t, int32(4), p.Id)
}

func TestTickMergesEachEggOnce(t *testing.T) {
	m := newTestModel(t, 5, nil)
	floor(m, 2)
	for i := 0; i < 3; i++ {
		m.CreateNewPlayer("egg", Coords{X: 2, Y: 1}, 0)
	}

	require.True(t, m.Tick())
	require.Equal(t, 2, m.CountPlayers())
	assert.Equal(t, []int32{3, 4}, m.PlayerKeys)
	assert.Equal(t, "egg", m.Players[3].Type)
	assert.Equal(t, "red-egg", m.Players[4].Type)

	require.True(t, m.Tick())
	require.Equal(t, 1, m.CountPlayers())
	assert.Equal(t, "blue-egg", m.Players[5].Type)
}

func TestTickRefusedUnlessPlaying(t *testing.T) {
	m := NewModel(SPRITE_SIZE, rand.New(rand.NewSource(1)), nil)
	assert.Equal(t, MS_LOADING, m.State)
	assert.False(t, m.Tick())
	assert.False(t, m.Start(), "cannot start before a board is loaded")

	m.LoadBoard(m.NewRandomBoard(NewBoardSize(8)), 3)
	assert.Equal(t, MS_PAUSED, m.State)
	assert.False(t, m.Tick())
	assert.True(t, m.Start())
	assert.True(t, m.Tick())
	assert.Equal(t, 1, m.Ticks)

	assert.True(t, m.Pause())
	assert.False(t, m.Pause(), "pausing twice is a no-op")
	assert.False(t, m.Tick())
}

func TestStartNeedsTileSize(t *testing.T) {
	m := NewModel(0, rand.New(rand.NewSource(1)), nil)
	m.LoadBoard(m.NewRandomBoard(NewBoardSize(8)), 1)
	assert.False(t, m.Start())
	m.SetTileSize(32)
	assert.True(t, m.Start())
}

func TestLoadBoardSpawnsEggsOnCups(t *testing.T) {
	m := NewModel(SPRITE_SIZE, rand.New(rand.NewSource(1)), nil)
	b := NewBlankBoard(m.Tiles, NewBoardSize(6), m.rnd)
	b.SetTile(Coords{X: 1, Y: 4}, m.Tiles.Clone(TILE_CUP))
	b.SetTile(Coords{X: 3, Y: 2}, m.Tiles.Clone(TILE_CUP))
	m.Score = 99
	m.RotationsUsed = 4

	m.LoadBoard(b, 2)
	require.Equal(t, 2, m.CountPlayers())
	for _, p := range m.OrderedPlayers() {
		assert.Equal(t, "egg", p.Type)
		assert.Equal(t, 1, p.Direction)
	}
	assert.Equal(t, 1, m.OrderedPlayers()[0].X)
	assert.Equal(t, 3, m.OrderedPlayers()[1].X)
	assert.Equal(t, 0, m.Score)
	assert.Equal(t, 0, m.RotationsUsed)
	assert.Equal(t, 2, m.LevelID)
}

func TestCompleteLevel(t *testing.T) {
	m := newTestModel(t, 5, nil)
	m.CreateNewPlayer("egg", Coords{X: 1, Y: 1}, 0)
	m.CreateNewPlayer("egg", Coords{X: 3, Y: 3}, 0)

	assert.False(t, m.CompleteLevel(), "two eggs left")
	assert.Equal(t, MS_PLAY, m.State)

	m.DeletePlayer(2)
	setTile(m, 0, 0, 3)
	assert.False(t, m.CompleteLevel(), "cacti still to collect")

	setTile(m, 0, 0, TILE_SKY)
	assert.True(t, m.CompleteLevel())
	assert.Equal(t, MS_COMPLETE, m.State)
	assert.False(t, m.Tick())
}

func TestCompleteLevelWithNoEggs(t *testing.T) {
	m := newTestModel(t, 5, nil)
	assert.True(t, m.CompleteLevel())
}

func TestRotateRemapsPlayers(t *testing.T) {
	l := &recordingListener{}
	m := newTestModel(t, 5, l)
	still := m.CreateNewPlayer("egg", Coords{X: 1, Y: 2, OffsetX: 30, OffsetY: 10}, 0)
	moving := m.CreateNewPlayer("egg", Coords{X: 4, Y: 0}, -1)

	require.True(t, m.Rotate(true))
	assert.Equal(t, Coords{X: 2, Y: 1}, still.Coords())
	assert.Equal(t, 1, still.Direction)
	assert.Equal(t, Coords{X: 4, Y: 4}, moving.Coords())
	assert.Equal(t, -1, moving.Direction)
	assert.Equal(t, 1, m.RotationsUsed)
	assert.Equal(t, 90, m.Board.RenderAngle)
	assert.Equal(t, MS_ROTATING, m.State)

	assert.False(t, m.Tick(), "ticking suspended mid rotation")
	assert.False(t, m.Rotate(true), "already rotating")
	assert.False(t, m.Pause(), "rotation cannot be cancelled")

	require.True(t, m.FinishRotation())
	assert.Equal(t, MS_PLAY, m.State)
	assert.False(t, m.FinishRotation())

	require.True(t, m.Rotate(false))
	assert.Equal(t, Coords{X: 1, Y: 2}, still.Coords())
	assert.Equal(t, 2, m.RotationsUsed)
	assert.Equal(t, []ModelState{MS_PAUSED, MS_PLAY, MS_ROTATING, MS_PLAY, MS_ROTATING}, l.states)
}

func TestRotateCounterClockwiseNudgesLeft(t *testing.T) {
	m := newTestModel(t, 5, nil)
	p := m.CreateNewPlayer("egg", Coords{X: 0, Y: 0}, 0)
	require.True(t, m.Rotate(false))
	assert.Equal(t, Coords{X: 0, Y: 4}, p.Coords())
	assert.Equal(t, -1, p.Direction)
}

func TestRotateRefusedWhilePausedOrEditing(t *testing.T) {
	m := newTestModel(t, 5, nil)
	m.Pause()
	assert.False(t, m.Rotate(true))

	m.SetEditMode(true)
	assert.False(t, m.Start())
	assert.False(t, m.Rotate(true))
	assert.Equal(t, 0, m.RotationsUsed)
}

func TestEditOperations(t *testing.T) {
	m := newTestModel(t, 6, nil)
	assert.False(t, m.GrowBoard())
	assert.False(t, m.ShrinkBoard())
	assert.False(t, m.CycleTile(1, 1))
	assert.False(t, m.RandomizeBoard())

	m.SetEditMode(true)
	assert.Equal(t, MS_PAUSED, m.State)
	assert.True(t, m.GrowBoard())
	assert.Equal(t, 7, m.Board.Size.Width)
	assert.True(t, m.ShrinkBoard())
	assert.True(t, m.ShrinkBoard())
	assert.Equal(t, 5, m.Board.Size.Width)
	assert.False(t, m.ShrinkBoard(), "already at the minimum")

	assert.True(t, m.CycleTile(1, 1))
	assert.Equal(t, 2, m.Board.Matrix[1][1].Id)

	m.Board.SetTile(Coords{X: 2, Y: 2}, m.Tiles.Clone(TILE_CUP))
	m.SetEditMode(false)
	assert.Equal(t, 1, m.CountPlayers())
	assert.True(t, m.Start())
}

func TestDirtyTilesClearsMarks(t *testing.T) {
	m := newTestModel(t, 5, nil)
	assert.Len(t, m.DirtyTiles(), 25)
	assert.Empty(t, m.DirtyTiles())

	setTile(m, 2, 3, TILE_CRATE)
	assert.Equal(t, []TileInfo{{X: 2, Y: 3, Id: TILE_CRATE}}, m.DirtyTiles())
}

func TestStatusReportsProgress(t *testing.T) {
	m := newTestModel(t, 5, nil)
	setTile(m, 0, 0, 4)
	m.AddScore(7)
	s := m.MakeStatus("hello")
	assert.Equal(t, Status{State: "PLAY", LevelID: 1, Score: 7, Collectable: 10, Message: "hello"}, s)
}
