package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/eggroll/model"
	"github.com/zucenko/eggroll/server"
)

const testLevel = `
.....
.U...
#####
.....
.....
`

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level_1.txt"), []byte(testLevel), 0644))

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 20)
	t.Cleanup(screen.Fini)

	g := NewGame(screen, server.NewLevels(nil, dir), nil, 8, 15, rand.New(rand.NewSource(1)))
	g.LoadLevel(1)
	return g, screen
}

func cell(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestLoadLevelStartsPlay(t *testing.T) {
	g, _ := newTestGame(t)
	assert.Equal(t, model.MS_PLAY, g.Model.State)
	assert.Equal(t, 1, g.Model.LevelID)
	assert.Equal(t, 1, g.Model.CountPlayers())
	assert.Equal(t, "level 1", g.message)
}

func TestMissingLevelFallsBackToRandomBoard(t *testing.T) {
	g, _ := newTestGame(t)
	g.LoadLevel(7)
	assert.Equal(t, 7, g.Model.LevelID)
	assert.Equal(t, 8, g.Model.Board.Size.Width)
	assert.Equal(t, "level 7 unavailable, random board", g.message)
}

func TestDrawShowsTilesEggsAndStatus(t *testing.T) {
	g, screen := newTestGame(t)
	g.Draw()

	assert.Equal(t, 'O', cell(screen, 1, 1))
	assert.Equal(t, '#', cell(screen, 0, 2))
	assert.Equal(t, '.', cell(screen, 4, 4))
	assert.Equal(t, 'P', cell(screen, 0, 6))
	assert.Equal(t, 'L', cell(screen, 1, 6))
}

func TestRotationSuspendsTicking(t *testing.T) {
	g, _ := newTestGame(t)
	assert.True(t, g.Apply(tcell.KeyRight, 0))
	require.NotNil(t, g.rotation)
	assert.Equal(t, model.MS_ROTATING, g.Model.State)

	ticks := g.Model.Ticks
	for i := 0; i < 6; i++ {
		g.Step()
	}
	assert.Nil(t, g.rotation)
	assert.Equal(t, model.MS_PLAY, g.Model.State)
	assert.Equal(t, ticks, g.Model.Ticks)
	assert.Equal(t, 1, g.Model.RotationsUsed)

	g.Step()
	assert.Equal(t, ticks+1, g.Model.Ticks)
}

func TestEditKeys(t *testing.T) {
	g, _ := newTestGame(t)
	g.Apply(tcell.KeyRune, 'e')
	assert.True(t, g.Model.EditMode)
	assert.Equal(t, model.MS_PAUSED, g.Model.State)

	g.Apply(tcell.KeyRune, 'l')
	g.Apply(tcell.KeyRune, 'j')
	assert.Equal(t, model.Coords{X: 1, Y: 1}, g.cursor)
	g.Apply(tcell.KeyRune, ' ')
	assert.Equal(t, 13, g.Model.Board.TileAt(1, 1).Id)

	g.Apply(tcell.KeyRune, '+')
	assert.Equal(t, 6, g.Model.Board.Size.Width)
	g.Apply(tcell.KeyRune, 'h')
	g.Apply(tcell.KeyRune, 'h')
	assert.Equal(t, model.Coords{X: 5, Y: 1}, g.cursor)
	g.Apply(tcell.KeyRune, '-')
	assert.Equal(t, model.Coords{X: 0, Y: 1}, g.cursor)

	g.Apply(tcell.KeyRune, 'e')
	assert.False(t, g.Model.EditMode)
	assert.Equal(t, model.MS_PLAY, g.Model.State)
}

func TestPauseKeyToggles(t *testing.T) {
	g, _ := newTestGame(t)
	g.Apply(tcell.KeyRune, 'p')
	assert.Equal(t, model.MS_PAUSED, g.Model.State)
	g.Apply(tcell.KeyRune, 'p')
	assert.Equal(t, model.MS_PLAY, g.Model.State)
}

func TestQuitKeys(t *testing.T) {
	g, _ := newTestGame(t)
	assert.False(t, g.Apply(tcell.KeyRune, 'q'))
	assert.False(t, g.Apply(tcell.KeyEscape, 0))
	assert.True(t, g.Apply(tcell.KeyUp, 0))
}

func TestCompletedLevelLoadsNext(t *testing.T) {
	g, _ := newTestGame(t)
	for i := 0; i < 60 && g.Model.LevelID == 1; i++ {
		g.Step()
	}
	assert.Equal(t, 2, g.Model.LevelID)
	assert.Equal(t, "level 1 complete", g.message)
}

func TestToneFadesOut(t *testing.T) {
	st := NewTone(440, 10*time.Millisecond, 0.5)
	samples := make([][2]float64, sampleRate.N(time.Second))

	n, ok := st.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, sampleRate.N(10*time.Millisecond), n)
	for _, s := range samples[:n] {
		assert.LessOrEqual(t, s[0], 0.5)
		assert.Equal(t, s[0], s[1])
	}

	n, ok = st.Stream(samples)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestSoundWithoutSpeaker(t *testing.T) {
	s := NewSound()
	s.Score()
	s.Merge(2)
	s.Close()

	var none *Sound
	none.Score()
}
