package main

import (
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/model"
	"github.com/zucenko/eggroll/server"
)

// Game runs one model locally and draws it into a terminal, one cell per tile.
type Game struct {
	screen   tcell.Screen
	Model    *model.Model
	Levels   *server.Levels
	Sound    *Sound
	rotation *server.Rotation
	cursor   model.Coords
	size     model.BoardSize
	message  string
}

var EGG_STYLES = map[string]tcell.Style{
	"egg":        tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	"red-egg":    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	"blue-egg":   tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	"yellow-egg": tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
}

var TILE_STYLE = tcell.StyleDefault.Foreground(tcell.ColorGray)
var COLLECTABLE_STYLE = tcell.StyleDefault.Foreground(tcell.ColorGreen)
var CURSOR_STYLE = tcell.StyleDefault.Reverse(true)

func NewGame(screen tcell.Screen, levels *server.Levels, sound *Sound, boardSize, moveSpeed int, rnd *rand.Rand) *Game {
	g := &Game{
		screen: screen,
		Levels: levels,
		Sound:  sound,
		size:   model.NewBoardSize(boardSize),
	}
	g.Model = model.NewModel(model.SPRITE_SIZE, rnd, g)
	if moveSpeed > 0 {
		g.Model.MoveSpeed = moveSpeed
	}
	return g
}

// LoadLevel installs a stored or bundled level, or a random board when
// neither has it, and resumes play.
func (g *Game) LoadLevel(levelID int) {
	m := g.Model
	m.BeginLoad()
	level, err := g.Levels.Load(levelID)
	if err != nil {
		log.Warnf("Game load level %d: %v, using random board", levelID, err)
		m.LoadBoard(m.NewRandomBoard(g.size), levelID)
		g.message = fmt.Sprintf("level %d unavailable, random board", levelID)
	} else {
		m.LoadBoard(m.NewBoardFromIds(model.NewBoardSize(level.BoardSize), level.Tiles), levelID)
		g.message = fmt.Sprintf("level %d", levelID)
	}
	g.rotation = nil
	m.Start()
}

// Step advances the game by one frame.
func (g *Game) Step() {
	m := g.Model
	if g.rotation != nil {
		if g.rotation.Update(1) {
			g.rotation = nil
			m.FinishRotation()
		}
	} else {
		m.Tick()
	}
	if m.State == model.MS_COMPLETE {
		finished := m.LevelID
		log.Infof("Game level %d complete, score %d in %d rotations", finished, m.Score, m.RotationsUsed)
		g.LoadLevel(finished + 1)
		g.message = fmt.Sprintf("level %d complete", finished)
	}
}

// HandleKey and Apply return false when the game should end.
func (g *Game) HandleKey(ev *tcell.EventKey) bool {
	return g.Apply(ev.Key(), ev.Rune())
}

func (g *Game) Apply(key tcell.Key, r rune) bool {
	m := g.Model
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		g.rotate(false)
		return true
	case tcell.KeyRight:
		g.rotate(true)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case 'e':
		if m.EditMode {
			m.SetEditMode(false)
			m.Start()
			g.message = "play"
		} else {
			g.rotation = nil
			m.FinishRotation()
			m.SetEditMode(true)
			g.message = "edit"
		}
	case 'p':
		if !m.Pause() {
			m.Start()
		}
	case ' ':
		m.CycleTile(g.cursor.X, g.cursor.Y)
	case '+':
		m.GrowBoard()
	case '-':
		if m.ShrinkBoard() {
			g.cursor = m.Board.CorrectForOverflow(g.cursor.X, g.cursor.Y)
		}
	case 'r':
		m.RandomizeBoard()
	case 'h', 'a':
		g.moveCursor(-1, 0)
	case 'l', 'd':
		g.moveCursor(1, 0)
	case 'k', 'w':
		g.moveCursor(0, -1)
	case 'j', 's':
		g.moveCursor(0, 1)
	}
	return true
}

func (g *Game) rotate(clockwise bool) {
	if g.Model.Rotate(clockwise) {
		g.rotation = server.NewRotation(clockwise, g.Model.MoveSpeed)
	}
}

func (g *Game) moveCursor(dx, dy int) {
	if !g.Model.EditMode {
		return
	}
	g.cursor = g.Model.Board.CorrectForOverflow(g.cursor.X+dx, g.cursor.Y+dy)
}

// Draw renders the board, the eggs and a status line below them.
func (g *Game) Draw() {
	m := g.Model
	g.screen.Clear()
	m.Board.Each(func(x, y int, t *model.Tile) {
		style := TILE_STYLE
		if t.Collectable > 0 {
			style = COLLECTABLE_STYLE
		}
		if m.EditMode && x == g.cursor.X && y == g.cursor.Y {
			style = CURSOR_STYLE
		}
		g.screen.SetContent(x, y, t.Glyph, nil, style)
		t.NeedsDraw = false
	})
	for _, p := range m.OrderedPlayers() {
		x, y := eggCell(p, m.Board)
		style, found := EGG_STYLES[p.Type]
		if !found {
			style = tcell.StyleDefault
		}
		g.screen.SetContent(x, y, 'O', nil, style)
	}
	g.drawText(0, m.Board.Size.Height+1, g.statusLine())
	g.screen.Show()
}

func (g *Game) statusLine() string {
	s := g.Model.MakeStatus(g.message)
	line := fmt.Sprintf("%-8s level %d  score %d  rotations %d  left %d  %s",
		s.State, s.LevelID, s.Score, s.RotationsUsed, s.Collectable, s.Message)
	if g.rotation != nil {
		line += fmt.Sprintf("  turning %.0f", g.rotation.Lag())
	}
	return line
}

func (g *Game) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		g.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// eggCell is the tile an egg mostly covers.
func eggCell(p *model.Player, b *model.Board) (int, int) {
	fullX, fullY := p.Coords().ActualPosition()
	half := model.SPRITE_SIZE / 2
	c := model.NewCoords(float64(fullX+half)/model.SPRITE_SIZE, float64(fullY+half)/model.SPRITE_SIZE, 0, 0)
	c = b.CorrectForOverflow(c.X, c.Y)
	return c.X, c.Y
}

// ScoreChanged, StateChanged and PlayersMerged make the game the model's
// listener and forward to the sound sink.
func (g *Game) ScoreChanged(score int) {
	if score > 0 {
		g.Sound.Score()
	}
}

func (g *Game) StateChanged(state model.ModelState) {
	log.Debugf("Game state %s", state.Name())
}

func (g *Game) PlayersMerged(p *model.Player) {
	g.Sound.Merge(p.Value)
}
