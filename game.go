package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/client"
	"github.com/zucenko/eggroll/config"
	"github.com/zucenko/eggroll/model"
	"golang.org/x/image/font"
)

const (
	BOARD_PIXELS = 640
	HUD_HEIGHT   = 80
	TPS          = 60
	URI_WS       = "/play"
)

var screenWidth = BOARD_PIXELS
var screenHeight = BOARD_PIXELS + HUD_HEIGHT

type GameState int

const (
	CONNECTING GameState = iota + 1
	PLAYING
	DISCONNECTED
)

func (s GameState) Name() string {
	switch s {
	case CONNECTING:
		return "CONNECTING"
	case PLAYING:
		return "PLAYING"
	case DISCONNECTED:
		return "DISCONNECTED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Game renders one remote session and sends the player's input back.
type Game struct {
	State  GameState
	Conn   *client.Conn
	Remote client.State
	Hud    *client.Hud
	Tweens *client.Tweens
	// Font is nil when no face could be loaded; debug print is used instead.
	Font  font.Face
	Panel *Nine
	board *ebiten.Image
	tile  *ebiten.Image
	egg   *ebiten.Image
}

func NewGame(conn *client.Conn, face font.Face) *Game {
	tweens := client.NewTweens()
	board, err := ebiten.NewImage(BOARD_PIXELS, BOARD_PIXELS, ebiten.FilterDefault)
	if err != nil {
		log.Fatalf("board image %v", err)
	}
	panel := NewNine(newSquareImage(12, 4), 4, 1)
	panel.SetColor(HexToF32(0x303030), 1)
	panel.SetBounds(0, BOARD_PIXELS, BOARD_PIXELS, HUD_HEIGHT)
	return &Game{
		State:  CONNECTING,
		Conn:   conn,
		Hud:    client.NewHud(tweens),
		Tweens: tweens,
		Font:   face,
		Panel:  panel,
		board:  board,
		tile:   newSquareImage(model.SPRITE_SIZE, 2),
		egg:    newCircleImage(model.SPRITE_SIZE),
	}
}

// tileSize scales the board to the window.
func (g *Game) tileSize() int {
	side := g.Remote.Width
	if g.Remote.Height > side {
		side = g.Remote.Height
	}
	if side <= 0 {
		return model.SPRITE_SIZE
	}
	return BOARD_PIXELS / side
}

func (g *Game) receive() {
	for {
		select {
		case msg, ok := <-g.Conn.Messages:
			if !ok {
				if g.State != DISCONNECTED {
					log.Warnf("Game disconnected: %v", g.Conn.Err())
				}
				g.State = DISCONNECTED
				return
			}
			g.State = PLAYING
			if g.Remote.Apply(msg) {
				g.Hud.Show(g.Remote.Status)
			}
		default:
			return
		}
	}
}

func (g *Game) send(cm model.ClientMessage) {
	if g.State != PLAYING {
		return
	}
	if err := g.Conn.Send(cm); err != nil {
		log.Warnf("Game send %s: %v", cm.Input.Name(), err)
	}
}

func (g *Game) input() {
	keys := []struct {
		key   ebiten.Key
		input model.Input
	}{
		{ebiten.KeyLeft, model.IN_ROTATE_CCW},
		{ebiten.KeyRight, model.IN_ROTATE_CW},
		{ebiten.KeyE, model.IN_EDIT},
		{ebiten.KeyP, model.IN_PLAY},
		{ebiten.KeySpace, model.IN_PAUSE},
		{ebiten.KeyEqual, model.IN_GROW},
		{ebiten.KeyMinus, model.IN_SHRINK},
		{ebiten.KeyR, model.IN_RANDOM_BOARD},
		{ebiten.KeyS, model.IN_SAVE_LEVEL},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.send(model.ClientMessage{Input: k.input})
		}
	}

	digits := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
		ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
	for i, k := range digits {
		if inpututil.IsKeyJustPressed(k) {
			g.send(model.ClientMessage{Input: model.IN_LOAD_LEVEL, LevelID: i + 1})
		}
	}

	if g.Remote.EditMode && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		px, py := ebiten.CursorPosition()
		if x, y, ok := g.Remote.CellAt(px, py, g.tileSize()); ok {
			g.send(model.ClientMessage{Input: model.IN_CYCLE_TILE, X: x, Y: y})
		}
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.receive()
	g.input()
	g.Tweens.Update(1.0 / TPS)

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	if err := screen.Fill(COLOR_BACKGROUND.RGBA(1)); err != nil {
		log.Errorf("%v", err)
	}
	g.drawBoard(screen)
	g.drawHud(screen)
	return nil
}

// drawBoard paints tiles and eggs off screen, then turns the picture by the
// part of the last rotation the server is still animating.
func (g *Game) drawBoard(screen *ebiten.Image) {
	size := g.tileSize()
	scale := float64(size) / model.SPRITE_SIZE
	g.board.Clear()

	for x := 0; x < g.Remote.Width; x++ {
		for y := 0; y < g.Remote.Height; y++ {
			c := tileColor(g.Remote.TileAt(x, y))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(float64(x*size), float64(y*size))
			op.ColorM.Scale(c.r, c.g, c.b, 1)
			g.board.DrawImage(g.tile, op)
		}
	}
	for _, p := range g.Remote.Players {
		c := eggColor(p.Type)
		px, py := client.PlayerPosition(p, size)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale*.8, scale*.8)
		op.GeoM.Translate(px+float64(size)*.1, py+float64(size)*.1)
		op.ColorM.Scale(c.r, c.g, c.b, 1)
		g.board.DrawImage(g.egg, op)
	}

	half := float64(BOARD_PIXELS) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Rotate(float64(g.Remote.RotationLag) * math.Pi / 180)
	op.GeoM.Translate(half, half)
	screen.DrawImage(g.board, op)
}

func (g *Game) drawHud(screen *ebiten.Image) {
	g.Panel.Draw(screen)
	s := g.Remote.Status
	mode := "play"
	if g.Remote.EditMode {
		mode = "edit"
	}
	line := fmt.Sprintf("level %d  score %05.0f  rotations %d  left %d  %s %s",
		s.LevelID, g.Hud.Score, s.RotationsUsed, s.Collectable, mode, s.State)
	if g.State != PLAYING {
		line = g.State.Name()
	}
	g.drawText(screen, line, 12, BOARD_PIXELS+30, color.White)
	if g.Hud.Message != "" {
		alpha := float64(g.Hud.MessageAlpha)
		g.drawText(screen, g.Hud.Message, 12, BOARD_PIXELS+62, HexToF32(0xffd84a).RGBA(alpha))
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	if g.Font != nil {
		text.Draw(screen, s, g.Font, x, y, clr)
		return
	}
	ebitenutil.DebugPrintAt(screen, s, x, y-12)
}

func main() {
	c := config.Load()
	log.SetLevel(c.LogLevel)

	face, err := LoadFont(c.FontFile)
	if err != nil {
		log.Warnf("%v, using debug text", err)
	}

	url := "ws://" + c.ServerAddr + URI_WS
	conn, err := client.Dial(url)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer conn.Close()
	log.Infof("connected to %s", url)

	g := NewGame(conn, face)
	if err := ebiten.Run(g.update, screenWidth, screenHeight, 1, "Eggroll"); err != nil {
		log.Fatal(err)
	}
}
