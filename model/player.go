package model

import "fmt"

const LAST_ACTION_TELEPORT = "teleport"

// Arena is what a player needs from the session that owns it.
type Arena interface {
	AddScore(amount int)
	CompleteLevel() bool
	TileSize() int
}

type PlayerState int

const (
	PL_IDLE PlayerState = iota
	PL_LEFT
	PL_RIGHT
	PL_FALLING
)

func (s PlayerState) Name() string {
	switch s {
	case PL_IDLE:
		return "IDLE"
	case PL_LEFT:
		return "LEFT"
	case PL_RIGHT:
		return "RIGHT"
	case PL_FALLING:
		return "FALLING"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

type Player struct {
	Id           int32
	Type         string
	Value        int
	Multiplier   int
	Frames       int
	X, Y         int
	OffsetX      int
	OffsetY      int
	Direction    int
	OldDirection int
	CurrentFrame int
	Falling      bool
	MoveSpeed    int
	LastAction   string

	board *Board
	arena Arena
}

func NewPlayer(id int32, t PlayerType, c Coords, direction, moveSpeed int, board *Board, arena Arena) *Player {
	frames := t.Frames
	if frames < 1 {
		frames = 1
	}
	return &Player{
		Id:         id,
		Type:       t.Type,
		Value:      t.Value,
		Multiplier: t.Multiplier,
		Frames:     frames,
		X:          c.X,
		Y:          c.Y,
		OffsetX:    c.OffsetX,
		OffsetY:    c.OffsetY,
		Direction:  direction,
		MoveSpeed:  moveSpeed,
		board:      board,
		arena:      arena,
	}
}

func (p *Player) Coords() Coords {
	return Coords{X: p.X, Y: p.Y, OffsetX: p.OffsetX, OffsetY: p.OffsetY}
}

func (p *Player) State() PlayerState {
	switch {
	case p.Falling:
		return PL_FALLING
	case p.Direction < 0:
		return PL_LEFT
	case p.Direction > 0:
		return PL_RIGHT
	default:
		return PL_IDLE
	}
}

// CalcMoveAmount scales a sprite-pixel speed to the current tile size.
func CalcMoveAmount(moveSpeed, tileSize int) int {
	return round(float64(tileSize) / SPRITE_SIZE * float64(moveSpeed))
}

// DoCalcs advances the player by one tick. Collisions are resolved by the
// owning model after every player has moved.
func (p *Player) DoCalcs() {
	p.setRedrawAroundPlayer()
	p.incrementPlayerFrame()
	p.checkFloorBelowPlayer()
	p.incrementPlayerDirection()
}

func (p *Player) setRedrawAroundPlayer() {
	for _, t := range p.board.TilesSurrounding(p.X, p.Y) {
		t.NeedsDraw = true
	}
}

func (p *Player) incrementPlayerFrame() bool {
	if p.Direction == 0 && p.OldDirection == 0 && p.CurrentFrame == 0 {
		return false
	}
	if p.Direction == 0 && p.CurrentFrame == 0 {
		// back on the resting frame, forget the old movement
		p.OldDirection = 0
	}
	if p.Direction < 0 || p.OldDirection < 0 {
		p.CurrentFrame--
		if p.CurrentFrame < 0 {
			p.CurrentFrame = p.Frames - 1
		}
	}
	if p.Direction > 0 || p.OldDirection > 0 {
		p.CurrentFrame++
		if p.CurrentFrame >= p.Frames {
			p.CurrentFrame = 0
		}
	}
	return true
}

func (p *Player) checkFloorBelowPlayer() bool {
	if p.OffsetX != 0 {
		return false
	}
	below := p.board.TileAt(p.X, p.Y+1)
	if below.Background {
		moveAmount := CalcMoveAmount(p.MoveSpeed, p.arena.TileSize())
		p.Falling = true
		p.OffsetY += round(float64(moveAmount) * 1.5)
	} else if p.Falling && below.Breakable {
		p.checkPlayerTileAction()
	} else {
		p.Falling = false
	}
	p.checkIfPlayerIsInNewTile()
	return true
}

func (p *Player) incrementPlayerDirection() bool {
	if p.Falling {
		return false
	}
	moveAmount := CalcMoveAmount(p.MoveSpeed, p.arena.TileSize())

	if p.Direction < 0 {
		if !p.board.IsPassable(p.X-1, p.Y) {
			p.Direction = 1
			p.OffsetX = 0
		} else {
			p.OffsetX -= moveAmount
		}
	}
	if p.Direction > 0 {
		if !p.board.IsPassable(p.X+1, p.Y) {
			p.Direction = -1
			p.OffsetX = 0
		} else {
			p.OffsetX += moveAmount
		}
	}

	// stopped but not squared up
	if p.Direction == 0 {
		if p.OffsetX > 0 {
			p.OffsetX -= moveAmount
		} else if p.OffsetX < 0 {
			p.OffsetX += moveAmount
		}
	}
	p.checkIfPlayerIsInNewTile()
	return true
}

func (p *Player) checkIfPlayerIsInNewTile() {
	if p.OffsetX > SPRITE_SIZE {
		p.OffsetX = 0
		p.X++
		p.LastAction = ""
		p.checkPlayerTileAction()
	}
	if p.OffsetX < -SPRITE_SIZE {
		p.OffsetX = 0
		p.X--
		p.LastAction = ""
		p.checkPlayerTileAction()
	}
	if p.OffsetY > SPRITE_SIZE {
		p.OffsetY = 0
		p.Y++
		p.LastAction = ""
		p.checkPlayerTileAction()
	}
	if p.OffsetY < -SPRITE_SIZE {
		p.OffsetY = 0
		p.Y--
		p.LastAction = ""
		p.checkPlayerTileAction()
	}
	c := p.board.CorrectForOverflow(p.X, p.Y)
	p.X, p.Y = c.X, c.Y
}

func (p *Player) checkPlayerTileAction() bool {
	if p.OffsetX != 0 || p.OffsetY != 0 {
		return false
	}
	c := p.board.CorrectForOverflow(p.X, p.Y)
	tile := p.board.TileAt(c.X, c.Y)

	if tile.Collectable > 0 {
		p.board.SetTile(c, p.board.Tiles.Clone(TILE_SKY))
		p.arena.AddScore(tile.Collectable * p.Multiplier)
		return true
	}

	switch tile.Action {
	case ACTION_COMPLETE_LEVEL:
		return p.arena.CompleteLevel()
	case ACTION_TELEPORT:
		return p.teleport()
	}

	if p.Falling {
		below := p.board.CorrectForOverflow(c.X, c.Y+1)
		if p.board.TileAt(below.X, below.Y).Breakable {
			p.board.SetTile(below, p.board.Tiles.Clone(TILE_SKY))
			return true
		}
	}
	return false
}

// teleport moves the player to a random other door.
func (p *Player) teleport() bool {
	if p.LastAction == LAST_ACTION_TELEPORT {
		return false
	}
	here := p.board.CorrectForOverflow(p.X, p.Y)
	target, found := p.board.FindTile(TILE_DOOR, here)
	if !found {
		return false
	}
	p.X, p.Y = target.X, target.Y
	p.OffsetX, p.OffsetY = 0, 0
	p.LastAction = LAST_ACTION_TELEPORT
	return true
}

func (p *Player) rotate(clockwise bool) {
	p.X, p.Y = p.board.TranslateRotation(p.X, p.Y, clockwise)
	p.OffsetX, p.OffsetY = 0, 0
	if p.Direction == 0 {
		if clockwise {
			p.Direction = 1
		} else {
			p.Direction = -1
		}
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s#%d%v %s", p.Type, p.Id, p.Coords(), p.State().Name())
}
