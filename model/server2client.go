package model

import "fmt"

type ServerMessage struct {
	Setup  []Setup
	Frames []Frame
	Tiles  []TileInfo
	Status []Status
}

type Setup struct {
	LevelID  int
	Width    int
	Height   int
	EditMode bool
	TileIds  [][]int
}

// Frame carries one simulation step. RotationLag is the part of the last
// quarter turn still being animated, in degrees.
type Frame struct {
	Tick        int
	RenderAngle int
	RotationLag float32
	Players     []PlayerInfo
}

type PlayerInfo struct {
	Id           int32
	Type         string
	X, Y         int
	OffsetX      int
	OffsetY      int
	Direction    int
	CurrentFrame int
	Falling      bool
}

type TileInfo struct {
	X, Y int
	Id   int
}

type Status struct {
	State         string
	LevelID       int
	Score         int
	RotationsUsed int
	Collectable   int
	Message       string
}

type Input int

const (
	IN_ROTATE_CW Input = iota + 1
	IN_ROTATE_CCW
	IN_CYCLE_TILE
	IN_GROW
	IN_SHRINK
	IN_SAVE_LEVEL
	IN_LOAD_LEVEL
	IN_RANDOM_BOARD
	IN_EDIT
	IN_PLAY
	IN_PAUSE
)

func (i Input) Name() string {
	switch i {
	case IN_ROTATE_CW:
		return "ROTATE_CW"
	case IN_ROTATE_CCW:
		return "ROTATE_CCW"
	case IN_CYCLE_TILE:
		return "CYCLE_TILE"
	case IN_GROW:
		return "GROW"
	case IN_SHRINK:
		return "SHRINK"
	case IN_SAVE_LEVEL:
		return "SAVE_LEVEL"
	case IN_LOAD_LEVEL:
		return "LOAD_LEVEL"
	case IN_RANDOM_BOARD:
		return "RANDOM_BOARD"
	case IN_EDIT:
		return "EDIT"
	case IN_PLAY:
		return "PLAY"
	case IN_PAUSE:
		return "PAUSE"
	default:
		return fmt.Sprintf("n/a:%d", i)
	}
}

type ClientMessage struct {
	Input   Input
	X, Y    int
	LevelID int
}
