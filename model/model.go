package model

import (
	"fmt"
	"math/rand"
)

const DEFAULT_MOVE_SPEED = 15

type ModelState int

const (
	MS_LOADING ModelState = iota
	MS_PAUSED
	MS_PLAY
	MS_ROTATING
	MS_COMPLETE
)

func (s ModelState) Name() string {
	switch s {
	case MS_LOADING:
		return "LOADING"
	case MS_PAUSED:
		return "PAUSED"
	case MS_PLAY:
		return "PLAY"
	case MS_ROTATING:
		return "ROTATING"
	case MS_COMPLETE:
		return "COMPLETE"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

// Listener receives score and level state changes. Calls happen on the
// goroutine driving the model.
type Listener interface {
	ScoreChanged(score int)
	StateChanged(state ModelState)
	PlayersMerged(merged *Player)
}

type NopListener struct{}

func (NopListener) ScoreChanged(int)        {}
func (NopListener) StateChanged(ModelState) {}
func (NopListener) PlayersMerged(*Player)   {}

// Model is one game session: board, egg registry, score and rotations.
// It is not safe for concurrent use.
type Model struct {
	Board         *Board
	Tiles         *TileSet
	Types         *PlayerTypes
	Collisions    *Collisions
	Players       map[int32]*Player
	PlayerKeys    []int32
	LevelID       int
	Score         int
	RotationsUsed int
	MoveSpeed     int
	EditMode      bool
	State         ModelState
	Ticks         int

	nextPlayerId int32
	tileSize     int
	listener     Listener
	rnd          *rand.Rand
}
