package persistence

import (
	"errors"
	"time"
)

// MAX_LEVEL_ID bounds the ids handed out to newly saved levels.
const MAX_LEVEL_ID = 9999

var ErrNotFound = errors.New("not found")

// Level is a stored board. Tiles holds catalog ids column-major, Tiles[x][y].
type Level struct {
	LevelID   int     `json:"levelId"`
	BoardSize int     `json:"boardSize"`
	Tiles     [][]int `json:"tiles"`
}

type Score struct {
	LevelID       int       `json:"levelId"`
	RotationsUsed int       `json:"rotationsUsed"`
	Score         int       `json:"score"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Storage defines the interface for level and score persistence
type Storage interface {
	LoadLevel(levelID int) (*Level, error)
	// SaveLevel stores the level and returns its id. A zero LevelID allocates
	// the first free id.
	SaveLevel(level *Level) (int, error)
	ListLevels() ([]int, error)
	SaveScore(score *Score) error
	Scores(levelID int) ([]Score, error)
	Close() error
}

// firstFreeID returns the lowest id in 1..MAX_LEVEL_ID not yet taken.
func firstFreeID(taken func(id int) bool) (int, error) {
	for id := 1; id <= MAX_LEVEL_ID; id++ {
		if !taken(id) {
			return id, nil
		}
	}
	return 0, errors.New("no free level id left")
}

func validLevel(level *Level) error {
	if level == nil {
		return errors.New("level is nil")
	}
	if level.LevelID < 0 || level.LevelID > MAX_LEVEL_ID {
		return errors.New("level id out of range")
	}
	if len(level.Tiles) == 0 {
		return errors.New("level has no tiles")
	}
	return nil
}
