package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// JSONStore keeps levels and scores in a single local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

type JSONData struct {
	Levels map[int]*Level `json:"levels"`
	Scores []Score        `json:"scores"`
}

func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Levels: make(map[int]*Level),
			Scores: make([]Score, 0),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}
	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Levels == nil {
		js.data.Levels = make(map[int]*Level)
	}
	return nil
}

func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()
	return js.writeLocked()
}

// writeLocked replaces the file with the current data through a temp file
// and a rename. The caller holds the write lock, so saves land in order.
func (js *JSONStore) writeLocked() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(js.filePath), filepath.Base(js.filePath)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), js.filePath); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (js *JSONStore) LoadLevel(levelID int) (*Level, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	level, exists := js.data.Levels[levelID]
	if !exists {
		return nil, fmt.Errorf("level %d: %w", levelID, ErrNotFound)
	}
	return copyLevel(level), nil
}

func (js *JSONStore) SaveLevel(level *Level) (int, error) {
	if err := validLevel(level); err != nil {
		return 0, err
	}
	js.mutex.Lock()
	defer js.mutex.Unlock()

	stored := copyLevel(level)
	if stored.LevelID == 0 {
		id, err := firstFreeID(func(id int) bool {
			_, taken := js.data.Levels[id]
			return taken
		})
		if err != nil {
			return 0, err
		}
		stored.LevelID = id
	}
	js.data.Levels[stored.LevelID] = stored

	if err := js.writeLocked(); err != nil {
		return 0, fmt.Errorf("failed to save level %d: %w", stored.LevelID, err)
	}
	return stored.LevelID, nil
}

func (js *JSONStore) ListLevels() ([]int, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	ids := make([]int, 0, len(js.data.Levels))
	for id := range js.data.Levels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (js *JSONStore) SaveScore(score *Score) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	s := *score
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	js.data.Scores = append(js.data.Scores, s)

	if err := js.writeLocked(); err != nil {
		return fmt.Errorf("failed to save score for level %d: %w", score.LevelID, err)
	}
	return nil
}

// Scores returns the level's scores, best first.
func (js *JSONStore) Scores(levelID int) ([]Score, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	scores := make([]Score, 0)
	for _, s := range js.data.Scores {
		if s.LevelID == levelID {
			scores = append(scores, s)
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores, nil
}

// Close is a no-op for the JSON store
func (js *JSONStore) Close() error {
	return nil
}

func copyLevel(level *Level) *Level {
	c := &Level{LevelID: level.LevelID, BoardSize: level.BoardSize}
	c.Tiles = make([][]int, len(level.Tiles))
	for x := range level.Tiles {
		c.Tiles[x] = append([]int(nil), level.Tiles[x]...)
	}
	return c
}
