package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/model"
	"github.com/zucenko/eggroll/persistence"
)

// Levels looks levels up in storage first and falls back to the bundled
// ASCII files. A nil Storage serves the files only.
type Levels struct {
	Storage persistence.Storage
	Dir     string
	Tiles   *model.TileSet
}

func NewLevels(storage persistence.Storage, dir string) *Levels {
	return &Levels{Storage: storage, Dir: dir, Tiles: model.DefaultTileSet()}
}

func (l *Levels) fileName(levelID int) string {
	return filepath.Join(l.Dir, fmt.Sprintf("level_%d.txt", levelID))
}

func (l *Levels) Load(levelID int) (*persistence.Level, error) {
	if l.Storage != nil {
		level, err := l.Storage.LoadLevel(levelID)
		if err == nil {
			return level, nil
		}
		if !errors.Is(err, persistence.ErrNotFound) {
			return nil, err
		}
	}
	level, err := LoadFile(l.fileName(levelID), levelID, l.Tiles)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("level %d: %w", levelID, persistence.ErrNotFound)
	}
	return level, err
}

func (l *Levels) Save(level *persistence.Level) (int, error) {
	if l.Storage == nil {
		return 0, errors.New("no storage configured")
	}
	return l.Storage.SaveLevel(level)
}

func (l *Levels) SaveScore(score *persistence.Score) error {
	if l.Storage == nil {
		return errors.New("no storage configured")
	}
	return l.Storage.SaveScore(score)
}

// List merges stored level ids with the bundled files.
func (l *Levels) List() ([]int, error) {
	seen := make(map[int]bool)
	ids := make([]int, 0)
	if l.Storage != nil {
		stored, err := l.Storage.ListLevels()
		if err != nil {
			return nil, err
		}
		for _, id := range stored {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	files, err := filepath.Glob(filepath.Join(l.Dir, "level_*.txt"))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		var id int
		if _, err := fmt.Sscanf(filepath.Base(f), "level_%d.txt", &id); err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// post delivers a result unless the session has already ended.
func post(results chan<- LevelResult, done <-chan struct{}, r LevelResult) {
	select {
	case results <- r:
	case <-done:
		log.Debugf("Levels %s result for level %d dropped, session over", r.Op.Name(), r.LevelID)
	}
}

func (l *Levels) LoadAsync(levelID int, results chan<- LevelResult, done <-chan struct{}) {
	go func() {
		level, err := l.Load(levelID)
		post(results, done, LevelResult{Op: LO_LOAD, LevelID: levelID, Level: level, Err: err})
	}()
}

func (l *Levels) SaveAsync(level *persistence.Level, results chan<- LevelResult, done <-chan struct{}) {
	go func() {
		id, err := l.Save(level)
		post(results, done, LevelResult{Op: LO_SAVE, LevelID: id, Level: level, Err: err})
	}()
}

func (l *Levels) SaveScoreAsync(score *persistence.Score, results chan<- LevelResult, done <-chan struct{}) {
	go func() {
		err := l.SaveScore(score)
		post(results, done, LevelResult{Op: LO_SCORE, LevelID: score.LevelID, Err: err})
	}()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON %v", err)
	}
}

func (s *GameServer) HandleListLevels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := s.Levels.List()
		if err != nil {
			log.Errorf("HandleListLevels %v", err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		writeJSON(w, HTTP_SUCCESS, ids)
	}
}

func (s *GameServer) HandleGetLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(way.Param(r.Context(), "id"))
		if err != nil || id <= 0 || id > persistence.MAX_LEVEL_ID {
			w.WriteHeader(GAME_INVALIDE.ToHttp())
			return
		}
		level, err := s.Levels.Load(id)
		if errors.Is(err, persistence.ErrNotFound) {
			w.WriteHeader(GAME_NOT_FOUND.ToHttp())
			return
		}
		if err != nil {
			log.Errorf("HandleGetLevel %d %v", id, err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		writeJSON(w, HTTP_SUCCESS, level)
	}
}
