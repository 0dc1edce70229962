package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps levels and scores in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS levels (
		level_id INTEGER PRIMARY KEY,
		board_size INTEGER NOT NULL,
		tiles JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS scores (
		id SERIAL PRIMARY KEY,
		level_id INTEGER NOT NULL,
		rotations_used INTEGER NOT NULL,
		score INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS scores_level_id ON scores(level_id);
	`
	_, err := ps.db.Exec(schema)
	return err
}

func (ps *PostgresStore) LoadLevel(levelID int) (*Level, error) {
	query := `SELECT level_id, board_size, tiles FROM levels WHERE level_id = $1`

	var level Level
	var tilesJSON string
	err := ps.db.QueryRow(query, levelID).Scan(&level.LevelID, &level.BoardSize, &tilesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("level %d: %w", levelID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load level %d: %w", levelID, err)
	}
	if err := json.Unmarshal([]byte(tilesJSON), &level.Tiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level %d tiles: %w", levelID, err)
	}
	return &level, nil
}

func (ps *PostgresStore) SaveLevel(level *Level) (int, error) {
	if err := validLevel(level); err != nil {
		return 0, err
	}
	tilesJSON, err := json.Marshal(level.Tiles)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal level tiles: %w", err)
	}

	id := level.LevelID
	if id != 0 {
		query := `
		INSERT INTO levels (level_id, board_size, tiles)
		VALUES ($1, $2, $3)
		ON CONFLICT (level_id)
		DO UPDATE SET
			board_size = $2, tiles = $3,
			updated_at = NOW()
		`
		if _, err := ps.db.Exec(query, id, level.BoardSize, string(tilesJSON)); err != nil {
			return 0, fmt.Errorf("failed to save level %d: %w", id, err)
		}
		return id, nil
	}

	ids, err := ps.ListLevels()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate level id: %w", err)
	}
	taken := make(map[int]bool, len(ids))
	for _, t := range ids {
		taken[t] = true
	}

	// Another writer may claim the same id between the list and the insert;
	// a skipped insert moves on to the next free id.
	query := `
	INSERT INTO levels (level_id, board_size, tiles)
	VALUES ($1, $2, $3)
	ON CONFLICT (level_id) DO NOTHING
	`
	for {
		id, err := firstFreeID(func(id int) bool { return taken[id] })
		if err != nil {
			return 0, err
		}
		res, err := ps.db.Exec(query, id, level.BoardSize, string(tilesJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to save level %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to save level %d: %w", id, err)
		}
		if n == 1 {
			return id, nil
		}
		taken[id] = true
	}
}

func (ps *PostgresStore) ListLevels() ([]int, error) {
	rows, err := ps.db.Query(`SELECT level_id FROM levels ORDER BY level_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan level id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (ps *PostgresStore) SaveScore(score *Score) error {
	query := `INSERT INTO scores (level_id, rotations_used, score) VALUES ($1, $2, $3)`
	if _, err := ps.db.Exec(query, score.LevelID, score.RotationsUsed, score.Score); err != nil {
		return fmt.Errorf("failed to save score for level %d: %w", score.LevelID, err)
	}
	return nil
}

func (ps *PostgresStore) Scores(levelID int) ([]Score, error) {
	query := `
	SELECT level_id, rotations_used, score, created_at FROM scores
	WHERE level_id = $1 ORDER BY score DESC, created_at
	`
	rows, err := ps.db.Query(query, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for level %d: %w", levelID, err)
	}
	defer rows.Close()

	scores := make([]Score, 0)
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.LevelID, &s.RotationsUsed, &s.Score, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
