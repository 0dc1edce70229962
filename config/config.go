package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DB_JSON     = "json"
	DB_POSTGRES = "postgres"
)

type Config struct {
	Port        string
	LogLevel    log.Level
	DBType      string
	DBFile      string
	DatabaseURL string
	LevelsDir   string
	TickRate    int
	TileSize    int
	MoveSpeed   int
	BoardSize   int
	ServerAddr  string
	FontFile    string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using environment only")
	} else {
		log.Info("Successfully loaded environment variables")
	}

	c := &Config{
		Port:        envOr("PORT", "8080"),
		DBType:      envOr("DB_TYPE", DB_JSON),
		DBFile:      envOr("DB_FILE", "levels.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LevelsDir:   envOr("LEVELS_DIR", "data"),
		TickRate:    envInt("TICK_RATE", 60),
		TileSize:    envInt("TILE_SIZE", 64),
		MoveSpeed:   envInt("MOVE_SPEED", 15),
		BoardSize:   envInt("BOARD_SIZE", 20),
		FontFile:    os.Getenv("FONT_FILE"),
	}
	c.ServerAddr = envOr("SERVER_ADDR", "localhost:"+c.Port)
	level, err := log.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		log.Warnf("LOG_LEVEL %v, using info", err)
		level = log.InfoLevel
	}
	c.LogLevel = level
	return c
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

func envOr(name, def string) string {
	v, err := GetEnvVariable(name)
	if err != nil {
		return def
	}
	return v
}

// envInt falls back to def for unset, malformed or non-positive values.
func envInt(name string, def int) int {
	v, err := GetEnvVariable(name)
	if err != nil {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		log.Warnf("%s=%q is not a positive number, using %d", name, v, def)
		return def
	}
	return i
}
