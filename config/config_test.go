package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvVariable(t *testing.T) {
	_, err := GetEnvVariable("")
	assert.Error(t, err)

	t.Setenv("EGGROLL_TEST_VAR", "")
	_, err = GetEnvVariable("EGGROLL_TEST_VAR")
	assert.Error(t, err)

	t.Setenv("EGGROLL_TEST_VAR", "cup")
	v, err := GetEnvVariable("EGGROLL_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "cup", v)
}

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"PORT", "LOG_LEVEL", "DB_TYPE", "DB_FILE", "LEVELS_DIR",
		"TICK_RATE", "TILE_SIZE", "MOVE_SPEED", "BOARD_SIZE", "SERVER_ADDR", "FONT_FILE"} {
		t.Setenv(name, "")
	}
	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, log.InfoLevel, c.LogLevel)
	assert.Equal(t, DB_JSON, c.DBType)
	assert.Equal(t, "levels.json", c.DBFile)
	assert.Equal(t, "data", c.LevelsDir)
	assert.Equal(t, 60, c.TickRate)
	assert.Equal(t, 64, c.TileSize)
	assert.Equal(t, 15, c.MoveSpeed)
	assert.Equal(t, 20, c.BoardSize)
	assert.Equal(t, "localhost:8080", c.ServerAddr)
	assert.Empty(t, c.FontFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_TYPE", DB_POSTGRES)
	t.Setenv("TICK_RATE", "30")
	t.Setenv("MOVE_SPEED", "fast")
	t.Setenv("BOARD_SIZE", "-3")

	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "localhost:9000", c.ServerAddr)
	assert.Equal(t, log.DebugLevel, c.LogLevel)
	assert.Equal(t, DB_POSTGRES, c.DBType)
	assert.Equal(t, 30, c.TickRate)
	assert.Equal(t, 15, c.MoveSpeed)
	assert.Equal(t, 20, c.BoardSize)
}

func TestLoadBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	assert.Equal(t, log.InfoLevel, Load().LogLevel)
}
