package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/eggroll/config"
	"github.com/zucenko/eggroll/server"
)

func TestOpenStorage(t *testing.T) {
	store, err := openStorage(&config.Config{DBType: config.DB_JSON, DBFile: filepath.Join(t.TempDir(), "l.json")})
	require.NoError(t, err)
	assert.NoError(t, store.Close())

	_, err = openStorage(&config.Config{DBType: config.DB_POSTGRES})
	assert.Error(t, err)

	_, err = openStorage(&config.Config{DBType: "sqlite"})
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	s := Server{GameServer: server.NewGameServer(server.Settings{}, server.NewLevels(nil, filepath.Join("..", "..", "data")))}
	s.routes()

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/levels", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1")

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/levels/2", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/levels", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}
