package main

import (
	"fmt"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/config"
	"github.com/zucenko/eggroll/persistence"
	"github.com/zucenko/eggroll/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func openStorage(c *config.Config) (persistence.Storage, error) {
	switch c.DBType {
	case config.DB_JSON:
		return persistence.NewJSONStore(c.DBFile)
	case config.DB_POSTGRES:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("DB_TYPE=%s needs DATABASE_URL", c.DBType)
		}
		return persistence.NewPostgresStore(c.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DB_TYPE %q", c.DBType)
	}
}

func main() {
	c := config.Load()
	log.SetLevel(c.LogLevel)

	storage, err := openStorage(c)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer storage.Close()
	log.Infof("using %s storage, seed levels from %s", c.DBType, c.LevelsDir)

	s := Server{
		GameServer: server.NewGameServer(server.Settings{
			TickRate:  c.TickRate,
			TileSize:  c.TileSize,
			MoveSpeed: c.MoveSpeed,
			BoardSize: c.BoardSize,
		}, server.NewLevels(storage, c.LevelsDir)),
	}
	go s.GameServer.Loop()
	s.routes()

	log.Infof("listening on port %s", c.Port)
	if err := http.ListenAndServe(":"+c.Port, s.router); err != nil {
		log.Errorf("ListenAndServe %v", err)
	}
}
