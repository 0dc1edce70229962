package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/config"
	"github.com/zucenko/eggroll/server"
)

// run drives the game from a ticker until a quit key arrives.
func run(g *Game, tickRate int) {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case <-ticker.C:
			g.Step()
			g.Draw()
		}
	}
}

func main() {
	c := config.Load()
	log.SetLevel(c.LogLevel)
	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "eggroll-tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	sound := NewSound()
	if err := sound.Initialize(); err != nil {
		log.Warnf("audio initialization failed: %v", err)
	}
	defer sound.Close()

	g := NewGame(screen, server.NewLevels(nil, c.LevelsDir), sound, c.BoardSize, c.MoveSpeed,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	g.LoadLevel(server.FIRST_LEVEL)
	run(g, c.TickRate)
}
