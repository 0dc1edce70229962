package server

import (
	"math/rand"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/eggroll/model"
)

const (
	FIRST_LEVEL       = 1
	MAX_GAME_SESSIONS = 64
	SEND_BUFFER       = 64
)

// Settings are the simulation parameters every new session starts with.
type Settings struct {
	TickRate  int
	TileSize  int
	MoveSpeed int
	BoardSize int
}

func (s Settings) framePeriod() time.Duration {
	rate := s.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

type GameServer struct {
	GameSessions []*GameSession
	GameRequests chan GameRequest
	Upgrader     *websocket.Upgrader
	Settings     Settings
	Levels       *Levels
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession owns one model. Everything touching the model runs on the
// goroutine executing Loop.
type GameSession struct {
	State                 GameSessionState
	Model                 *model.Model
	PlayerSessions        []PlayerSession
	Settings              Settings
	Errors                chan int32
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	LevelResults          chan LevelResult

	levels       *Levels
	rotation     *Rotation
	pendingLoad  int
	userPaused   bool
	statusDirty  bool
	message      string
	nextPlayerId int32
	done         chan struct{}
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
