package server

import (
	"encoding/gob"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/model"
	"github.com/zucenko/eggroll/persistence"
)

func NewGameServer(settings Settings, levels *Levels) *GameServer {
	return &GameServer{
		GameSessions: make([]*GameSession, 0),
		GameRequests: make(chan GameRequest),
		Upgrader:     &websocket.Upgrader{},
		Settings:     settings,
		Levels:       levels,
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("HandleHttpCall - connection received from %s", r.RemoteAddr)

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			switch gca.ResponseCode {
			case GAME_READY:
				log.Debugf("HandleHttpCall ok, have GameSession")
			default:
				log.Warnf("HandleHttpCall refused code:%d", gca.ResponseCode)
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already answered the client
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			gca.GameSession.Stop()
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall PlayerConnectRequests TIMEOUTED")
			gca.GameSession.Stop()
			return
		}

		<-gameOver
		log.Debugf("HandleHttpCall game over for %s", r.RemoteAddr)
	}
}

// Loop hands every request a fresh session; sessions that ended are pruned.
func (s *GameServer) Loop() {
	log.Info("GameServer.Loop starting")
	for gameReq := range s.GameRequests {
		s.prune()
		if len(s.GameSessions) >= MAX_GAME_SESSIONS {
			gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_FULL}
			continue
		}
		gs := NewGameSession(s.Settings, s.Levels)
		go gs.Loop()
		s.GameSessions = append(s.GameSessions, gs)
		log.Infof("GameServer.Loop created GameSession, %d running", len(s.GameSessions))

		gameReq.GameContextAwaiting <- GameContextAwaiting{
			ResponseCode: GAME_READY,
			GameSession:  gs,
		}
	}
}

func (s *GameServer) prune() {
	live := s.GameSessions[:0]
	for _, gs := range s.GameSessions {
		if !gs.Over() {
			live = append(live, gs)
		}
	}
	s.GameSessions = live
}

func NewGameSession(settings Settings, levels *Levels) *GameSession {
	gs := &GameSession{
		State:                 GS_NEW,
		PlayerSessions:        make([]PlayerSession, 0),
		Settings:              settings,
		Errors:                make(chan int32),
		Events:                make(chan PlayerEvent, SEND_BUFFER),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		LevelResults:          make(chan LevelResult, 4),
		levels:                levels,
		nextPlayerId:          1,
		done:                  make(chan struct{}),
	}
	gs.Model = model.NewModel(settings.TileSize, newRand(), gs)
	if settings.MoveSpeed > 0 {
		gs.Model.MoveSpeed = settings.MoveSpeed
	}
	return gs
}

// Over reports whether the session loop has ended.
func (gs *GameSession) Over() bool {
	select {
	case <-gs.done:
		return true
	default:
		return false
	}
}

// Stop ends a session from outside its loop.
func (gs *GameSession) Stop() {
	select {
	case gs.Errors <- 0:
	case <-gs.done:
	}
}

func (gs *GameSession) Loop() {
	log.Info("GameSession.Loop start")
	ticker := time.NewTicker(gs.Settings.framePeriod())
	defer ticker.Stop()
	defer close(gs.done)

	gs.requestLevel(FIRST_LEVEL)
	for {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			gs.addPlayer(pcr.Con, pcr.GameOver)
		case errPlayer := <-gs.Errors:
			if gs.playerFailed(errPlayer) {
				gs.finish()
				log.Infof("GameSession.Loop end %s", gs.State.Name())
				return
			}
		case pe := <-gs.Events:
			gs.broadcast(gs.Turn(pe))
		case lr := <-gs.LevelResults:
			gs.broadcast(gs.HandleLevelResult(lr))
		case <-ticker.C:
			gs.broadcast(gs.Frame())
		}
	}
}

// playerFailed marks the player as broken and reports whether nobody is left.
// Id 0 stops the whole session.
func (gs *GameSession) playerFailed(id int32) bool {
	alive := 0
	for i, ps := range gs.PlayerSessions {
		if id == 0 || ps.Id == id {
			gs.PlayerSessions[i].State = PS_ERR
		}
		if gs.PlayerSessions[i].State == PS_PLAY || gs.PlayerSessions[i].State == PS_NEW {
			alive++
		}
	}
	if alive > 0 {
		log.Warnf("GameSession player %d dropped, %d left", id, alive)
		return false
	}
	gs.State = GS_ERR
	return true
}

func (gs *GameSession) finish() {
	if gs.State != GS_ERR {
		gs.State = GS_OVER
	}
	for i, ps := range gs.PlayerSessions {
		if gs.PlayerSessions[i].State != PS_ERR {
			gs.PlayerSessions[i].State = PS_OVER
		}
		if ps.GameOver != nil {
			close(ps.GameOver)
		}
	}
}

// reportError hands a broken player to the loop, unless the loop is gone.
func (gs *GameSession) reportError(id int32) {
	select {
	case gs.Errors <- id:
	case <-gs.done:
	}
}

func (gs *GameSession) requestLevel(levelID int) {
	gs.Model.BeginLoad()
	gs.pendingLoad = levelID
	gs.levels.LoadAsync(levelID, gs.LevelResults, gs.done)
}

// startIfReady resumes play once a level is in and somebody is watching.
func (gs *GameSession) startIfReady() {
	if len(gs.PlayerSessions) == 0 || gs.userPaused || gs.Model.EditMode {
		return
	}
	if gs.Model.Start() {
		gs.State = GS_PLAY
	}
}

func (gs *GameSession) say(format string, args ...interface{}) {
	gs.message = fmt.Sprintf(format, args...)
	gs.statusDirty = true
}

// ScoreChanged, StateChanged and PlayersMerged make the session the model's
// listener. They run inside model calls, so they only record what to send.
func (gs *GameSession) ScoreChanged(score int) {
	gs.statusDirty = true
}

func (gs *GameSession) StateChanged(state model.ModelState) {
	gs.statusDirty = true
}

func (gs *GameSession) PlayersMerged(p *model.Player) {
	log.Debugf("GameSession merged into %v", p)
}

// HandleLevelResult applies a finished persistence call to the model.
func (gs *GameSession) HandleLevelResult(lr LevelResult) *model.ServerMessage {
	m := gs.Model
	switch lr.Op {
	case LO_LOAD:
		if lr.LevelID != gs.pendingLoad {
			log.Debugf("GameSession stale load of level %d ignored", lr.LevelID)
			return nil
		}
		gs.pendingLoad = 0
		var board *model.Board
		if lr.Err != nil {
			log.Warnf("GameSession load level %d: %v, using random board", lr.LevelID, lr.Err)
			board = m.NewRandomBoard(model.NewBoardSize(gs.Settings.BoardSize))
			gs.say("level %d unavailable, random board", lr.LevelID)
		} else {
			board = m.NewBoardFromIds(model.NewBoardSize(lr.Level.BoardSize), lr.Level.Tiles)
			gs.say("level %d", lr.LevelID)
		}
		m.LoadBoard(board, lr.LevelID)
		gs.startIfReady()
		msg := gs.setupMessage()
		return &msg
	case LO_SAVE:
		if lr.Err != nil {
			log.Warnf("GameSession save level: %v", lr.Err)
			gs.say("save failed: %v", lr.Err)
		} else {
			m.LevelID = lr.LevelID
			gs.say("saved level %d", lr.LevelID)
		}
		return gs.statusMessage()
	case LO_SCORE:
		if lr.Err != nil {
			log.Warnf("GameSession save score of level %d: %v", lr.LevelID, lr.Err)
		}
		return nil
	default:
		log.Errorf("GameSession unexpected level result %d", lr.Op)
		return nil
	}
}

// Frame runs one step: the rotation animation while it lasts, otherwise a
// model tick. Nil means there is nothing new to send.
func (gs *GameSession) Frame() *model.ServerMessage {
	m := gs.Model
	moved := false
	if gs.rotation != nil {
		if gs.rotation.Update(1) {
			gs.rotation = nil
			m.FinishRotation()
		}
		moved = true
	} else {
		moved = m.Tick()
	}

	if m.State == model.MS_COMPLETE && gs.pendingLoad == 0 {
		gs.completeLevel()
	}

	msg := &model.ServerMessage{Tiles: m.DirtyTiles()}
	if moved {
		frame := model.Frame{
			Tick:        m.Ticks,
			RenderAngle: m.Board.RenderAngle,
			Players:     m.PlayerInfos(),
		}
		if gs.rotation != nil {
			frame.RotationLag = gs.rotation.Lag()
		}
		msg.Frames = []model.Frame{frame}
	}
	if gs.statusDirty {
		msg.Status = []model.Status{gs.takeStatus()}
	}
	if len(msg.Frames) == 0 && len(msg.Tiles) == 0 && len(msg.Status) == 0 {
		return nil
	}
	return msg
}

// completeLevel records the score and moves on to the next level.
func (gs *GameSession) completeLevel() {
	m := gs.Model
	log.Infof("GameSession level %d complete, score %d in %d rotations", m.LevelID, m.Score, m.RotationsUsed)
	gs.levels.SaveScoreAsync(&persistence.Score{
		LevelID:       m.LevelID,
		RotationsUsed: m.RotationsUsed,
		Score:         m.Score,
		CreatedAt:     time.Now(),
	}, gs.LevelResults, gs.done)
	finished := m.LevelID
	gs.requestLevel(m.LevelID + 1)
	gs.say("level %d complete", finished)
}

// Turn applies one client input.
func (gs *GameSession) Turn(pe PlayerEvent) *model.ServerMessage {
	m := gs.Model
	cm := pe.ClientMessage
	log.Debugf("GameSession.Turn player:%d input:%s", pe.Player, cm.Input.Name())

	switch cm.Input {
	case model.IN_ROTATE_CW, model.IN_ROTATE_CCW:
		clockwise := cm.Input == model.IN_ROTATE_CW
		if !m.Rotate(clockwise) {
			return nil
		}
		gs.rotation = NewRotation(clockwise, m.MoveSpeed)
		msg := gs.setupMessage()
		return &msg
	case model.IN_CYCLE_TILE:
		if !m.CycleTile(cm.X, cm.Y) {
			return nil
		}
		return &model.ServerMessage{Tiles: m.DirtyTiles()}
	case model.IN_GROW, model.IN_SHRINK:
		changed := false
		if cm.Input == model.IN_GROW {
			changed = m.GrowBoard()
		} else {
			changed = m.ShrinkBoard()
		}
		if !changed {
			return nil
		}
		msg := gs.setupMessage()
		return &msg
	case model.IN_RANDOM_BOARD:
		if !m.RandomizeBoard() {
			return nil
		}
		msg := gs.setupMessage()
		return &msg
	case model.IN_SAVE_LEVEL:
		if !m.EditMode {
			gs.say("saving needs edit mode")
			return gs.statusMessage()
		}
		// Without an explicit id the current level is overwritten; a board
		// that was never loaded gets the first free id.
		id := cm.LevelID
		if id == 0 {
			id = m.LevelID
		}
		gs.levels.SaveAsync(&persistence.Level{
			LevelID:   id,
			BoardSize: m.Board.Size.Width,
			Tiles:     m.Board.Ids(),
		}, gs.LevelResults, gs.done)
		return nil
	case model.IN_LOAD_LEVEL:
		if cm.LevelID <= 0 || cm.LevelID > persistence.MAX_LEVEL_ID {
			gs.say("no such level %d", cm.LevelID)
			return gs.statusMessage()
		}
		gs.rotation = nil
		gs.requestLevel(cm.LevelID)
		return gs.statusMessage()
	case model.IN_EDIT:
		gs.rotation = nil
		if m.State == model.MS_ROTATING {
			m.FinishRotation()
		}
		m.SetEditMode(true)
		msg := gs.setupMessage()
		return &msg
	case model.IN_PLAY:
		gs.userPaused = false
		m.SetEditMode(false)
		gs.startIfReady()
		msg := gs.setupMessage()
		return &msg
	case model.IN_PAUSE:
		gs.userPaused = true
		m.Pause()
		return gs.statusMessage()
	default:
		log.Warnf("GameSession.Turn unknown input %d", cm.Input)
		return nil
	}
}

func (gs *GameSession) takeStatus() model.Status {
	s := gs.Model.MakeStatus(gs.message)
	gs.message = ""
	gs.statusDirty = false
	return s
}

func (gs *GameSession) statusMessage() *model.ServerMessage {
	return &model.ServerMessage{Status: []model.Status{gs.takeStatus()}}
}

// setupMessage describes the whole board, so pending tile updates are dropped.
func (gs *GameSession) setupMessage() model.ServerMessage {
	m := gs.Model
	m.DirtyTiles()
	frame := model.Frame{Tick: m.Ticks, RenderAngle: m.Board.RenderAngle, Players: m.PlayerInfos()}
	if gs.rotation != nil {
		frame.RotationLag = gs.rotation.Lag()
	}
	return model.ServerMessage{
		Setup: []model.Setup{{
			LevelID:  m.LevelID,
			Width:    m.Board.Size.Width,
			Height:   m.Board.Size.Height,
			EditMode: m.EditMode,
			TileIds:  m.Board.Ids(),
		}},
		Frames: []model.Frame{frame},
		Status: []model.Status{gs.takeStatus()},
	}
}

// broadcast never blocks the loop; a player that cannot keep up loses frames.
func (gs *GameSession) broadcast(msg *model.ServerMessage) {
	if msg == nil {
		return
	}
	for _, ps := range gs.PlayerSessions {
		if ps.State != PS_PLAY {
			continue
		}
		select {
		case ps.MessagesToSend <- *msg:
		default:
			log.Warnf("GameSession player %d send buffer FULL, dropping", ps.Id)
		}
	}
}

// attach registers a ready player session and greets it with the board.
func (gs *GameSession) attach(ps PlayerSession) {
	ps.State = PS_PLAY
	ps.GameSession = gs
	gs.PlayerSessions = append(gs.PlayerSessions, ps)
	gs.startIfReady()
	gs.statusDirty = true
	ps.MessagesToSend <- gs.setupMessage()
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) {
	ps := PlayerSession{
		State:          PS_NEW,
		Id:             gs.nextPlayerId,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, SEND_BUFFER),
	}
	gs.nextPlayerId++
	log.Infof("GameSession.addPlayer %d", ps.Id)

	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	gs.attach(ps)
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Debugf("LoopChannelRead %d STARTED", ps.Id)
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			log.Infof("LoopChannelRead %d closed: %v", ps.Id, err)
			ps.GameSession.reportError(ps.Id)
			break
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead %d cant decode %v", ps.Id, err)
			ps.GameSession.reportError(ps.Id)
			break
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{Player: ps.Id, ClientMessage: cm}:
		case <-ps.GameSession.done:
			return
		default:
			log.Warn("Dropping input read from socket, GameSession.Events FULL")
		}
	}
	log.Debugf("LoopChannelRead %d ENDED", ps.Id)
}

// LoopChannelWrite only consumes, so a full buffer never stalls the session.
func (ps *PlayerSession) LoopChannelWrite() {
	log.Debugf("PlayerSession.LoopChannelWrite %d STARTED", ps.Id)
loop:
	for {
		select {
		case <-ps.GameOver:
			break loop
		case mes := <-ps.MessagesToSend:
			w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				log.Warnf("PlayerSession.LoopChannelWrite cant get writer %v", err)
				ps.GameSession.reportError(ps.Id)
				break loop
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				log.Warnf("PlayerSession.LoopChannelWrite cant encode %v", err)
				ps.GameSession.reportError(ps.Id)
				break loop
			}
			if err := w.Close(); err != nil {
				log.Warnf("PlayerSession.LoopChannelWrite cant flush %v", err)
				ps.GameSession.reportError(ps.Id)
				break loop
			}
			ps.DebugOutMessages++
		}
	}
	log.Debugf("PlayerSession.LoopChannelWrite %d ENDED", ps.Id)
}
