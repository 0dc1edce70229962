package client

import (
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/eggroll/model"
)

const RECEIVE_BUFFER = 64

// Conn is one websocket connection to a game session. Server messages are
// decoded on a background goroutine and queued on Messages, which is closed
// when the connection ends.
type Conn struct {
	ws       *websocket.Conn
	Messages chan model.ServerMessage
	writeMu  sync.Mutex
	err      error
	errMu    sync.Mutex
}

func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Conn{ws: ws, Messages: make(chan model.ServerMessage, RECEIVE_BUFFER)}
	go c.loopRead()
	return c, nil
}

func (c *Conn) loopRead() {
	defer close(c.Messages)
	for {
		_, r, err := c.ws.NextReader()
		if err != nil {
			c.setErr(err)
			log.Infof("Conn closed: %v", err)
			return
		}
		msg := model.ServerMessage{}
		if err := gob.NewDecoder(r).Decode(&msg); err != nil {
			c.setErr(err)
			log.Warnf("Conn cant decode %v", err)
			return
		}
		c.Messages <- msg
	}
}

// Send writes one input as its own binary message.
func (c *Conn) Send(cm model.ClientMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	w, err := c.ws.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(cm); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *Conn) Close() error {
	c.writeMu.Lock()
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.ws.Close()
}

// Err is the reason the read loop stopped, if it has.
func (c *Conn) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Conn) setErr(err error) {
	c.errMu.Lock()
	c.err = err
	c.errMu.Unlock()
}
