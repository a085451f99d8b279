package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10

	// sendQueueSize bounds the frames waiting for one socket's writer.
	sendQueueSize = 64
)

var (
	errConnClosed     = errors.New("connection closed")
	errSendQueueFull  = errors.New("send queue full, slow consumer disconnected")
	errWriterStopped  = errors.New("writer stopped")
	errReaderFinished = errors.New("reader finished")
)

// inbound is a client frame. Data is decoded per event.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// conn is one live socket. Send only enqueues; writePump is the socket's single
// writer. actor is touched only by the read loop.
type conn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
	cause     error

	actor         kernel.Actor
	authenticated bool
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{
		id:   kernel.NewUUID().String(),
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

func (c *conn) ID() string {
	return c.id
}

// Send queues one event frame for the writer and never waits on the network.
// A socket whose queue is full is closed instead of stalling the caller. It
// satisfies notify.Conn.
func (c *conn) Send(event string, payload any) error {
	frame, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return errConnClosed
	default:
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return errConnClosed
	default:
		c.close(errSendQueueFull)
		return errSendQueueFull
	}
}

// close stops the writer and closes the socket, which also ends the read
// loop. Only the first cause is kept.
func (c *conn) close(cause error) {
	c.closeOnce.Do(func() {
		c.cause = cause
		close(c.done)
		_ = c.ws.Close()
	})
}

// closeCause reports why the connection was closed. It is only meaningful
// after done is closed.
func (c *conn) closeCause() error {
	<-c.done
	return c.cause
}

// writePump drains the send queue and pings the peer until the connection is
// closed or a write fails.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.close(errWriterStopped)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.close(errWriterStopped)
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.close(errWriterStopped)
				return
			}
		}
	}
}
