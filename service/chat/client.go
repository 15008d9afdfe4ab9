package chat

import (
	"sync"
	"time"

	"EMProject/logger"
	"EMProject/tools/ids"

	"github.com/gorilla/websocket"
)

const (
	sendQueueSize = 64
	writeWait     = 5 * time.Second
	pingPeriod    = 25 * time.Second
)

// Client is one authenticated websocket connection. The read pump lives
// in Server.HandleWS; writePump is the only goroutine that touches the
// socket for writes.
type Client struct {
	ID       string
	UserID   string
	Username string

	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(userID, username string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       ids.GenerateString(),
		UserID:   userID,
		Username: username,
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
	}
}

// Enqueue hands a payload to the write pump without blocking. A full
// queue means this connection is stalled; the payload is dropped for it
// and the caller's fan-out to other connections continues.
func (c *Client) Enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- payload:
		return true
	default:
		logger.Warnf("[chat] send queue full, dropping payload user=%s conn=%s", c.UserID, c.ID)
		return false
	}
}

// Out exposes the send queue for tests that have no real socket.
func (c *Client) Out() <-chan []byte { return c.send }

// Close is safe to call from any path, any number of times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// writePump drains the send queue onto the socket and keeps the
// connection alive with pings. Exits on Close or on the first write
// error, closing the socket so the read pump unblocks too.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("[chat] write failed: " + err.Error())
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
