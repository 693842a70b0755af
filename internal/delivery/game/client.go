package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1 << 14
	sendQueue      = 64
)

type client struct {
	id      string
	userID  string
	conn    *websocket.Conn
	limiter *rate.Limiter

	send      chan game.OutFrame
	quit      chan struct{}
	closeOnce sync.Once
}

func newClient(id, userID string, conn *websocket.Conn, limiter *rate.Limiter) *client {
	return &client{
		id:      id,
		userID:  userID,
		conn:    conn,
		limiter: limiter,
		send:    make(chan game.OutFrame, sendQueue),
		quit:    make(chan struct{}),
	}
}

// push queues frame without blocking. It reports false when the queue is full.
func (c *client) push(frame game.OutFrame) bool {
	select {
	case <-c.quit:
		return true
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.quit) })
}

func (c *client) readPump(log *zap.SugaredLogger, handle func(*client, []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("connection %s read error: %v", c.id, err)
			}
			return
		}
		handle(c, data)
	}
}

// writePump is the only writer of conn. Closing the connection here unblocks readPump.
func (c *client) writePump(log *zap.SugaredLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				log.Warnf("connection %s write error: %v", c.id, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.quit:
			c.drain(log)
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// drain flushes frames queued before the close, such as a final ended notice.
func (c *client) drain(log *zap.SugaredLogger) {
	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				log.Debugf("connection %s drain stopped: %v", c.id, err)
				return
			}
		default:
			return
		}
	}
}
