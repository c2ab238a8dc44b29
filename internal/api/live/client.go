package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between pongs from the peer
	pongWait = 60 * time.Second

	// Time between keepalive pings, shorter than pongWait
	pingPeriod = pongWait * 9 / 10

	// Largest inbound message accepted
	maxMessageSize = 8 << 10

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one websocket connection to a game
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	done        chan struct{}
	closeOnce   sync.Once
	connectedAt time.Time
	logger      *slog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
		connectedAt: time.Now(),
		logger:      logger,
	}
}

// enqueue queues a message for the writer. It reports false if the message
// was dropped.
func (c *Client) enqueue(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// close stops the writer, which closes the connection
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// ServeClient runs a connection until either side closes it. Each inbound
// message goes through the session and its reply is sent back to this
// client only.
func ServeClient(ctx context.Context, conn *websocket.Conn, hub *Hub, session *Session, logger *slog.Logger) {
	c := newClient(hub, conn, logger)
	if !hub.Register(c) {
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump(ctx, session)
	hub.Unregister(c)
	c.close()
}

func (c *Client) readPump(ctx context.Context, session *Session) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("live connection closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}

		var out Outbound
		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			out = errorOutbound(errMalformedMessage)
		} else {
			out = session.Handle(ctx, in)
		}

		reply, err := json.Marshal(out)
		if err != nil {
			c.logger.Error("failed to encode live reply", slog.String("error", err.Error()))
			continue
		}
		if !c.enqueue(reply) {
			c.logger.Warn("live reply dropped - client buffer full")
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
