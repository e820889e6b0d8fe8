package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/automoto/inputassign/components"
	"github.com/automoto/inputassign/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, hub.sendBuffer),
	}
}

// WritePump sends queued messages and keepalive pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("Feed connection close failed")
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// ReadPump reads client commands until the connection closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		cmd, err := parseCommand(message)
		if err != nil {
			logger.Log.WithError(err).Warn("Rejected feed command")
			c.reject(err)
			continue
		}
		if !c.hub.enqueue(cmd) {
			logger.Log.Warn("Feed command queue full, dropping command")
			c.reject(fmt.Errorf("command queue full"))
		}
	}
}

func (c *Client) reject(err error) {
	msg := c.hub.next(EventCommandRejected)
	msg.Error = err.Error()
	data, mErr := json.Marshal(msg)
	if mErr != nil {
		return
	}
	c.hub.sendTo(c, data)
}

func parseCommand(raw []byte) (Command, error) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Command{}, fmt.Errorf("parse client message: %w", err)
	}
	if msg.Player < 0 {
		return Command{}, fmt.Errorf("player %d: must not be negative", msg.Player)
	}

	switch msg.Type {
	case "assign":
		device, err := components.ParseDevice(msg.Device)
		if err != nil {
			return Command{}, err
		}
		return Command{Assign: true, Player: msg.Player, Device: device}, nil
	case "unassign":
		return Command{Player: msg.Player}, nil
	default:
		return Command{}, fmt.Errorf("unknown command type %q", msg.Type)
	}
}
