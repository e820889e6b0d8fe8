package feed

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/automoto/inputassign/components"
	"github.com/automoto/inputassign/logger"
	"github.com/automoto/inputassign/systems"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Hub tracks websocket clients, fans out input events to them and queues
// their commands for the tick thread.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	done       chan struct{}
	commands   chan Command
	sendBuffer int
	seq        atomic.Int64
}

// NewHub returns a hub whose clients buffer sendBuffer outgoing messages
// and which holds up to commandBuffer pending commands.
func NewHub(sendBuffer, commandBuffer int) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		commands:   make(chan Command, commandBuffer),
		sendBuffer: sendBuffer,
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run processes registrations until ctx is done. Should be run in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Log.WithField("total", total).Info("Feed client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Log.WithField("total", total).Info("Feed client disconnected")
		}
	}
}

// Broadcast sends msg to every client. Clients whose buffer is full are dropped.
func (h *Hub) Broadcast(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Log.WithError(err).Warn("Could not encode feed message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client send buffer full, disconnect
			go h.Unregister(client)
		}
	}
}

// sendTo queues data for one registered client, dropping it if the buffer is full
func (h *Hub) sendTo(c *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// enqueue hands a command to the tick thread without blocking the reader
func (h *Hub) enqueue(cmd Command) bool {
	select {
	case h.commands <- cmd:
		return true
	default:
		return false
	}
}

// DrainCommands is a system that turns queued client commands into
// assignment requests. Add it BEFORE the input systems.
func (h *Hub) DrainCommands(e *ecs.ECS) {
	for {
		select {
		case cmd := <-h.commands:
			if cmd.Assign {
				systems.RequestAssign(e, cmd.Player, cmd.Device)
			} else {
				systems.RequestUnassign(e, cmd.Player)
			}
		default:
			return
		}
	}
}

// Attach subscribes the hub to the world's output events
func (h *Hub) Attach(w donburi.World) {
	components.AssignmentChanged.Subscribe(w, func(_ donburi.World, ev components.AssignmentChangedEvent) {
		if ev.Change == components.DeviceUnassigned {
			msg := h.next(EventDeviceUnassigned)
			msg.Player = intPtr(ev.PlayerID)
			h.Broadcast(msg)
			return
		}
		msg := h.next(EventDeviceAssigned)
		msg.Player = intPtr(ev.PlayerID)
		msg.Device = ev.Device.String()
		h.Broadcast(msg)
	})
	components.MovementChanged.Subscribe(w, func(_ donburi.World, ev components.MovementChangedEvent) {
		msg := h.next(EventMovement)
		msg.Player = intPtr(ev.PlayerID)
		msg.Source = ev.Source.String()
		msg.Direction = &Vector{X: ev.Direction.X, Y: ev.Direction.Y}
		h.Broadcast(msg)
	})
	components.PrimaryActionFired.Subscribe(w, func(_ donburi.World, ev components.PrimaryActionFiredEvent) {
		msg := h.next(EventPrimaryAction)
		msg.Player = intPtr(ev.PlayerID)
		msg.Source = ev.Source.String()
		h.Broadcast(msg)
	})
	components.SecondaryActionFired.Subscribe(w, func(_ donburi.World, ev components.SecondaryActionFiredEvent) {
		msg := h.next(EventSecondaryAction)
		msg.Player = intPtr(ev.PlayerID)
		msg.Source = ev.Source.String()
		h.Broadcast(msg)
	})
	components.GamepadCountChanged.Subscribe(w, func(_ donburi.World, ev components.GamepadCountChangedEvent) {
		msg := h.next(EventGamepadCountChanged)
		msg.Previous = intPtr(ev.Previous)
		msg.Current = intPtr(ev.Current)
		h.Broadcast(msg)
	})
	logger.Log.WithFields(logrus.Fields{"buffer": cap(h.commands)}).Debug("Feed attached to world")
}

func (h *Hub) next(event string) *Message {
	return newEventMessage(h.seq.Add(1), event)
}

func intPtr(v int) *int {
	return &v
}
