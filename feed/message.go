package feed

import (
	"time"

	"github.com/automoto/inputassign/components"
)

// Event names carried in Message.Event
const (
	EventDeviceAssigned      = "device_assigned"
	EventDeviceUnassigned    = "device_unassigned"
	EventMovement            = "movement"
	EventPrimaryAction       = "primary_action"
	EventSecondaryAction     = "secondary_action"
	EventGamepadCountChanged = "gamepad_count_changed"
	EventCommandRejected     = "command_rejected"
)

// Vector is a JSON-friendly 2D vector
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Message is sent from the server to every client
type Message struct {
	Type      string  `json:"type"` // Always "event"
	Seq       int64   `json:"seq"`
	Timestamp int64   `json:"timestamp"` // Unix milliseconds
	Event     string  `json:"event"`
	Player    *int    `json:"player,omitempty"`
	Device    string  `json:"device,omitempty"`
	Source    string  `json:"source,omitempty"`
	Direction *Vector `json:"direction,omitempty"`
	Previous  *int    `json:"previous,omitempty"`
	Current   *int    `json:"current,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func newEventMessage(seq int64, event string) *Message {
	return &Message{
		Type:      "event",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     event,
	}
}

// ClientMessage is sent from a client to the server.
// Type is "assign" (Player, Device) or "unassign" (Player).
type ClientMessage struct {
	Type   string `json:"type"`
	Player int    `json:"player"`
	Device string `json:"device,omitempty"`
}

// Command is a validated client request waiting for the next tick
type Command struct {
	Assign bool
	Player int
	Device components.Device
}
