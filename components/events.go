package components

import (
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/features/math"
)

// AssignmentChange tells whether a player gained or lost a device
type AssignmentChange int

const (
	DeviceAssigned AssignmentChange = iota
	DeviceUnassigned
)

func (c AssignmentChange) String() string {
	if c == DeviceAssigned {
		return "assigned"
	}
	return "unassigned"
}

// AssignmentChangedEvent reports a table change. Assignments and removals
// share one event type so subscribers see them in the order they happened.
// Device is zero for DeviceUnassigned.
type AssignmentChangedEvent struct {
	Change   AssignmentChange
	PlayerID int
	Device   Device
}

type MovementChangedEvent struct {
	PlayerID  int
	Direction math.Vec2
	Source    InputSource
}

type PrimaryActionFiredEvent struct {
	PlayerID int
	Source   InputSource
}

type SecondaryActionFiredEvent struct {
	PlayerID int
	Source   InputSource
}

// GamepadCountChangedEvent is published when a refresh sees a different
// number of connected gamepads than the previous one.
type GamepadCountChangedEvent struct {
	Previous int
	Current  int
}

// AssignmentRequestEvent is a manual assign (Assign true, Device set) or
// unassign request. Assign requests are validated before they touch the
// assignment table. Requests are applied in the order they were queued.
type AssignmentRequestEvent struct {
	Assign   bool
	PlayerID int
	Device   Device
}

// Output events, dispatched to subscribers once per tick after sampling
var (
	AssignmentChanged    = events.NewEventType[AssignmentChangedEvent]()
	MovementChanged      = events.NewEventType[MovementChangedEvent]()
	PrimaryActionFired   = events.NewEventType[PrimaryActionFiredEvent]()
	SecondaryActionFired = events.NewEventType[SecondaryActionFiredEvent]()
	GamepadCountChanged  = events.NewEventType[GamepadCountChangedEvent]()
)

// AssignmentRequested is drained by the assignment step
var AssignmentRequested = events.NewEventType[AssignmentRequestEvent]()
