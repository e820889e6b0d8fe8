package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// ActionHistory stores the current and previous frame's held state of the
// confirm and cancel actions for one device path. Edges are computed by
// comparing frames.
type ActionHistory struct {
	Device   Device // Device the history was recorded for
	Current  [2]bool
	Previous [2]bool
}

const (
	ActionPrimary   = 0
	ActionSecondary = 1
)

// InputControllerData is the per-player runtime input state.
// Movement is normalized or clamped to unit length when non-zero.
// The action flags are momentary: true only on the tick a press edge occurs.
type InputControllerData struct {
	PlayerID        int
	Movement        math.Vec2
	PrimaryAction   bool        // Confirm/Select/Activate
	SecondaryAction bool        // Back/Cancel/Abort
	InputSource     InputSource // Device that last wrote movement or fired an action
	Enabled         bool

	Keyboard ActionHistory
	Gamepad  ActionHistory
}

var InputController = donburi.NewComponentType[InputControllerData]()

// NewInputController returns an enabled controller for player
func NewInputController(player int) InputControllerData {
	return InputControllerData{
		PlayerID:    player,
		InputSource: Keyboard(WASD),
		Enabled:     true,
	}
}

// Clear resets movement and both action flags
func (c *InputControllerData) Clear() {
	c.Movement = math.Vec2{}
	c.PrimaryAction = false
	c.SecondaryAction = false
}

// HasInput reports whether any movement or action is active
func (c *InputControllerData) HasInput() bool {
	return c.Movement.X != 0 || c.Movement.Y != 0 || c.PrimaryAction || c.SecondaryAction
}

// PlayerInputMappingData binds a player to a primary device and an optional
// fallback. Primary is written only by mapping sync, from the assignment table.
type PlayerInputMappingData struct {
	PlayerID  int
	Primary   *Device
	Secondary *Device
	Enabled   bool

	Synced         bool
	SyncedRevision uint64
}

var PlayerInputMapping = donburi.NewComponentType[PlayerInputMappingData]()

// NewPlayerInputMapping returns an enabled mapping with no devices
func NewPlayerInputMapping(player int) PlayerInputMappingData {
	return PlayerInputMappingData{
		PlayerID: player,
		Enabled:  true,
	}
}

// ActiveDevice returns the primary device, falling back to the secondary
func (m *PlayerInputMappingData) ActiveDevice() (Device, bool) {
	if m.Primary != nil {
		return *m.Primary, true
	}
	if m.Secondary != nil {
		return *m.Secondary, true
	}
	return Device{}, false
}

// KeyboardScheme returns the scheme sampled for this player: the primary device
// if it is a keyboard, else the secondary if it is a keyboard.
func (m *PlayerInputMappingData) KeyboardScheme() (KeyboardScheme, bool) {
	if m.Primary != nil && m.Primary.IsKeyboard() {
		return m.Primary.Scheme, true
	}
	if m.Secondary != nil && m.Secondary.IsKeyboard() {
		return m.Secondary.Scheme, true
	}
	return KeyboardScheme{}, false
}

// GamepadSlot returns the gamepad index sampled for this player: the primary
// device if it is a gamepad, else the secondary if it is a gamepad.
func (m *PlayerInputMappingData) GamepadSlot() (int, bool) {
	if m.Primary != nil && m.Primary.IsGamepad() {
		return m.Primary.Gamepad, true
	}
	if m.Secondary != nil && m.Secondary.IsGamepad() {
		return m.Secondary.Gamepad, true
	}
	return 0, false
}
