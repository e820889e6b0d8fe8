package systems

import (
	"runtime"

	"github.com/automoto/inputassign/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputBackend is the host's buffered hardware state for the current tick.
// The input systems never poll hardware themselves.
type InputBackend interface {
	// AppendGamepadIDs appends the connected gamepads in connection order
	AppendGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID
	Capabilities() components.PlatformCapabilities
	IsKeyPressed(key ebiten.Key) bool
	IsGamepadButtonPressed(id ebiten.GamepadID, button ebiten.StandardGamepadButton) bool
	// LeftStick returns the left analog stick with +Y pointing up
	LeftStick(id ebiten.GamepadID) (x, y float64)
}

// EbitenBackend reads input state from ebiten
type EbitenBackend struct {
	touchSeen bool
	touchIDs  []ebiten.TouchID
}

// NewEbitenBackend returns a backend backed by the running ebiten game
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{}
}

func (b *EbitenBackend) AppendGamepadIDs(ids []ebiten.GamepadID) []ebiten.GamepadID {
	return ebiten.AppendGamepadIDs(ids)
}

// Capabilities treats desktop platforms as having keyboard and mouse, and
// reports touch on mobile or once any touch has been seen.
func (b *EbitenBackend) Capabilities() components.PlatformCapabilities {
	mobile := runtime.GOOS == "android" || runtime.GOOS == "ios"

	if !b.touchSeen {
		b.touchIDs = ebiten.AppendTouchIDs(b.touchIDs[:0])
		b.touchSeen = len(b.touchIDs) > 0
	}

	return components.PlatformCapabilities{
		Keyboard: !mobile,
		Mouse:    !mobile,
		Touch:    mobile || b.touchSeen,
	}
}

func (b *EbitenBackend) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (b *EbitenBackend) IsGamepadButtonPressed(id ebiten.GamepadID, button ebiten.StandardGamepadButton) bool {
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(id, button)
}

// LeftStick flips the vertical axis: ebiten reports down as positive.
func (b *EbitenBackend) LeftStick(id ebiten.GamepadID) (x, y float64) {
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return 0, 0
	}
	x = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return x, y
}
