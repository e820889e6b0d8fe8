package components

import (
	"fmt"
	"strconv"
	"strings"

	cfg "github.com/automoto/inputassign/config"
)

// DeviceKind discriminates the Device variants
type DeviceKind int

const (
	DeviceKeyboard DeviceKind = iota
	DeviceGamepad
	DeviceMouse
	DeviceTouch
)

// SchemeKind discriminates the KeyboardScheme variants
type SchemeKind int

const (
	SchemeWASD SchemeKind = iota
	SchemeArrows
	SchemeIJKL
	SchemeCustom
)

// KeyboardScheme selects the four direction keys a keyboard player uses.
// Keys is only meaningful for SchemeCustom and is zero otherwise, so schemes
// compare by value with ==.
type KeyboardScheme struct {
	Kind SchemeKind
	Keys cfg.SchemeKeys
}

var (
	WASD   = KeyboardScheme{Kind: SchemeWASD}
	Arrows = KeyboardScheme{Kind: SchemeArrows}
	IJKL   = KeyboardScheme{Kind: SchemeIJKL}
)

// CustomScheme returns a keyboard scheme with explicit direction keys
func CustomScheme(keys cfg.SchemeKeys) KeyboardScheme {
	return KeyboardScheme{Kind: SchemeCustom, Keys: keys}
}

// DirectionKeys returns the up, down, left and right keys of the scheme
func (s KeyboardScheme) DirectionKeys() cfg.SchemeKeys {
	switch s.Kind {
	case SchemeWASD:
		return cfg.Input.WASD
	case SchemeArrows:
		return cfg.Input.Arrows
	case SchemeIJKL:
		return cfg.Input.IJKL
	default:
		return s.Keys
	}
}

// Name returns a display name for the scheme
func (s KeyboardScheme) Name() string {
	switch s.Kind {
	case SchemeWASD:
		return "WASD"
	case SchemeArrows:
		return "Arrow Keys"
	case SchemeIJKL:
		return "IJKL"
	default:
		return "Custom"
	}
}

// Device is an abstract input source: a keyboard scheme, a gamepad slot,
// the mouse or touch. Two devices are equal iff same kind and same payload.
type Device struct {
	Kind    DeviceKind
	Scheme  KeyboardScheme // DeviceKeyboard only
	Gamepad int            // DeviceGamepad only: index into the connected gamepads
}

// Keyboard returns the keyboard device for a scheme
func Keyboard(s KeyboardScheme) Device {
	return Device{Kind: DeviceKeyboard, Scheme: s}
}

// Gamepad returns the device for the index-th connected gamepad
func Gamepad(index int) Device {
	return Device{Kind: DeviceGamepad, Gamepad: index}
}

var (
	Mouse = Device{Kind: DeviceMouse}
	Touch = Device{Kind: DeviceTouch}
)

// IsKeyboard reports whether d is a keyboard scheme
func (d Device) IsKeyboard() bool { return d.Kind == DeviceKeyboard }

// IsGamepad reports whether d is a gamepad slot
func (d Device) IsGamepad() bool { return d.Kind == DeviceGamepad }

// Name returns a display name, e.g. "Keyboard (WASD)" or "Gamepad 1"
func (d Device) Name() string {
	switch d.Kind {
	case DeviceKeyboard:
		return fmt.Sprintf("Keyboard (%s)", d.Scheme.Name())
	case DeviceGamepad:
		return fmt.Sprintf("Gamepad %d", d.Gamepad+1)
	case DeviceMouse:
		return "Mouse"
	case DeviceTouch:
		return "Touch"
	default:
		return "Unknown"
	}
}

// String returns the stable text form accepted by ParseDevice
func (d Device) String() string {
	switch d.Kind {
	case DeviceKeyboard:
		switch d.Scheme.Kind {
		case SchemeWASD:
			return "keyboard:wasd"
		case SchemeArrows:
			return "keyboard:arrows"
		case SchemeIJKL:
			return "keyboard:ijkl"
		default:
			return "keyboard:custom:" + cfg.FormatSchemeKeys(d.Scheme.Keys)
		}
	case DeviceGamepad:
		return "gamepad:" + strconv.Itoa(d.Gamepad)
	case DeviceMouse:
		return "mouse"
	case DeviceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Device) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Device) UnmarshalText(text []byte) error {
	parsed, err := ParseDevice(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDevice parses the text form produced by Device.String
func ParseDevice(s string) (Device, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	switch strings.ToLower(parts[0]) {
	case "mouse":
		if len(parts) == 1 {
			return Mouse, nil
		}
	case "touch":
		if len(parts) == 1 {
			return Touch, nil
		}
	case "gamepad":
		if len(parts) == 2 {
			index, err := strconv.Atoi(parts[1])
			if err != nil || index < 0 {
				return Device{}, fmt.Errorf("device %q: bad gamepad index", s)
			}
			return Gamepad(index), nil
		}
	case "keyboard":
		if len(parts) < 2 {
			break
		}
		switch strings.ToLower(parts[1]) {
		case "wasd":
			return Keyboard(WASD), nil
		case "arrows":
			return Keyboard(Arrows), nil
		case "ijkl":
			return Keyboard(IJKL), nil
		case "custom":
			if len(parts) != 3 {
				break
			}
			keys, err := cfg.ParseSchemeKeys(parts[2])
			if err != nil {
				return Device{}, fmt.Errorf("device %q: %w", s, err)
			}
			return Keyboard(CustomScheme(keys)), nil
		}
	}
	return Device{}, fmt.Errorf("device %q: unrecognized", s)
}

// InputSource records which device last drove a controller
type InputSource = Device
