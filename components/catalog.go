package components

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// PlatformCapabilities reports which non-gamepad device classes the host offers
type PlatformCapabilities struct {
	Keyboard bool
	Mouse    bool
	Touch    bool
}

// DeviceCatalogData is the tick-fresh set of devices the host reports as usable.
// It is replaced wholesale on every refresh and never persisted.
type DeviceCatalogData struct {
	Gamepads      []ebiten.GamepadID // Connected gamepads in connection order
	Keyboard      bool
	Mouse         bool
	Touch         bool
	CustomSchemes []KeyboardScheme // Custom presets listed after the built-in schemes
}

var DeviceCatalog = donburi.NewComponentType[DeviceCatalogData]()

// AvailableDevices lists the catalog in its fixed enumeration order:
// keyboard schemes (WASD, Arrows, IJKL, custom presets), gamepads in
// connection order, then Mouse and Touch.
func (c *DeviceCatalogData) AvailableDevices() []Device {
	devices := make([]Device, 0, 3+len(c.CustomSchemes)+len(c.Gamepads)+2)

	if c.Keyboard {
		devices = append(devices, Keyboard(WASD), Keyboard(Arrows), Keyboard(IJKL))
		for _, s := range c.CustomSchemes {
			devices = append(devices, Keyboard(s))
		}
	}

	for i := range c.Gamepads {
		devices = append(devices, Gamepad(i))
	}

	if c.Mouse {
		devices = append(devices, Mouse)
	}
	if c.Touch {
		devices = append(devices, Touch)
	}

	return devices
}

// Contains reports whether d is currently usable on the host
func (c *DeviceCatalogData) Contains(d Device) bool {
	switch d.Kind {
	case DeviceKeyboard:
		if !c.Keyboard {
			return false
		}
		if d.Scheme.Kind != SchemeCustom {
			return true
		}
		for _, s := range c.CustomSchemes {
			if s == d.Scheme {
				return true
			}
		}
		return false
	case DeviceGamepad:
		return d.Gamepad >= 0 && d.Gamepad < len(c.Gamepads)
	case DeviceMouse:
		return c.Mouse
	case DeviceTouch:
		return c.Touch
	default:
		return false
	}
}

// GamepadID resolves a gamepad slot to the host gamepad ID
func (c *DeviceCatalogData) GamepadID(index int) (ebiten.GamepadID, bool) {
	if index < 0 || index >= len(c.Gamepads) {
		return 0, false
	}
	return c.Gamepads[index], true
}
