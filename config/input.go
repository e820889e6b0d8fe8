package config

import "github.com/hajimehoshi/ebiten/v2"

// SchemeKeys holds the four direction keys of a keyboard scheme
type SchemeKeys struct {
	Up    ebiten.Key
	Down  ebiten.Key
	Left  ebiten.Key
	Right ebiten.Key
}

// ActionBinding lists the keys and standard gamepad buttons that fire one action
type ActionBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// DPadBinding holds the gamepad buttons read as direction input
type DPadBinding struct {
	Up    ebiten.StandardGamepadButton
	Down  ebiten.StandardGamepadButton
	Left  ebiten.StandardGamepadButton
	Right ebiten.StandardGamepadButton
}

// InputConfig holds the tunables and bindings of the input subsystem
type InputConfig struct {
	// Analog stick magnitude that must be exceeded to count as movement (0.0 to 1.0)
	GamepadDeadzone float64
	// Movement magnitude that must be exceeded to register as input
	MovementThreshold float64
	// Fill an empty assignment table from the device catalog
	AutoAssignDevices bool
	// Allow more than one player to hold a keyboard scheme at once
	AllowKeyboardSharing bool
	// Upper bound on player ids considered by auto-assignment
	MaxPlayers int

	WASD   SchemeKeys
	Arrows SchemeKeys
	IJKL   SchemeKeys

	// Custom keyboard presets listed in the catalog after the built-in schemes
	CustomSchemes []SchemeKeys

	Primary   ActionBinding // Confirm/Select/Activate
	Secondary ActionBinding // Back/Cancel/Abort
	DPad      DPadBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = DefaultInput()
}

// DefaultInput returns the built-in input configuration
func DefaultInput() InputConfig {
	return InputConfig{
		GamepadDeadzone:      0.2,
		MovementThreshold:    0.1,
		AutoAssignDevices:    true,
		AllowKeyboardSharing: true,
		MaxPlayers:           4,

		WASD:   SchemeKeys{Up: ebiten.KeyW, Down: ebiten.KeyS, Left: ebiten.KeyA, Right: ebiten.KeyD},
		Arrows: SchemeKeys{Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown, Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight},
		IJKL:   SchemeKeys{Up: ebiten.KeyI, Down: ebiten.KeyK, Left: ebiten.KeyJ, Right: ebiten.KeyL},

		Primary: ActionBinding{
			Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter},
			// A / Cross button, Start / Options button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightBottom,
				ebiten.StandardGamepadButtonCenterRight,
			},
		},
		Secondary: ActionBinding{
			Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyBackspace},
			// B / Circle button, Select / Share button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightRight,
				ebiten.StandardGamepadButtonCenterLeft,
			},
		},
		DPad: DPadBinding{
			Up:    ebiten.StandardGamepadButtonLeftTop,
			Down:  ebiten.StandardGamepadButtonLeftBottom,
			Left:  ebiten.StandardGamepadButtonLeftLeft,
			Right: ebiten.StandardGamepadButtonLeftRight,
		},
	}
}
