package components

import (
	cfg "github.com/automoto/inputassign/config"
	"github.com/yohamta/donburi"
)

// InputSettingsData holds the runtime input tunables
type InputSettingsData struct {
	GamepadDeadzone      float64
	MovementThreshold    float64
	AutoAssignDevices    bool
	AllowKeyboardSharing bool
}

var InputSettings = donburi.NewComponentType[InputSettingsData]()

// InputSettingsFromConfig copies the tunables out of an InputConfig
func InputSettingsFromConfig(c cfg.InputConfig) InputSettingsData {
	return InputSettingsData{
		GamepadDeadzone:      c.GamepadDeadzone,
		MovementThreshold:    c.MovementThreshold,
		AutoAssignDevices:    c.AutoAssignDevices,
		AllowKeyboardSharing: c.AllowKeyboardSharing,
	}
}
