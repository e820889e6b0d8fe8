package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Keys read by Load. Flag names use the same spelling.
const (
	KeyWidth                = "width"
	KeyHeight               = "height"
	KeyDeadzone             = "deadzone"
	KeyMovementThreshold    = "movement-threshold"
	KeyAutoAssign           = "auto-assign"
	KeyAllowKeyboardSharing = "allow-keyboard-sharing"
	KeyMaxPlayers           = "max-players"
	KeyCustomSchemes        = "custom-scheme"
	KeyFeedAddr             = "feed-addr"
	KeyPersist              = "persist"
)

// SetDefaults registers the current global values as viper defaults
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyWidth, C.Width)
	v.SetDefault(KeyHeight, C.Height)
	v.SetDefault(KeyDeadzone, Input.GamepadDeadzone)
	v.SetDefault(KeyMovementThreshold, Input.MovementThreshold)
	v.SetDefault(KeyAutoAssign, Input.AutoAssignDevices)
	v.SetDefault(KeyAllowKeyboardSharing, Input.AllowKeyboardSharing)
	v.SetDefault(KeyMaxPlayers, Input.MaxPlayers)
	v.SetDefault(KeyCustomSchemes, []string{})
	v.SetDefault(KeyFeedAddr, Feed.Addr)
	v.SetDefault(KeyPersist, Persistence.Enabled)
}

// Load copies the values resolved by viper (flags, env, config file, defaults)
// into the global configuration.
func Load(v *viper.Viper) error {
	deadzone := v.GetFloat64(KeyDeadzone)
	if deadzone < 0 || deadzone >= 1 {
		return fmt.Errorf("%s must be in [0, 1), got %v", KeyDeadzone, deadzone)
	}
	threshold := v.GetFloat64(KeyMovementThreshold)
	if threshold < 0 || threshold >= 1 {
		return fmt.Errorf("%s must be in [0, 1), got %v", KeyMovementThreshold, threshold)
	}
	maxPlayers := v.GetInt(KeyMaxPlayers)
	if maxPlayers < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyMaxPlayers, maxPlayers)
	}

	var custom []SchemeKeys
	for _, s := range v.GetStringSlice(KeyCustomSchemes) {
		keys, err := ParseSchemeKeys(s)
		if err != nil {
			return err
		}
		custom = append(custom, keys)
	}

	C.Width = v.GetInt(KeyWidth)
	C.Height = v.GetInt(KeyHeight)

	Input.GamepadDeadzone = deadzone
	Input.MovementThreshold = threshold
	Input.AutoAssignDevices = v.GetBool(KeyAutoAssign)
	Input.AllowKeyboardSharing = v.GetBool(KeyAllowKeyboardSharing)
	Input.MaxPlayers = maxPlayers
	Input.CustomSchemes = custom

	Feed.Addr = v.GetString(KeyFeedAddr)
	Persistence.Enabled = v.GetBool(KeyPersist)
	return nil
}
