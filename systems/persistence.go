package systems

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/automoto/inputassign/logger"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

const inputSettingsItem = "input-settings"

// SettingsStore is the key/value storage used for settings.
// *gdata.Manager satisfies it.
type SettingsStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SavedInputSettings represents the input settings stored on disk
type SavedInputSettings struct {
	GamepadDeadzone      float64  `json:"gamepadDeadzone"`
	MovementThreshold    float64  `json:"movementThreshold"`
	AutoAssignDevices    bool     `json:"autoAssignDevices"`
	AllowKeyboardSharing bool     `json:"allowKeyboardSharing"`
	CustomSchemes        []string `json:"customSchemes,omitempty"`
}

var settingsStore SettingsStore

// InitPersistence opens the gdata store for settings storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	settingsStore = m
	return nil
}

// SetSettingsStore replaces the settings store; nil disables persistence
func SetSettingsStore(s SettingsStore) {
	settingsStore = s
}

// LoadInputSettings loads input settings from disk.
// It returns nil, nil when persistence is off or nothing was saved yet.
func LoadInputSettings() (*SavedInputSettings, error) {
	if settingsStore == nil {
		return nil, nil
	}

	data, err := settingsStore.LoadItem(inputSettingsItem)
	if err != nil {
		return nil, fmt.Errorf("load input settings: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var saved SavedInputSettings
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse input settings: %w", err)
	}
	return &saved, nil
}

// SaveInputSettings saves input settings to disk
func SaveInputSettings(s *SavedInputSettings) error {
	if settingsStore == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize input settings: %w", err)
	}
	if err := settingsStore.SaveItem(inputSettingsItem, data); err != nil {
		return fmt.Errorf("save input settings: %w", err)
	}
	return nil
}

// SaveCurrentInputSettings saves the world's runtime settings plus the
// configured custom schemes. Failures are logged.
func SaveCurrentInputSettings(e *ecs.ECS) {
	settings := components.InputSettings.Get(getOrCreateInputState(e))

	saved := &SavedInputSettings{
		GamepadDeadzone:      settings.GamepadDeadzone,
		MovementThreshold:    settings.MovementThreshold,
		AutoAssignDevices:    settings.AutoAssignDevices,
		AllowKeyboardSharing: settings.AllowKeyboardSharing,
	}
	for _, keys := range cfg.Input.CustomSchemes {
		saved.CustomSchemes = append(saved.CustomSchemes, cfg.FormatSchemeKeys(keys))
	}

	if err := SaveInputSettings(saved); err != nil {
		logger.Log.WithError(err).Warn("Could not save input settings")
		return
	}
	logger.Log.Debug("Saved input settings")
}

// ApplySavedInputSettings applies loaded settings to a running world
func ApplySavedInputSettings(e *ecs.ECS, saved *SavedInputSettings) {
	if saved == nil {
		return
	}
	settings := components.InputSettings.Get(getOrCreateInputState(e))
	settings.GamepadDeadzone = saved.GamepadDeadzone
	settings.MovementThreshold = saved.MovementThreshold
	settings.AutoAssignDevices = saved.AutoAssignDevices
	settings.AllowKeyboardSharing = saved.AllowKeyboardSharing
}

// ApplySavedInputSettingsGlobal applies settings to the global input config.
// Used during startup before any world exists. Unparseable custom schemes
// are skipped with a warning.
func ApplySavedInputSettingsGlobal(saved *SavedInputSettings) {
	if saved == nil {
		return
	}

	cfg.Input.GamepadDeadzone = saved.GamepadDeadzone
	cfg.Input.MovementThreshold = saved.MovementThreshold
	cfg.Input.AutoAssignDevices = saved.AutoAssignDevices
	cfg.Input.AllowKeyboardSharing = saved.AllowKeyboardSharing

	if len(saved.CustomSchemes) == 0 {
		return
	}
	custom := make([]cfg.SchemeKeys, 0, len(saved.CustomSchemes))
	for _, s := range saved.CustomSchemes {
		keys, err := cfg.ParseSchemeKeys(s)
		if err != nil {
			logger.Log.WithError(err).Warn("Skipping saved keyboard scheme")
			continue
		}
		custom = append(custom, keys)
	}
	cfg.Input.CustomSchemes = custom
}
