package systems

import (
	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/automoto/inputassign/logger"
	"github.com/automoto/inputassign/systems/factory"
	"github.com/automoto/inputassign/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewRefreshCatalog returns the system that rebuilds the device catalog from
// the backend. Must run first in the input tick.
func NewRefreshCatalog(backend InputBackend) func(*ecs.ECS) {
	// Reusable slices to avoid per-frame allocations
	var current, previous []ebiten.GamepadID

	return func(e *ecs.ECS) {
		catalog := components.DeviceCatalog.Get(getOrCreateInputState(e))

		previous = append(previous[:0], catalog.Gamepads...)
		current = backend.AppendGamepadIDs(current[:0])

		RefreshCatalog(catalog, current, backend.Capabilities(), cfg.Input.CustomSchemes)
		logGamepadChanges(previous, catalog.Gamepads)

		if len(previous) != len(catalog.Gamepads) {
			logger.Log.WithFields(logrus.Fields{
				"previous": len(previous),
				"current":  len(catalog.Gamepads),
			}).Info("Gamepad count changed")
			components.GamepadCountChanged.Publish(e.World, components.GamepadCountChangedEvent{
				Previous: len(previous),
				Current:  len(catalog.Gamepads),
			})
		}
	}
}

// RefreshCatalog replaces the catalog contents wholesale
func RefreshCatalog(catalog *components.DeviceCatalogData, gamepads []ebiten.GamepadID, caps components.PlatformCapabilities, custom []cfg.SchemeKeys) {
	catalog.Gamepads = append(catalog.Gamepads[:0], gamepads...)
	catalog.Keyboard = caps.Keyboard
	catalog.Mouse = caps.Mouse
	catalog.Touch = caps.Touch

	catalog.CustomSchemes = catalog.CustomSchemes[:0]
	for _, keys := range custom {
		catalog.CustomSchemes = append(catalog.CustomSchemes, components.CustomScheme(keys))
	}
}

func logGamepadChanges(previous, current []ebiten.GamepadID) {
	for _, id := range current {
		if !containsGamepad(previous, id) {
			logger.Log.WithField("gamepad", id).Debug("Gamepad connected")
		}
	}
	for _, id := range previous {
		if !containsGamepad(current, id) {
			logger.Log.WithField("gamepad", id).Debug("Gamepad disconnected")
		}
	}
}

func containsGamepad(ids []ebiten.GamepadID, id ebiten.GamepadID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}

// getOrCreateInputState returns the entry holding the input singletons,
// creating it from the global config if needed
func getOrCreateInputState(e *ecs.ECS) *donburi.Entry {
	entry, ok := tags.InputState.First(e.World)
	if !ok {
		entry = factory.CreateInputState(e, cfg.Input)
	}
	return entry
}
