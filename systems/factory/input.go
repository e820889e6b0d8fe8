package factory

import (
	"github.com/automoto/inputassign/archetypes"
	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateInputState spawns the catalog, assignment table and settings singletons
func CreateInputState(ecs *ecs.ECS, input cfg.InputConfig) *donburi.Entry {
	state := archetypes.InputState.Spawn(ecs)

	components.DeviceCatalog.SetValue(state, components.DeviceCatalogData{})
	components.DeviceAssignment.SetValue(state, components.NewDeviceAssignment(input.MaxPlayers))
	components.InputSettings.SetValue(state, components.InputSettingsFromConfig(input))

	return state
}

// CreateInputController spawns the controller and mapping for one player
func CreateInputController(ecs *ecs.ECS, player int) *donburi.Entry {
	controller := archetypes.InputController.Spawn(ecs)

	components.InputController.SetValue(controller, components.NewInputController(player))
	components.PlayerInputMapping.SetValue(controller, components.NewPlayerInputMapping(player))

	return controller
}

// CreateInputControllers spawns controllers for players 0..count-1
func CreateInputControllers(ecs *ecs.ECS, count int) []*donburi.Entry {
	entries := make([]*donburi.Entry, 0, count)
	for player := 0; player < count; player++ {
		entries = append(entries, CreateInputController(ecs, player))
	}
	return entries
}
