package archetypes

import (
	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/automoto/inputassign/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	// InputController is one local player: runtime input state plus device mapping
	InputController = newArchetype(
		tags.InputController,
		components.InputController,
		components.PlayerInputMapping,
	)
	// InputState holds the process-wide input singletons
	InputState = newArchetype(
		tags.InputState,
		components.DeviceCatalog,
		components.DeviceAssignment,
		components.InputSettings,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
