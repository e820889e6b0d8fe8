package systems

import (
	"github.com/yohamta/donburi/ecs"
)

// AddInputSystems registers the input tick in its required order:
// catalog refresh, assignment (requests, auto-assign, mapping sync),
// keyboard then gamepad sampling, event dispatch, consumers, action clear.
// Consumers run after dispatch and still see this tick's action flags.
func AddInputSystems(e *ecs.ECS, backend InputBackend, consumers ...ecs.System) {
	SubscribeAssignmentRequests(e.World)

	e.AddSystem(NewRefreshCatalog(backend))
	e.AddSystem(UpdateAssignments)
	e.AddSystem(SyncPlayerMappings)
	e.AddSystem(NewUpdateKeyboardInput(backend))
	e.AddSystem(NewUpdateGamepadInput(backend))
	e.AddSystem(DispatchInputEvents)
	for _, c := range consumers {
		e.AddSystem(c)
	}
	e.AddSystem(ClearInputStates)
}
