package systems

import (
	"math"

	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	math2 "github.com/yohamta/donburi/features/math"
)

// NewUpdateKeyboardInput returns the system that samples each keyboard player's
// scheme. Must run AFTER SyncPlayerMappings.
func NewUpdateKeyboardInput(backend InputBackend) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		settings := components.InputSettings.Get(getOrCreateInputState(e))

		eachEnabledController(e.World, func(c *components.InputControllerData, m *components.PlayerInputMappingData) {
			scheme, ok := m.KeyboardScheme()
			if !ok {
				return
			}
			SampleKeyboard(e.World, c, scheme, backend, settings)
		})
	}
}

// NewUpdateGamepadInput returns the system that samples each gamepad player's
// pad. Must run AFTER NewUpdateKeyboardInput.
func NewUpdateGamepadInput(backend InputBackend) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		state := getOrCreateInputState(e)
		settings := components.InputSettings.Get(state)
		catalog := components.DeviceCatalog.Get(state)

		eachEnabledController(e.World, func(c *components.InputControllerData, m *components.PlayerInputMappingData) {
			slot, ok := m.GamepadSlot()
			if !ok {
				return
			}
			id, ok := catalog.GamepadID(slot)
			if !ok {
				return
			}
			SampleGamepad(e.World, c, slot, id, backend, settings)
		})
	}
}

func eachEnabledController(w donburi.World, fn func(*components.InputControllerData, *components.PlayerInputMappingData)) {
	components.InputController.Each(w, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.PlayerInputMapping) {
			return
		}
		c := components.InputController.Get(entry)
		m := components.PlayerInputMapping.Get(entry)
		if !c.Enabled || !m.Enabled {
			return
		}
		fn(c, m)
	})
}

// SampleKeyboard reads one keyboard scheme into the controller.
// Any non-zero direction is normalized to unit length so diagonals move at
// the same speed as straight lines.
func SampleKeyboard(w donburi.World, c *components.InputControllerData, scheme components.KeyboardScheme, backend InputBackend, settings *components.InputSettingsData) {
	device := components.Keyboard(scheme)
	keys := scheme.DirectionKeys()

	var movement math2.Vec2
	if backend.IsKeyPressed(keys.Up) {
		movement.Y += 1
	}
	if backend.IsKeyPressed(keys.Down) {
		movement.Y -= 1
	}
	if backend.IsKeyPressed(keys.Left) {
		movement.X -= 1
	}
	if backend.IsKeyPressed(keys.Right) {
		movement.X += 1
	}
	movement = normalize(movement)

	applyMovement(w, c, device, movement, settings.MovementThreshold)

	primary := anyKeyPressed(backend, cfg.Input.Primary.Keys)
	secondary := anyKeyPressed(backend, cfg.Input.Secondary.Keys)
	applyActions(w, c, &c.Keyboard, device, primary, secondary)
}

// SampleGamepad reads one gamepad into the controller. D-pad directions and
// the left stick (when past the deadzone) are summed, then clamped to unit
// length; vectors already within unit length are left as they are.
func SampleGamepad(w donburi.World, c *components.InputControllerData, slot int, id ebiten.GamepadID, backend InputBackend, settings *components.InputSettingsData) {
	device := components.Gamepad(slot)
	dpad := cfg.Input.DPad

	var movement math2.Vec2
	if backend.IsGamepadButtonPressed(id, dpad.Up) {
		movement.Y += 1
	}
	if backend.IsGamepadButtonPressed(id, dpad.Down) {
		movement.Y -= 1
	}
	if backend.IsGamepadButtonPressed(id, dpad.Left) {
		movement.X -= 1
	}
	if backend.IsGamepadButtonPressed(id, dpad.Right) {
		movement.X += 1
	}

	x, y := backend.LeftStick(id)
	if math.Hypot(x, y) > settings.GamepadDeadzone {
		movement.X += x
		movement.Y += y
	}
	movement = clampUnit(movement)

	applyMovement(w, c, device, movement, settings.MovementThreshold)

	primary := anyButtonPressed(backend, id, cfg.Input.Primary.StandardGamepadButtons)
	secondary := anyButtonPressed(backend, id, cfg.Input.Secondary.StandardGamepadButtons)
	applyActions(w, c, &c.Gamepad, device, primary, secondary)
}

// applyMovement stores movement above the threshold. Below it, only the
// device that is the controller's current source may zero the movement, so
// an idle device cannot clobber another device's movement.
func applyMovement(w donburi.World, c *components.InputControllerData, device components.Device, movement math2.Vec2, threshold float64) {
	if magnitude(movement) > threshold {
		c.Movement = movement
		c.InputSource = device
		components.MovementChanged.Publish(w, components.MovementChangedEvent{
			PlayerID:  c.PlayerID,
			Direction: movement,
			Source:    device,
		})
		return
	}
	if c.InputSource == device {
		c.Movement = math2.Vec2{}
	}
}

// applyActions records this frame's held state and fires on press edges only
func applyActions(w donburi.World, c *components.InputControllerData, history *components.ActionHistory, device components.Device, primary, secondary bool) {
	if history.Device != device {
		// New device on this path: no history to compare against
		history.Device = device
		history.Current = [2]bool{}
	}
	history.Previous = history.Current
	history.Current = [2]bool{primary, secondary}

	if GetHistoryAction(history, components.ActionPrimary).JustPressed {
		c.PrimaryAction = true
		c.InputSource = device
		components.PrimaryActionFired.Publish(w, components.PrimaryActionFiredEvent{
			PlayerID: c.PlayerID,
			Source:   device,
		})
	}

	if GetHistoryAction(history, components.ActionSecondary).JustPressed {
		c.SecondaryAction = true
		c.InputSource = device
		components.SecondaryActionFired.Publish(w, components.SecondaryActionFiredEvent{
			PlayerID: c.PlayerID,
			Source:   device,
		})
	}
}

// GetHistoryAction returns the full ActionState for an action.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetHistoryAction(history *components.ActionHistory, action int) components.ActionState {
	curr := history.Current[action]
	prev := history.Previous[action]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

// DispatchInputEvents delivers this tick's output events to subscribers.
// Must run AFTER sampling and BEFORE ClearInputStates.
func DispatchInputEvents(e *ecs.ECS) {
	components.GamepadCountChanged.ProcessEvents(e.World)
	components.AssignmentChanged.ProcessEvents(e.World)
	components.MovementChanged.ProcessEvents(e.World)
	components.PrimaryActionFired.ProcessEvents(e.World)
	components.SecondaryActionFired.ProcessEvents(e.World)
}

// ClearInputStates resets every controller's action flags. Must run last.
func ClearInputStates(e *ecs.ECS) {
	components.InputController.Each(e.World, func(entry *donburi.Entry) {
		c := components.InputController.Get(entry)
		c.PrimaryAction = false
		c.SecondaryAction = false
	})
}

func anyKeyPressed(backend InputBackend, keys []ebiten.Key) bool {
	for _, k := range keys {
		if backend.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyButtonPressed(backend InputBackend, id ebiten.GamepadID, buttons []ebiten.StandardGamepadButton) bool {
	for _, b := range buttons {
		if backend.IsGamepadButtonPressed(id, b) {
			return true
		}
	}
	return false
}

func magnitude(v math2.Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

func normalize(v math2.Vec2) math2.Vec2 {
	m := magnitude(v)
	if m == 0 {
		return v
	}
	return math2.Vec2{X: v.X / m, Y: v.Y / m}
}

func clampUnit(v math2.Vec2) math2.Vec2 {
	if magnitude(v) > 1 {
		return normalize(v)
	}
	return v
}
