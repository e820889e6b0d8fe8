package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/inputassign/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Debug hotkeys handled by UpdateHotkeys
const (
	HotkeyToggleAutoAssign = ebiten.KeyF1
	HotkeyClearAssignments = ebiten.KeyF2
	HotkeyToggleSharing    = ebiten.KeyF3
)

// UpdateHotkeys applies the debug hotkeys pressed this frame
func UpdateHotkeys(e *ecs.ECS) {
	for _, key := range []ebiten.Key{HotkeyToggleAutoAssign, HotkeyClearAssignments, HotkeyToggleSharing} {
		if inpututil.IsKeyJustPressed(key) {
			ApplyHotkey(e, key)
		}
	}
}

// ApplyHotkey runs the action bound to key. Settings changes are saved.
// Clearing goes through unassign requests so the table is only mutated by
// UpdateAssignments; auto-assignment then refills it on the next tick.
func ApplyHotkey(e *ecs.ECS, key ebiten.Key) {
	state := getOrCreateInputState(e)
	settings := components.InputSettings.Get(state)

	switch key {
	case HotkeyToggleAutoAssign:
		settings.AutoAssignDevices = !settings.AutoAssignDevices
		SaveCurrentInputSettings(e)
	case HotkeyToggleSharing:
		settings.AllowKeyboardSharing = !settings.AllowKeyboardSharing
		SaveCurrentInputSettings(e)
	case HotkeyClearAssignments:
		for _, p := range components.DeviceAssignment.Get(state).AssignedPlayers() {
			RequestUnassign(e, p)
		}
	}
}

// DrawInputDebug prints the catalog, the assignment table and each controller
func DrawInputDebug(e *ecs.ECS, screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, InputDebugText(e))
}

// InputDebugText renders the overlay text for the world's input state
func InputDebugText(e *ecs.ECS) string {
	state := getOrCreateInputState(e)
	catalog := components.DeviceCatalog.Get(state)
	table := components.DeviceAssignment.Get(state)
	settings := components.InputSettings.Get(state)

	var b strings.Builder
	fmt.Fprintf(&b, "auto-assign [F1]: %t  keyboard sharing [F3]: %t  clear [F2]\n",
		settings.AutoAssignDevices, settings.AllowKeyboardSharing)

	b.WriteString("devices:")
	for _, d := range catalog.AvailableDevices() {
		b.WriteString(" ")
		b.WriteString(d.String())
		if holder, ok := table.HolderOf(d); ok {
			fmt.Fprintf(&b, "(P%d)", holder+1)
		}
	}
	b.WriteString("\n")

	components.InputController.Each(e.World, func(entry *donburi.Entry) {
		c := components.InputController.Get(entry)
		device := "none"
		if entry.HasComponent(components.PlayerInputMapping) {
			if d, ok := components.PlayerInputMapping.Get(entry).ActiveDevice(); ok {
				device = d.Name()
			}
		}
		fmt.Fprintf(&b, "P%d %-16s move(%+.2f,%+.2f) primary:%t secondary:%t\n",
			c.PlayerID+1, device, c.Movement.X, c.Movement.Y,
			c.PrimaryAction, c.SecondaryAction)
	})

	return b.String()
}
