package systems

import (
	"errors"

	"github.com/automoto/inputassign/components"
	"github.com/automoto/inputassign/logger"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Reasons a manual assignment request is rejected. They are logged by the
// assignment step and never returned to the requester.
var (
	ErrDeviceUnavailable       = errors.New("device is not available")
	ErrDeviceAlreadyHeld       = errors.New("device is already assigned to another player")
	ErrKeyboardSharingDisabled = errors.New("another player already uses the keyboard")
)

// RequestAssign queues a manual request to bind device to player. It is
// validated and applied by the next UpdateAssignments.
func RequestAssign(e *ecs.ECS, player int, device components.Device) {
	components.AssignmentRequested.Publish(e.World, components.AssignmentRequestEvent{
		Assign:   true,
		PlayerID: player,
		Device:   device,
	})
}

// RequestUnassign queues a manual request to remove the player's device
func RequestUnassign(e *ecs.ECS, player int) {
	components.AssignmentRequested.Publish(e.World, components.AssignmentRequestEvent{
		PlayerID: player,
	})
}

// SubscribeAssignmentRequests installs the handler that applies queued requests.
// AddInputSystems calls it; call it once per world when wiring systems by hand.
func SubscribeAssignmentRequests(w donburi.World) {
	components.AssignmentRequested.Subscribe(w, onAssignmentRequested)
}

// UpdateAssignments applies queued manual requests in the order they were
// issued, then runs auto-assignment. It is the only system that mutates the
// assignment table.
func UpdateAssignments(e *ecs.ECS) {
	state := getOrCreateInputState(e)

	components.AssignmentRequested.ProcessEvents(e.World)

	AutoAssignDevices(
		e.World,
		components.DeviceAssignment.Get(state),
		components.DeviceCatalog.Get(state),
		components.InputSettings.Get(state),
		controllerPlayerIDs(e.World),
	)
}

func onAssignmentRequested(w donburi.World, req components.AssignmentRequestEvent) {
	entry, ok := components.DeviceAssignment.First(w)
	if !ok {
		logger.Log.WithField("assign", req.Assign).Warn("Assignment request received but input state is missing")
		return
	}
	table := components.DeviceAssignment.Get(entry)

	if !req.Assign {
		UnassignDevice(w, table, req.PlayerID)
		return
	}

	catalog := components.DeviceCatalog.Get(entry)
	settings := components.InputSettings.Get(entry)

	fields := logrus.Fields{"player": req.PlayerID, "device": req.Device.Name()}
	if err := ValidateAssignRequest(table, catalog, settings, req.PlayerID, req.Device); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("Assignment request rejected")
		return
	}
	AssignDevice(w, table, req.PlayerID, req.Device)
}

// ValidateAssignRequest checks a manual request against the current catalog
// and table. A player re-requesting its own device is accepted.
func ValidateAssignRequest(table *components.DeviceAssignmentData, catalog *components.DeviceCatalogData, settings *components.InputSettingsData, player int, device components.Device) error {
	if !catalog.Contains(device) {
		return ErrDeviceUnavailable
	}
	if holder, ok := table.HolderOf(device); ok && holder != player {
		return ErrDeviceAlreadyHeld
	}
	if device.IsKeyboard() && !settings.AllowKeyboardSharing && otherKeyboardHolder(table, player) {
		return ErrKeyboardSharingDisabled
	}
	return nil
}

// AssignDevice binds device to player, evicting any previous holder, and
// publishes the resulting notifications.
func AssignDevice(w donburi.World, table *components.DeviceAssignmentData, player int, device components.Device) {
	if evicted, ok := table.Assign(player, device); ok {
		logger.Log.WithFields(logrus.Fields{
			"player": evicted,
			"device": device.Name(),
		}).Info("Device taken from player")
		components.AssignmentChanged.Publish(w, components.AssignmentChangedEvent{
			Change:   components.DeviceUnassigned,
			PlayerID: evicted,
		})
	}

	logger.Log.WithFields(logrus.Fields{
		"player": player,
		"device": device.Name(),
	}).Info("Assigned device to player")
	components.AssignmentChanged.Publish(w, components.AssignmentChangedEvent{
		Change:   components.DeviceAssigned,
		PlayerID: player,
		Device:   device,
	})
}

// UnassignDevice removes the player's device. Absent players are a no-op.
func UnassignDevice(w donburi.World, table *components.DeviceAssignmentData, player int) {
	if !table.Unassign(player) {
		return
	}
	logger.Log.WithField("player", player).Info("Unassigned device from player")
	components.AssignmentChanged.Publish(w, components.AssignmentChangedEvent{
		Change:   components.DeviceUnassigned,
		PlayerID: player,
	})
}

// AutoAssignDevices fills players from the catalog when auto-assignment is on
// and the table is empty. It never rebalances or steals once any assignment
// exists, so a player left without a device stays unassigned until the table
// is cleared.
//
// The players considered are 0..max(players), bounded by table.MaxPlayers,
// in ascending order; each takes the first catalog device nobody holds.
func AutoAssignDevices(w donburi.World, table *components.DeviceAssignmentData, catalog *components.DeviceCatalogData, settings *components.InputSettingsData, players []int) {
	if !settings.AutoAssignDevices || !table.IsEmpty() {
		return
	}

	maxID := 0
	for _, p := range players {
		if p > maxID {
			maxID = p
		}
	}
	playerCount := maxID + 1
	if playerCount > table.MaxPlayers {
		playerCount = table.MaxPlayers
	}

	available := catalog.AvailableDevices()
	for player := 0; player < playerCount; player++ {
		if _, ok := table.DeviceFor(player); ok {
			continue
		}

		device, ok := firstFreeDevice(table, available, settings.AllowKeyboardSharing, player)
		if !ok {
			logger.Log.WithField("player", player).Debug("No free device for player")
			continue
		}
		AssignDevice(w, table, player, device)
	}
}

func firstFreeDevice(table *components.DeviceAssignmentData, available []components.Device, keyboardSharing bool, player int) (components.Device, bool) {
	for _, d := range available {
		if table.IsAssigned(d) {
			continue
		}
		if d.IsKeyboard() && !keyboardSharing && otherKeyboardHolder(table, player) {
			continue
		}
		return d, true
	}
	return components.Device{}, false
}

func otherKeyboardHolder(table *components.DeviceAssignmentData, player int) bool {
	for _, p := range table.KeyboardHolders() {
		if p != player {
			return true
		}
	}
	return false
}

// controllerPlayerIDs returns the player ids of every live input controller
func controllerPlayerIDs(w donburi.World) []int {
	var ids []int
	components.InputController.Each(w, func(entry *donburi.Entry) {
		ids = append(ids, components.InputController.Get(entry).PlayerID)
	})
	return ids
}

// SyncPlayerMappings copies the assignment table into every mapping's primary
// device. It always overwrites, so a Primary written directly onto a mapping
// lasts until the next tick. Running it twice changes nothing.
func SyncPlayerMappings(e *ecs.ECS) {
	table := components.DeviceAssignment.Get(getOrCreateInputState(e))
	revision := table.Revision()

	components.PlayerInputMapping.Each(e.World, func(entry *donburi.Entry) {
		mapping := components.PlayerInputMapping.Get(entry)
		if device, ok := table.DeviceFor(mapping.PlayerID); ok {
			mapping.Primary = &device
		} else {
			mapping.Primary = nil
		}
		mapping.Synced = true
		mapping.SyncedRevision = revision
	})
}
