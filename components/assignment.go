package components

import (
	"sort"

	"github.com/yohamta/donburi"
)

// DeviceAssignmentData maps player ids to at most one device each.
// No two players hold the same device: Assign evicts the previous holder
// before inserting, so the table stays injective after every mutation.
type DeviceAssignmentData struct {
	MaxPlayers int

	assignments map[int]Device
	revision    uint64 // Bumped on every mutation; read by mapping sync
}

var DeviceAssignment = donburi.NewComponentType[DeviceAssignmentData]()

// NewDeviceAssignment returns an empty table bounded to maxPlayers for auto-assignment
func NewDeviceAssignment(maxPlayers int) DeviceAssignmentData {
	return DeviceAssignmentData{
		MaxPlayers:  maxPlayers,
		assignments: make(map[int]Device),
		revision:    1,
	}
}

// Assign binds device to player, first removing it from whichever player held it.
// It returns the evicted player, if any. Reassigning a player its own device
// is a no-op.
func (a *DeviceAssignmentData) Assign(player int, device Device) (evicted int, wasEvicted bool) {
	if a.assignments == nil {
		a.assignments = make(map[int]Device)
	}
	if current, ok := a.assignments[player]; ok && current == device {
		return 0, false
	}
	for p, d := range a.assignments {
		if d == device && p != player {
			delete(a.assignments, p)
			evicted, wasEvicted = p, true
		}
	}
	a.assignments[player] = device
	a.revision++
	return evicted, wasEvicted
}

// Unassign removes the player's device. It reports whether there was one.
func (a *DeviceAssignmentData) Unassign(player int) bool {
	if _, ok := a.assignments[player]; !ok {
		return false
	}
	delete(a.assignments, player)
	a.revision++
	return true
}

// DeviceFor returns the device assigned to player
func (a *DeviceAssignmentData) DeviceFor(player int) (Device, bool) {
	d, ok := a.assignments[player]
	return d, ok
}

// IsAssigned reports whether any player holds device
func (a *DeviceAssignmentData) IsAssigned(device Device) bool {
	_, ok := a.HolderOf(device)
	return ok
}

// HolderOf returns the player holding device
func (a *DeviceAssignmentData) HolderOf(device Device) (int, bool) {
	for p, d := range a.assignments {
		if d == device {
			return p, true
		}
	}
	return 0, false
}

// Clear removes every assignment
func (a *DeviceAssignmentData) Clear() {
	if len(a.assignments) == 0 {
		return
	}
	for p := range a.assignments {
		delete(a.assignments, p)
	}
	a.revision++
}

// Len returns the number of assigned players
func (a *DeviceAssignmentData) Len() int {
	return len(a.assignments)
}

// IsEmpty reports whether no player holds a device
func (a *DeviceAssignmentData) IsEmpty() bool {
	return len(a.assignments) == 0
}

// AssignedPlayers returns the ids of players holding a device, ascending
func (a *DeviceAssignmentData) AssignedPlayers() []int {
	players := make([]int, 0, len(a.assignments))
	for p := range a.assignments {
		players = append(players, p)
	}
	sort.Ints(players)
	return players
}

// KeyboardHolders returns the players holding any keyboard scheme, ascending
func (a *DeviceAssignmentData) KeyboardHolders() []int {
	var players []int
	for p, d := range a.assignments {
		if d.IsKeyboard() {
			players = append(players, p)
		}
	}
	sort.Ints(players)
	return players
}

// Revision changes whenever the table is mutated
func (a *DeviceAssignmentData) Revision() uint64 {
	return a.revision
}
