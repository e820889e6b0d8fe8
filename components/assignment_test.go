package components

import (
	"math/rand"
	"reflect"
	"testing"
)

func assertInjective(t *testing.T, a *DeviceAssignmentData) {
	t.Helper()
	seen := make(map[Device]int)
	for _, p := range a.AssignedPlayers() {
		d, _ := a.DeviceFor(p)
		if other, ok := seen[d]; ok {
			t.Fatalf("%s held by players %d and %d", d, other, p)
		}
		seen[d] = p
	}
}

func TestAssignEvictsPreviousHolder(t *testing.T) {
	a := NewDeviceAssignment(4)

	if _, evicted := a.Assign(0, Keyboard(WASD)); evicted {
		t.Fatal("first assignment should not evict")
	}
	a.Assign(1, Gamepad(0))

	evicted, ok := a.Assign(1, Keyboard(WASD))
	if !ok || evicted != 0 {
		t.Fatalf("expected player 0 evicted, got %d (%v)", evicted, ok)
	}
	if _, held := a.DeviceFor(0); held {
		t.Error("player 0 should have no device")
	}
	if d, _ := a.DeviceFor(1); d != Keyboard(WASD) {
		t.Errorf("player 1 has %s, want keyboard:wasd", d)
	}
	if a.IsAssigned(Gamepad(0)) {
		t.Error("gamepad 0 should be free after player 1 moved to the keyboard")
	}
	assertInjective(t, &a)
}

func TestAssignSameDeviceIsNoop(t *testing.T) {
	a := NewDeviceAssignment(4)
	a.Assign(2, Gamepad(1))
	rev := a.Revision()

	if _, evicted := a.Assign(2, Gamepad(1)); evicted {
		t.Error("reassigning own device should not evict")
	}
	if a.Revision() != rev {
		t.Error("reassigning own device should not bump the revision")
	}
}

func TestUnassignAndClear(t *testing.T) {
	a := NewDeviceAssignment(4)
	a.Assign(0, Keyboard(Arrows))
	a.Assign(3, Mouse)

	if !a.Unassign(0) {
		t.Error("expected player 0 to be unassigned")
	}
	if a.Unassign(0) {
		t.Error("second unassign should report nothing removed")
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}

	rev := a.Revision()
	a.Clear()
	if !a.IsEmpty() {
		t.Error("table should be empty after Clear")
	}
	if a.Revision() == rev {
		t.Error("Clear should bump the revision")
	}

	rev = a.Revision()
	a.Clear()
	if a.Revision() != rev {
		t.Error("clearing an empty table should not bump the revision")
	}
}

func TestHoldersAreSorted(t *testing.T) {
	a := NewDeviceAssignment(8)
	a.Assign(5, Keyboard(IJKL))
	a.Assign(1, Gamepad(0))
	a.Assign(3, Keyboard(WASD))
	a.Assign(0, Touch)

	if got, want := a.AssignedPlayers(), []int{0, 1, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("AssignedPlayers = %v, want %v", got, want)
	}
	if got, want := a.KeyboardHolders(), []int{3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("KeyboardHolders = %v, want %v", got, want)
	}
	if p, ok := a.HolderOf(Touch); !ok || p != 0 {
		t.Errorf("HolderOf(touch) = %d, %v", p, ok)
	}
}

func TestZeroValueTableAssigns(t *testing.T) {
	var a DeviceAssignmentData
	a.Assign(0, Mouse)
	if d, ok := a.DeviceFor(0); !ok || d != Mouse {
		t.Errorf("DeviceFor(0) = %s, %v", d, ok)
	}
}

func TestRandomSequencesStayInjective(t *testing.T) {
	devices := []Device{
		Keyboard(WASD), Keyboard(Arrows), Keyboard(IJKL),
		Gamepad(0), Gamepad(1), Gamepad(2), Mouse, Touch,
	}
	const players = 4

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a := NewDeviceAssignment(players)
		model := make(map[int]Device)

		for step := 0; step < 200; step++ {
			player := rng.Intn(players)
			switch op := rng.Intn(10); {
			case op < 6:
				d := devices[rng.Intn(len(devices))]
				a.Assign(player, d)
				for p, held := range model {
					if held == d {
						delete(model, p)
					}
				}
				model[player] = d
			case op < 9:
				a.Unassign(player)
				delete(model, player)
			default:
				a.Clear()
				model = make(map[int]Device)
			}

			assertInjective(t, &a)
			if a.Len() != len(model) {
				t.Fatalf("seed %d step %d: %d assignments, want %d", seed, step, a.Len(), len(model))
			}
			for p, want := range model {
				if got, ok := a.DeviceFor(p); !ok || got != want {
					t.Fatalf("seed %d step %d: player %d holds %v, want %s", seed, step, p, got, want)
				}
			}
		}
	}
}
