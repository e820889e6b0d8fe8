package systems

import (
	"errors"
	"strings"
	"testing"

	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// memoryStore is an in-memory SettingsStore
type memoryStore struct {
	items   map[string][]byte
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string][]byte)}
}

func (s *memoryStore) LoadItem(itemKey string) ([]byte, error) {
	return s.items[itemKey], nil
}

func (s *memoryStore) SaveItem(itemKey string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.items[itemKey] = data
	return nil
}

func useStore(t *testing.T, s SettingsStore) {
	t.Helper()
	old := settingsStore
	SetSettingsStore(s)
	t.Cleanup(func() { SetSettingsStore(old) })
}

func restoreInput(t *testing.T) {
	t.Helper()
	old := cfg.Input
	t.Cleanup(func() { cfg.Input = old })
}

func TestLoadWithoutStoreOrData(t *testing.T) {
	useStore(t, nil)
	if saved, err := LoadInputSettings(); saved != nil || err != nil {
		t.Errorf("no store: %v, %v", saved, err)
	}

	useStore(t, newMemoryStore())
	if saved, err := LoadInputSettings(); saved != nil || err != nil {
		t.Errorf("empty store: %v, %v", saved, err)
	}
}

func TestSaveAndLoadInputSettings(t *testing.T) {
	restoreInput(t)
	store := newMemoryStore()
	useStore(t, store)

	keys := cfg.SchemeKeys{Up: ebiten.KeyT, Down: ebiten.KeyG, Left: ebiten.KeyF, Right: ebiten.KeyH}
	cfg.Input.CustomSchemes = []cfg.SchemeKeys{keys}

	e := newTestECS(cfg.DefaultInput(), 1)
	_, _, settings := inputState(e)
	settings.GamepadDeadzone = 0.35
	settings.AllowKeyboardSharing = false
	SaveCurrentInputSettings(e)

	if len(store.items[inputSettingsItem]) == 0 {
		t.Fatal("nothing was written")
	}

	saved, err := LoadInputSettings()
	if err != nil {
		t.Fatal(err)
	}
	if saved.GamepadDeadzone != 0.35 || saved.AllowKeyboardSharing || !saved.AutoAssignDevices {
		t.Errorf("saved = %+v", saved)
	}
	if len(saved.CustomSchemes) != 1 || saved.CustomSchemes[0] != "T/G/F/H" {
		t.Errorf("CustomSchemes = %v", saved.CustomSchemes)
	}

	cfg.Input = cfg.DefaultInput()
	ApplySavedInputSettingsGlobal(saved)
	if cfg.Input.GamepadDeadzone != 0.35 || cfg.Input.AllowKeyboardSharing {
		t.Errorf("global config not updated: %+v", cfg.Input)
	}
	if len(cfg.Input.CustomSchemes) != 1 || cfg.Input.CustomSchemes[0] != keys {
		t.Errorf("custom schemes not restored: %+v", cfg.Input.CustomSchemes)
	}
}

func TestLoadRejectsCorruptData(t *testing.T) {
	store := newMemoryStore()
	store.items[inputSettingsItem] = []byte("{not json")
	useStore(t, store)

	if _, err := LoadInputSettings(); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveErrorIsWrapped(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("disk full")
	useStore(t, store)

	err := SaveInputSettings(&SavedInputSettings{})
	if !errors.Is(err, store.saveErr) {
		t.Errorf("err = %v", err)
	}
}

func TestApplySavedSkipsBadSchemes(t *testing.T) {
	restoreInput(t)

	ApplySavedInputSettingsGlobal(&SavedInputSettings{
		GamepadDeadzone:   0.25,
		MovementThreshold: 0.05,
		AutoAssignDevices: true,
		CustomSchemes:     []string{"W/S/A", "I/K/J/L"},
	})

	if len(cfg.Input.CustomSchemes) != 1 || cfg.Input.CustomSchemes[0] != cfg.Input.IJKL {
		t.Errorf("CustomSchemes = %+v", cfg.Input.CustomSchemes)
	}
	if cfg.Input.MovementThreshold != 0.05 {
		t.Errorf("MovementThreshold = %v", cfg.Input.MovementThreshold)
	}
}

func TestApplySavedToWorld(t *testing.T) {
	e := newTestECS(cfg.DefaultInput(), 1)
	ApplySavedInputSettings(e, nil)
	ApplySavedInputSettings(e, &SavedInputSettings{GamepadDeadzone: 0.5, AutoAssignDevices: false})

	_, _, settings := inputState(e)
	if settings.GamepadDeadzone != 0.5 || settings.AutoAssignDevices {
		t.Errorf("settings = %+v", settings)
	}
}

func TestHotkeys(t *testing.T) {
	store := newMemoryStore()
	useStore(t, store)

	backend := newFakeBackend()
	backend.caps = components.PlatformCapabilities{Keyboard: true}
	e := newTestPipeline(cfg.DefaultInput(), 2, backend)
	e.Update()
	table, _, settings := inputState(e)
	if table.Len() != 2 {
		t.Fatalf("expected both players assigned, got %v", table.AssignedPlayers())
	}

	ApplyHotkey(e, HotkeyToggleAutoAssign)
	if settings.AutoAssignDevices {
		t.Error("F1 should turn auto-assign off")
	}
	if _, ok := store.items[inputSettingsItem]; !ok {
		t.Error("toggling a setting should save it")
	}

	ApplyHotkey(e, HotkeyToggleSharing)
	if settings.AllowKeyboardSharing {
		t.Error("F3 should turn keyboard sharing off")
	}

	ApplyHotkey(e, HotkeyClearAssignments)
	e.Update()
	if !table.IsEmpty() {
		t.Errorf("F2 should clear the table, got %v", table.AssignedPlayers())
	}

	ApplyHotkey(e, HotkeyToggleAutoAssign)
	e.Update()
	if got := table.AssignedPlayers(); len(got) != 1 {
		t.Errorf("without sharing only one keyboard player is refilled, got %v", got)
	}
	if d, _ := table.DeviceFor(0); d != components.Keyboard(components.WASD) {
		t.Errorf("player 0 holds %s", d)
	}
}

func TestInputDebugText(t *testing.T) {
	e := newTestPipeline(cfg.DefaultInput(), 1, newFakeBackend(0))
	e.Update()

	text := InputDebugText(e)
	for _, want := range []string{"keyboard:wasd(P1)", "gamepad:0", "P1 Keyboard (WASD)"} {
		if !strings.Contains(text, want) {
			t.Errorf("overlay missing %q:\n%s", want, text)
		}
	}
}
