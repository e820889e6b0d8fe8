package config

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyNames maps short key name strings to ebiten.Key values.
var keyNames = map[string]ebiten.Key{
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,
	"0": ebiten.Key0, "1": ebiten.Key1, "2": ebiten.Key2, "3": ebiten.Key3,
	"4": ebiten.Key4, "5": ebiten.Key5, "6": ebiten.Key6, "7": ebiten.Key7,
	"8": ebiten.Key8, "9": ebiten.Key9,
	"Numpad0": ebiten.KeyNumpad0, "Numpad1": ebiten.KeyNumpad1,
	"Numpad2": ebiten.KeyNumpad2, "Numpad3": ebiten.KeyNumpad3,
	"Numpad4": ebiten.KeyNumpad4, "Numpad5": ebiten.KeyNumpad5,
	"Numpad6": ebiten.KeyNumpad6, "Numpad7": ebiten.KeyNumpad7,
	"Numpad8": ebiten.KeyNumpad8, "Numpad9": ebiten.KeyNumpad9,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"Semicolon":  ebiten.KeySemicolon,
	"Comma":      ebiten.KeyComma,
	"Period":     ebiten.KeyPeriod,
	"Slash":      ebiten.KeySlash,
	"Quote":      ebiten.KeyQuote,
	"[":          ebiten.KeyLeftBracket,
	"]":          ebiten.KeyRightBracket,
}

var keyToName map[ebiten.Key]string

func init() {
	keyToName = make(map[ebiten.Key]string, len(keyNames))
	for name, key := range keyNames {
		keyToName[key] = name
	}
}

// KeyByName resolves a key name (case-insensitive for letters)
func KeyByName(name string) (ebiten.Key, bool) {
	name = strings.TrimSpace(name)
	if k, ok := keyNames[name]; ok {
		return k, true
	}
	k, ok := keyNames[strings.ToUpper(name)]
	return k, ok
}

// KeyName returns the short name of a key, or its ebiten name when it has none
func KeyName(k ebiten.Key) string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	return k.String()
}

// ParseSchemeKeys parses "up/down/left/right" key names into SchemeKeys
func ParseSchemeKeys(s string) (SchemeKeys, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 4 {
		return SchemeKeys{}, fmt.Errorf("keyboard scheme %q: want 4 keys (up/down/left/right), got %d", s, len(parts))
	}
	var keys [4]ebiten.Key
	for i, p := range parts {
		k, ok := KeyByName(p)
		if !ok {
			return SchemeKeys{}, fmt.Errorf("keyboard scheme %q: unknown key %q", s, strings.TrimSpace(p))
		}
		keys[i] = k
	}
	return SchemeKeys{Up: keys[0], Down: keys[1], Left: keys[2], Right: keys[3]}, nil
}

// FormatSchemeKeys is the inverse of ParseSchemeKeys
func FormatSchemeKeys(k SchemeKeys) string {
	return strings.Join([]string{KeyName(k.Up), KeyName(k.Down), KeyName(k.Left), KeyName(k.Right)}, "/")
}
