package config

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseSchemeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want SchemeKeys
	}{
		{"W/S/A/D", Input.WASD},
		{"w/s/a/d", Input.WASD},
		{"ArrowUp/ArrowDown/ArrowLeft/ArrowRight", Input.Arrows},
		{" Numpad8 / Numpad2 / Numpad4 / Numpad6 ", SchemeKeys{Up: ebiten.KeyNumpad8, Down: ebiten.KeyNumpad2, Left: ebiten.KeyNumpad4, Right: ebiten.KeyNumpad6}},
	}

	for _, tt := range tests {
		got, err := ParseSchemeKeys(tt.in)
		if err != nil {
			t.Errorf("ParseSchemeKeys(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSchemeKeys(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseSchemeKeysErrors(t *testing.T) {
	for _, in := range []string{"", "W/S/A", "W/S/A/D/E", "W/S/A/Nope", "W,S,A,D"} {
		if _, err := ParseSchemeKeys(in); err == nil {
			t.Errorf("ParseSchemeKeys(%q) should fail", in)
		}
	}
}

func TestFormatSchemeKeys(t *testing.T) {
	keys := SchemeKeys{Up: ebiten.KeyT, Down: ebiten.KeyG, Left: ebiten.KeyF, Right: ebiten.KeyH}
	s := FormatSchemeKeys(keys)
	if s != "T/G/F/H" {
		t.Errorf("FormatSchemeKeys = %q", s)
	}
	back, err := ParseSchemeKeys(s)
	if err != nil || back != keys {
		t.Errorf("round trip = %+v, %v", back, err)
	}
}
