// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewThemeModes(t *testing.T) {
	dark := NewTheme("dark")
	if !dark.IsDark || dark.Mode != "dark" {
		t.Errorf("NewTheme(dark) = %q, IsDark=%v", dark.Mode, dark.IsDark)
	}

	light := NewTheme("light")
	if light.IsDark || light.Mode != "light" {
		t.Errorf("NewTheme(light) = %q, IsDark=%v", light.Mode, light.IsDark)
	}
}

func TestNewThemeInvalidModeDefaultsToDark(t *testing.T) {
	for _, mode := range []string{"", "solarized", "DARK"} {
		theme := NewTheme(mode)
		if !theme.IsDark {
			t.Errorf("NewTheme(%q) should default to dark", mode)
		}
	}
}

func TestToggle(t *testing.T) {
	theme := NewTheme("dark")
	toggled := theme.Toggle()
	if toggled.IsDark {
		t.Error("Toggle from dark should yield light")
	}
	if !toggled.Toggle().IsDark {
		t.Error("Toggle twice should return to dark")
	}
}

func TestGlamourStyle(t *testing.T) {
	if got := NewTheme("dark").GlamourStyle(); got != "dark" {
		t.Errorf("GlamourStyle(dark) = %q", got)
	}
	if got := NewTheme("light").GlamourStyle(); got != "light" {
		t.Errorf("GlamourStyle(light) = %q", got)
	}
}
