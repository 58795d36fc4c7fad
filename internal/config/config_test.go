// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTheme(t *testing.T) {
	cfg := Default()
	if cfg.Theme() != ThemeDark {
		t.Errorf("default theme = %q, want %q", cfg.Theme(), ThemeDark)
	}
}

func TestNormalizeInvalidTheme(t *testing.T) {
	tests := []string{"", "blue", "DARK", "Light"}
	for _, theme := range tests {
		cfg := Default()
		cfg.UI.Theme = theme
		cfg.normalize()
		if cfg.Theme() != ThemeDark {
			t.Errorf("theme %q should normalize to dark, got %q", theme, cfg.Theme())
		}
	}
}

func TestSetTheme(t *testing.T) {
	cfg := Default()
	cfg.SetTheme(ThemeLight)
	if cfg.Theme() != ThemeLight {
		t.Errorf("SetTheme(light) not applied")
	}
	cfg.SetTheme("nonsense")
	if cfg.Theme() != ThemeDark {
		t.Errorf("SetTheme(invalid) should fall back to dark")
	}
}

func TestEndpointSelection(t *testing.T) {
	cfg := Default()
	cfg.Chat.EndpointURL = "http://backend/api/chat"
	cfg.Chat.ProxyURL = "http://proxy/"

	cfg.Chat.Mode = ModeDevelopment
	if got := cfg.Endpoint(); got != "http://backend/api/chat" {
		t.Errorf("development endpoint = %q", got)
	}

	cfg.Chat.Mode = ModeProduction
	if got := cfg.Endpoint(); got != "http://proxy/" {
		t.Errorf("production endpoint = %q", got)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom(missing) error: %v", err)
	}
	if cfg.Theme() != ThemeDark {
		t.Errorf("missing file should yield default theme")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.SetTheme(ThemeLight)
	cfg.Chat.Mode = ModeProduction
	cfg.Chat.ProxyURL = "http://example.com/chat"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Theme() != ThemeLight {
		t.Errorf("theme not persisted: %q", loaded.Theme())
	}
	if loaded.Chat.Mode != ModeProduction || loaded.Endpoint() != "http://example.com/chat" {
		t.Errorf("chat config not persisted: %+v", loaded.Chat)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHAT_HOST_URL", "http://env-backend/chat")
	t.Setenv("CHATBOX_MODE", ModeDevelopment)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got := cfg.Endpoint(); got != "http://env-backend/chat" {
		t.Errorf("CHAT_HOST_URL override not applied, got %q", got)
	}
}

func TestLoadFromRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom should fail on malformed TOML")
	}
}
