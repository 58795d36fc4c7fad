// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages chatbox configuration.
//
// TOML configuration with sensible defaults, loaded from:
//   - ~/.chatbox/config.toml
//
// Environment overrides:
//   - CHAT_HOST_URL      direct backend endpoint (development)
//   - CHATBOX_PROXY_URL  proxy endpoint (production)
//   - CHATBOX_MODE       "development" or "production"
//
// The UI theme preference lives here too; it is the persisted state of the
// application (a single "light"/"dark" key) and survives across sessions.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/chatbox-tui/internal/util"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Mode selects which endpoint the widget talks to.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Theme preference values. Anything else is treated as ThemeDark.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the root configuration.
type Config struct {
	Version string `toml:"version"`

	Chat      ChatConfig      `toml:"chat"`
	UI        UIConfig        `toml:"ui"`
	Dictation DictationConfig `toml:"dictation"`
}

// ChatConfig selects the chat endpoint.
type ChatConfig struct {
	// EndpointURL is the backend chat host, used directly in development.
	EndpointURL string `toml:"endpoint_url"`

	// ProxyURL is the forwarder origin, used in production so the backend
	// address is never exposed to the client.
	ProxyURL string `toml:"proxy_url"`

	// Mode is "development" (direct) or "production" (via proxy).
	Mode string `toml:"mode"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	// Theme is "light" or "dark". Invalid or absent values fall back to dark.
	Theme string `toml:"theme"`
}

// DictationConfig configures the optional speech-recognition capability.
type DictationConfig struct {
	// Command is the external recognizer executable. The capability is
	// hidden entirely when the command is absent from PATH.
	Command string `toml:"command"`

	// Locale is the fixed recognition locale.
	Locale string `toml:"locale"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Chat: ChatConfig{
			EndpointURL: "http://localhost:3001/api/chat",
			ProxyURL:    "http://localhost:8787/",
			Mode:        ModeDevelopment,
		},
		UI: UIConfig{
			Theme: ThemeDark,
		},
		Dictation: DictationConfig{
			Command: "speech-to-text",
			Locale:  "en-US",
		},
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Dir returns the configuration directory (~/.chatbox).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".chatbox"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration file, applies defaults for missing fields and
// environment overrides on top. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

// applyEnv overlays environment variables on the config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CHAT_HOST_URL"); v != "" {
		cfg.Chat.EndpointURL = v
	}
	if v := os.Getenv("CHATBOX_PROXY_URL"); v != "" {
		cfg.Chat.ProxyURL = v
	}
	if v := os.Getenv("CHATBOX_MODE"); v != "" {
		cfg.Chat.Mode = v
	}
}

// normalize clamps free-form values to their valid sets.
func (c *Config) normalize() {
	if c.UI.Theme != ThemeLight && c.UI.Theme != ThemeDark {
		c.UI.Theme = ThemeDark
	}
	if c.Chat.Mode != ModeDevelopment && c.Chat.Mode != ModeProduction {
		c.Chat.Mode = ModeDevelopment
	}
}

// Save writes the configuration to the default path, creating the directory
// if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path. The write is atomic
// so the file watcher never observes a half-written config.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o644)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Endpoint returns the URL the widget should POST transcripts to: the proxy
// in production, the backend directly in development.
func (c *Config) Endpoint() string {
	if c.Chat.Mode == ModeProduction {
		return c.Chat.ProxyURL
	}
	return c.Chat.EndpointURL
}

// Theme returns the persisted theme preference, defaulting to dark.
func (c *Config) Theme() string {
	if c.UI.Theme == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme updates the theme preference in memory. Call Save to persist.
func (c *Config) SetTheme(theme string) {
	if theme == ThemeLight {
		c.UI.Theme = ThemeLight
	} else {
		c.UI.Theme = ThemeDark
	}
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide config, or nil when not yet set.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCfg
}

// SetGlobal installs the process-wide config.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// =============================================================================
// FILE WATCHING
// =============================================================================

// Watch re-loads the configuration whenever the file at path changes and
// invokes onChange with the fresh config. Returns a stop function. Errors
// during re-load are swallowed; the previous config stays active.
func Watch(path string, onChange func(*Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors replace the file on save, which would
	// otherwise drop the watch on the old inode.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if cfg, err := LoadFrom(path); err == nil {
					onChange(cfg)
				}
			case <-watcher.Errors:
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
