// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatbox TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the color set for one theme mode.
type Palette struct {
	// Chrome
	Surface    lipgloss.Color
	SurfaceDim lipgloss.Color
	Overlay    lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Accents
	Accent  lipgloss.Color
	Emerald lipgloss.Color
	Amber   lipgloss.Color
	Rose    lipgloss.Color

	// Message bubbles
	UserBubbleBg     lipgloss.Color
	UserBubbleFg     lipgloss.Color
	UserBubbleBorder lipgloss.Color
	BotBubbleBg      lipgloss.Color
	BotBubbleFg      lipgloss.Color
	BotBubbleBorder  lipgloss.Color
}

// DarkPalette is the default palette.
func DarkPalette() Palette {
	return Palette{
		Surface:    lipgloss.Color("#1e1e2e"),
		SurfaceDim: lipgloss.Color("#181825"),
		Overlay:    lipgloss.Color("#45475a"),

		TextPrimary:   lipgloss.Color("#cdd6f4"),
		TextSecondary: lipgloss.Color("#a6adc8"),
		TextMuted:     lipgloss.Color("#6c7086"),
		TextInverse:   lipgloss.Color("#11111b"),

		Accent:  lipgloss.Color("#89b4fa"),
		Emerald: lipgloss.Color("#a6e3a1"),
		Amber:   lipgloss.Color("#f9e2af"),
		Rose:    lipgloss.Color("#f38ba8"),

		UserBubbleBg:     lipgloss.Color("#313244"),
		UserBubbleFg:     lipgloss.Color("#cdd6f4"),
		UserBubbleBorder: lipgloss.Color("#89b4fa"),
		BotBubbleBg:      lipgloss.Color("#181825"),
		BotBubbleFg:      lipgloss.Color("#cdd6f4"),
		BotBubbleBorder:  lipgloss.Color("#45475a"),
	}
}

// LightPalette mirrors the dark palette for light terminals.
func LightPalette() Palette {
	return Palette{
		Surface:    lipgloss.Color("#eff1f5"),
		SurfaceDim: lipgloss.Color("#e6e9ef"),
		Overlay:    lipgloss.Color("#9ca0b0"),

		TextPrimary:   lipgloss.Color("#4c4f69"),
		TextSecondary: lipgloss.Color("#5c5f77"),
		TextMuted:     lipgloss.Color("#8c8fa1"),
		TextInverse:   lipgloss.Color("#eff1f5"),

		Accent:  lipgloss.Color("#1e66f5"),
		Emerald: lipgloss.Color("#40a02b"),
		Amber:   lipgloss.Color("#df8e1d"),
		Rose:    lipgloss.Color("#d20f39"),

		UserBubbleBg:     lipgloss.Color("#dce0e8"),
		UserBubbleFg:     lipgloss.Color("#4c4f69"),
		UserBubbleBorder: lipgloss.Color("#1e66f5"),
		BotBubbleBg:      lipgloss.Color("#e6e9ef"),
		BotBubbleFg:      lipgloss.Color("#4c4f69"),
		BotBubbleBorder:  lipgloss.Color("#9ca0b0"),
	}
}
