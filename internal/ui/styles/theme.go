// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatbox TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application. A Theme is
// built for one mode ("light" or "dark") and rebuilt on toggle.
type Theme struct {
	Mode         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	EditedTag  lipgloss.Style
	SenderTag  lipgloss.Style

	// ==========================================================================
	// TYPING INDICATOR STYLES
	// ==========================================================================

	TypingBubble lipgloss.Style
	TypingCursor lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputError       lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// ==========================================================================
	// EDIT MODE STYLES
	// ==========================================================================

	EditBox   lipgloss.Style
	EditTitle lipgloss.Style
	EditHint  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	Footer       lipgloss.Style

	// ==========================================================================
	// RECOVERY VIEW STYLES
	// ==========================================================================

	RecoveryBox     lipgloss.Style
	RecoveryTitle   lipgloss.Style
	RecoveryMessage lipgloss.Style
}

// NewTheme creates a theme for the given mode ("light" or "dark"; anything
// else is dark).
func NewTheme(mode string) *Theme {
	isDark := mode != "light"
	palette := DarkPalette()
	if !isDark {
		palette = LightPalette()
		mode = "light"
	} else {
		mode = "dark"
	}

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles(palette)
	return t
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles(p Palette) {
	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(p.BotBubbleFg).
		Background(p.BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.EditedTag = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.SenderTag = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Bold(true)

	// Typing indicator
	t.TypingBubble = t.BotBubble
	t.TypingCursor = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.InputError = lipgloss.NewStyle().
		Foreground(p.Rose)

	t.CharCount = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Align(lipgloss.Right)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(p.Amber).
		Align(lipgloss.Right)

	t.CharCountDanger = lipgloss.NewStyle().
		Foreground(p.Rose).
		Align(lipgloss.Right)

	// Edit mode
	t.EditBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Amber).
		Padding(0, 1)

	t.EditTitle = lipgloss.NewStyle().
		Foreground(p.Amber).
		Bold(true)

	t.EditHint = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.Footer = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Recovery view
	t.RecoveryBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.Rose).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.RecoveryTitle = lipgloss.NewStyle().
		Foreground(p.Rose).
		Bold(true)

	t.RecoveryMessage = lipgloss.NewStyle().
		Foreground(p.TextPrimary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Toggle returns the opposite theme.
func (t *Theme) Toggle() *Theme {
	if t.IsDark {
		return NewTheme("light")
	}
	return NewTheme("dark")
}

// GlamourStyle returns the glamour standard style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
