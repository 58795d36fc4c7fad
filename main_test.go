// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatbox-tui/internal/chatapi"
	"github.com/jeranaias/chatbox-tui/internal/config"
	"github.com/jeranaias/chatbox-tui/internal/ui/styles"
)

func newTestApp() appModel {
	return newApp(styles.NewTheme("dark"), config.Default(), chatapi.New("http://127.0.0.1:1"), nil)
}

func TestCrashStateTripAndClear(t *testing.T) {
	c := &crashState{}
	if c.tripped() {
		t.Fatal("fresh crash state must not be tripped")
	}

	c.trip("boom")
	if !c.tripped() {
		t.Fatal("trip must flag the state")
	}

	c.clear()
	if c.tripped() {
		t.Fatal("clear must reset the state")
	}
}

func TestRecoveryScreenAfterCrash(t *testing.T) {
	a := newTestApp()
	a.crash.trip("induced failure")

	view := a.View()
	if !strings.Contains(view, "Something went wrong.") {
		t.Errorf("recovery view missing headline:\n%s", view)
	}
	if !strings.Contains(view, "induced failure") {
		t.Error("recovery view should include the crash detail")
	}
}

func TestRecoveryReloadRebuildsWidget(t *testing.T) {
	a := newTestApp()
	a.crash.trip("induced failure")

	next, cmd := a.handleCrashKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	app := next.(appModel)
	if app.crash.tripped() {
		t.Error("reload must clear the crash state")
	}
	if cmd == nil {
		t.Error("reload must re-init the widget")
	}
}

func TestRecoveryQuit(t *testing.T) {
	a := newTestApp()
	a.crash.trip("induced failure")

	_, cmd := a.handleCrashKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q on the recovery screen must quit")
	}
}

func TestCenterBlock(t *testing.T) {
	got := centerBlock("ab\ncd", 10)
	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "    ") {
			t.Errorf("line %q not centered", line)
		}
	}

	// Narrow terminals leave the block untouched.
	if got := centerBlock("abcdef", 4); got != "abcdef" {
		t.Errorf("narrow centerBlock = %q", got)
	}
}
