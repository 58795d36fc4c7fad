// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRandomTypeIntervalRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := randomTypeInterval()
		if d < 12*time.Millisecond || d >= 30*time.Millisecond {
			t.Fatalf("interval %v outside [12ms, 30ms)", d)
		}
	}
}

func TestTypingStateAdvance(t *testing.T) {
	state := newTypingState("héllo", 1)

	steps := 0
	for !state.advance() {
		steps++
		if steps > 10 {
			t.Fatal("advance never completed")
		}
	}

	// One step per rune, multi-byte runes included.
	if steps+1 != 5 {
		t.Errorf("reveal took %d steps, want 5", steps+1)
	}
	if state.partial() != "héllo" {
		t.Errorf("final partial = %q", state.partial())
	}
}

func TestStaleTypeTickIgnored(t *testing.T) {
	m := newTestModel() // greeting revealing under the current generation

	before := m.typing.revealed
	m, cmd := m.Update(TypeTickMsg{Seq: m.typing.seq + 7})

	if m.typing.revealed != before || cmd != nil {
		t.Error("a tick from a superseded animation must be dropped")
	}
}

func TestNewAnimationOrphansOldTimers(t *testing.T) {
	m := readyModel(t)
	m.input.SetValue("hello")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(ReplyMsg{Seq: m.seq, Text: "fresh reply"})

	// A timer from the greeting's generation fires late.
	m, _ = m.Update(TypeTickMsg{Seq: 1})

	if m.typing == nil || m.typing.text() != "fresh reply" {
		t.Fatal("the current animation must survive stale timers")
	}
	if m.typing.revealed != 0 {
		t.Error("stale timers must not advance the current animation")
	}
}
