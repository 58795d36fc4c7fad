// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// TYPING ANIMATION
// =============================================================================
// Bot replies are revealed one rune at a time. Each tick appends a rune and
// schedules the next tick at a fresh random interval, so the cadence wobbles
// the way human typing does. At most one animation runs at a time; the
// generation counter on the ticks invalidates timers left over from a
// superseded animation.

const (
	// typeIntervalBase is the minimum delay between revealed runes.
	typeIntervalBase = 12 * time.Millisecond

	// typeIntervalJitter bounds the additional random delay, exclusive.
	typeIntervalJitter = 18
)

// typingState tracks an in-flight reveal of one bot message.
type typingState struct {
	target   []rune
	revealed int
	seq      int
}

// newTypingState starts a reveal of text under the given generation.
func newTypingState(text string, seq int) *typingState {
	return &typingState{target: []rune(text), seq: seq}
}

// partial returns the revealed prefix of the target text.
func (t *typingState) partial() string {
	return string(t.target[:t.revealed])
}

// advance reveals one more rune and reports whether the reveal is complete.
func (t *typingState) advance() bool {
	if t.revealed < len(t.target) {
		t.revealed++
	}
	return t.revealed >= len(t.target)
}

// text returns the full target text.
func (t *typingState) text() string {
	return string(t.target)
}

// randomTypeInterval returns a delay in [12ms, 30ms).
func randomTypeInterval() time.Duration {
	return typeIntervalBase + time.Duration(rand.Intn(typeIntervalJitter))*time.Millisecond
}

// typeTickCmd schedules the next animation tick for the given generation.
func typeTickCmd(seq int) tea.Cmd {
	return tea.Tick(randomTypeInterval(), func(time.Time) tea.Msg {
		return TypeTickMsg{Seq: seq}
	})
}
