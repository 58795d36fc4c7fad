// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the chat widget: a single-pane conversation with a
// typing animation, in-place editing of the last user message, a rate-limit
// cool-down, and optional voice input. All state lives in one Model and is
// mutated only inside Update, so there is never more than one animation or
// one in-flight request at a time.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/chatbox-tui/internal/chatapi"
	"github.com/jeranaias/chatbox-tui/internal/config"
	"github.com/jeranaias/chatbox-tui/internal/dictation"
	"github.com/jeranaias/chatbox-tui/internal/model"
	"github.com/jeranaias/chatbox-tui/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// greetingText is the opening bot message. It is synthesized locally and
	// never sent to the backend.
	greetingText = "Hi! How can I help you today?"

	// rateLimitText is shown when the endpoint returns HTTP 429.
	rateLimitText = "Too many requests. Please wait 15 seconds before sending another message."

	// serverErrorFormat is shown for non-429 error statuses.
	serverErrorFormat = "Server error (%d). Please try again later."

	// networkErrorText is shown when the request never completed.
	networkErrorText = "Network error. Please check your connection and try again."

	// cooldownSeconds is the client-side pause after a rate-limit response.
	cooldownSeconds = 15

	// inputCharLimit caps the raw input buffer. Larger than the outgoing
	// message limit so over-length input can be typed and flagged.
	inputCharLimit = 4096
)

// State describes what the widget is currently doing. Derived from the
// model's fields; the cool-down takes precedence once any animation ends.
type State int

const (
	StateIdle State = iota
	StateAwaiting
	StateTyping
	StateCoolingDown
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat widget state.
type Model struct {
	theme      *styles.Theme
	cfg        *config.Config
	client     *chatapi.Client
	recognizer *dictation.Recognizer

	transcript *model.Transcript
	typing     *typingState

	input     textinput.Model
	editInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	keyMap    KeyMap
	renderer  *glamour.TermRenderer

	// seq is the generation counter. Bumped whenever a new asynchronous
	// command is issued; stale completions and timers carry an older value
	// and are dropped.
	seq int

	// editIndex is the transcript index being edited, or -1.
	editIndex int

	inputError    string
	notice        string
	loading       bool
	listening     bool
	cooldownLeft  int
	width, height int
	ready         bool
}

// New creates the chat widget. The recognizer may be nil when voice input is
// not configured.
func New(theme *styles.Theme, cfg *config.Config, client *chatapi.Client, recognizer *dictation.Recognizer) Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.CharLimit = inputCharLimit
	input.Prompt = "> "
	input.Focus()

	editInput := textinput.New()
	editInput.CharLimit = inputCharLimit
	editInput.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		theme:      theme,
		cfg:        cfg,
		client:     client,
		recognizer: recognizer,
		transcript: model.NewTranscript(),
		viewport:   viewport.New(0, 0),
		input:      input,
		editInput:  editInput,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
		seq:        1,
		editIndex:  -1,
	}

	// The greeting plays through the same reveal path as a real reply.
	m.typing = newTypingState(greetingText, m.seq)
	return m
}

// Init starts the cursor blink and the greeting animation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, typeTickCmd(m.seq))
}

// State reports the widget's current activity.
func (m Model) State() State {
	switch {
	case m.typing != nil:
		return StateTyping
	case m.loading:
		return StateAwaiting
	case m.cooldownLeft > 0:
		return StateCoolingDown
	default:
		return StateIdle
	}
}

// Transcript exposes the conversation for tests and the line-mode bridge.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

// inputBusy reports whether the input field should reject text entry.
// Matches the widget contract: no sends while a reply is pending, a reveal
// is running, or the cool-down is counting.
func (m Model) inputBusy() bool {
	return m.loading || m.typing != nil || m.cooldownLeft > 0
}

// editing reports whether the edit overlay is active.
func (m Model) editing() bool {
	return m.editIndex >= 0
}

// dictationAvailable reports whether the microphone shortcut is offered at
// all. Hidden, not disabled, when the capability is missing.
func (m Model) dictationAvailable() bool {
	return m.recognizer != nil && m.recognizer.Available()
}

// nextSeq advances the generation counter and returns the new value.
func (m *Model) nextSeq() int {
	m.seq++
	return m.seq
}

// startTyping begins revealing text under a fresh generation and returns the
// first tick. Any previous animation is implicitly orphaned: its timers carry
// the old generation and will be ignored.
func (m *Model) startTyping(text string) tea.Cmd {
	m.typing = newTypingState(text, m.nextSeq())
	return typeTickCmd(m.seq)
}

// rebuildRenderer recreates the markdown renderer for the current theme and
// width. A nil renderer falls back to plain text in the view.
func (m *Model) rebuildRenderer() {
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = renderer
}
