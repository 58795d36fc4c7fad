// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatbox-tui/internal/dictation"
	"github.com/jeranaias/chatbox-tui/internal/model"
	"github.com/jeranaias/chatbox-tui/internal/ui/styles"
)

// User-visible validation texts.
const (
	tooLongError   = "Message is too long (max 1000 characters)."
	emptyEditError = "Message cannot be empty."
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TypeTickMsg:
		return m.handleTypeTick(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case RateLimitedMsg:
		return m.handleRateLimited(msg)

	case ServerErrorMsg:
		return m.handleServerError(msg)

	case NetworkErrorMsg:
		return m.handleNetworkError(msg)

	case CountdownTickMsg:
		return m.handleCountdownTick()

	case DictationResultMsg:
		return m.handleDictationResult(msg)

	case ThemeChangedMsg:
		return m.handleThemeChanged(msg)

	case spinner.TickMsg:
		if !m.loading && !m.listening {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Everything else (cursor blink and friends) flows to the focused input.
	var cmd tea.Cmd
	if m.editing() {
		m.editInput, cmd = m.editInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// WINDOW + KEYS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(msg.Width, msg.Height)
	m.input.Width = msg.Width - 6
	m.editInput.Width = msg.Width - 10

	m.viewport = styleViewport(m.viewport, msg.Width, msg.Height)
	m.rebuildRenderer()
	m.updateViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	if m.editing() {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keyMap.EditLast):
		if m.inputBusy() || m.listening {
			return m, nil
		}
		m.beginEditLast()
		return m, nil

	case key.Matches(msg, m.keyMap.Dictate):
		if !m.dictationAvailable() || m.listening || m.inputBusy() {
			return m, nil
		}
		m.listening = true
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, listenCmd(m.recognizer))

	case key.Matches(msg, m.keyMap.ScrollUp), key.Matches(msg, m.keyMap.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keyMap.Send):
		return m.submit()
	}

	// Plain text entry. Rejected entirely while a reply, animation, or
	// cool-down is in progress.
	if m.inputBusy() || m.listening {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.validateLive()
	return m, cmd
}

// handleEditKey routes keys while the edit overlay is active.
func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.CancelEdit):
		m.cancelEdit()
		return m, nil

	case key.Matches(msg, m.keyMap.Send):
		return m.saveEdit()
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if len(m.editInput.Value()) > model.MaxMessageLen {
		m.inputError = tooLongError
	} else {
		m.inputError = ""
	}
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit validates the input field and posts the transcript. Blank input is
// dropped silently; over-length input surfaces an inline error. Exactly one
// user entry is appended per accepted submission.
func (m Model) submit() (Model, tea.Cmd) {
	if m.inputBusy() || m.listening {
		return m, nil
	}

	raw := m.input.Value()
	if err := model.ValidateOutgoing(raw); err != nil {
		if err == model.ErrMessageTooLong {
			m.inputError = tooLongError
		}
		return m, nil
	}

	m.inputError = ""
	m.notice = ""
	m.transcript.AppendUser(raw)
	m.input.SetValue("")
	m.loading = true
	m.updateViewport()

	seq := m.nextSeq()
	return m, tea.Batch(m.spinner.Tick, sendCmd(m.client, m.transcript.ToWire(), seq))
}

// =============================================================================
// EDIT FLOW
// =============================================================================

// beginEditLast opens the edit overlay on the most recent user message.
func (m *Model) beginEditLast() {
	msgs := m.transcript.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Sender == model.SenderUser {
			m.editIndex = i
			m.editInput.SetValue(msgs[i].Text)
			m.editInput.CursorEnd()
			m.editInput.Focus()
			m.input.Blur()
			m.inputError = ""
			return
		}
	}
}

// cancelEdit discards the overlay without touching the transcript.
func (m *Model) cancelEdit() {
	m.editIndex = -1
	m.editInput.SetValue("")
	m.editInput.Blur()
	m.inputError = ""
	m.input.Focus()
}

// saveEdit applies the edited text. Unchanged text is a pure no-op. A changed
// save replaces the message, discards everything after it, and fires exactly
// one regeneration request.
func (m Model) saveEdit() (Model, tea.Cmd) {
	text := m.editInput.Value()
	if len(text) > model.MaxMessageLen {
		m.inputError = tooLongError
		return m, nil
	}
	if err := model.ValidateOutgoing(text); err != nil {
		m.inputError = emptyEditError
		return m, nil
	}

	index := m.editIndex
	changed := m.transcript.EditUser(index, text)
	m.cancelEdit()
	m.updateViewport()

	if !changed {
		return m, nil
	}

	m.loading = true
	seq := m.nextSeq()
	return m, tea.Batch(m.spinner.Tick, sendCmd(m.client, m.transcript.ToWire(), seq))
}

// =============================================================================
// COMPLETION OUTCOMES
// =============================================================================

// stale reports whether an asynchronous outcome belongs to an abandoned
// generation.
func (m Model) stale(seq int) bool {
	return seq != m.seq || !m.loading
}

func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	if m.stale(msg.Seq) {
		return m, nil
	}
	m.loading = false
	cmd := m.startTyping(msg.Text)
	m.updateViewport()
	return m, cmd
}

func (m Model) handleRateLimited(msg RateLimitedMsg) (Model, tea.Cmd) {
	if m.stale(msg.Seq) {
		return m, nil
	}
	m.loading = false
	m.cooldownLeft = cooldownSeconds
	cmd := m.startTyping(rateLimitText)
	m.updateViewport()
	return m, tea.Batch(cmd, countdownTickCmd())
}

func (m Model) handleServerError(msg ServerErrorMsg) (Model, tea.Cmd) {
	if m.stale(msg.Seq) {
		return m, nil
	}
	m.loading = false
	m.transcript.AppendBot(fmt.Sprintf(serverErrorFormat, msg.Status))
	m.updateViewport()
	return m, nil
}

func (m Model) handleNetworkError(msg NetworkErrorMsg) (Model, tea.Cmd) {
	if m.stale(msg.Seq) {
		return m, nil
	}
	m.loading = false
	m.transcript.AppendBot(networkErrorText)
	m.updateViewport()
	return m, nil
}

// =============================================================================
// TIMERS
// =============================================================================

func (m Model) handleTypeTick(msg TypeTickMsg) (Model, tea.Cmd) {
	// A tick from a superseded animation is dropped on the floor.
	if m.typing == nil || msg.Seq != m.typing.seq {
		return m, nil
	}

	done := m.typing.advance()
	if done {
		m.transcript.AppendBot(m.typing.text())
		m.typing = nil
		m.updateViewport()
		return m, nil
	}

	m.updateViewport()
	return m, typeTickCmd(msg.Seq)
}

func (m Model) handleCountdownTick() (Model, tea.Cmd) {
	if m.cooldownLeft <= 0 {
		return m, nil
	}
	m.cooldownLeft--
	if m.cooldownLeft > 0 {
		return m, countdownTickCmd()
	}
	return m, nil
}

// =============================================================================
// DICTATION + THEME
// =============================================================================

func (m Model) handleDictationResult(msg DictationResultMsg) (Model, tea.Cmd) {
	m.listening = false
	if msg.Err != nil {
		m.notice = dictation.MessageFor(msg.Err)
		return m, nil
	}

	// A successful pass replaces the entire input field.
	m.notice = ""
	m.input.SetValue(msg.Transcript)
	m.input.CursorEnd()
	m.validateLive()
	return m, nil
}

func (m Model) handleThemeChanged(msg ThemeChangedMsg) (Model, tea.Cmd) {
	if msg.Mode == m.theme.Mode {
		return m, nil
	}
	m.applyTheme(styles.NewTheme(msg.Mode))
	return m, nil
}

// toggleTheme flips the theme and persists the choice immediately.
func (m *Model) toggleTheme() {
	m.applyTheme(m.theme.Toggle())
	m.cfg.SetTheme(m.theme.Mode)
	if err := m.cfg.Save(); err != nil {
		m.notice = "Could not save theme preference."
	}
}

// applyTheme installs a theme and restyles everything derived from it.
func (m *Model) applyTheme(theme *styles.Theme) {
	theme.SetSize(m.width, m.height)
	m.theme = theme
	m.spinner.Style = theme.Spinner
	m.rebuildRenderer()
	m.updateViewport()
}

// validateLive flags over-length input on every keystroke. Emptiness is only
// checked at submission.
func (m *Model) validateLive() {
	if len(m.input.Value()) > model.MaxMessageLen {
		m.inputError = tooLongError
	} else {
		m.inputError = ""
	}
}
