// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/chatbox-tui/internal/model"
)

// chromeHeight is the number of terminal rows used by everything that is not
// the transcript: header, input container, status bar, footer.
const chromeHeight = 8

// =============================================================================
// VIEW
// =============================================================================

// View renders the widget.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	sections := []string{
		m.headerView(),
		m.viewport.View(),
		m.inputView(),
		m.statusView(),
		m.footerView(),
	}
	return strings.Join(sections, "\n")
}

// headerView renders the title bar.
func (m Model) headerView() string {
	title := "Chatbox"
	mode := strings.ToUpper(m.theme.Mode)
	label := fmt.Sprintf("%s  ·  %s", title, mode)
	label = runewidth.Truncate(label, m.width-4, "…")
	return m.theme.Header.Width(m.width).Render(label)
}

// =============================================================================
// TRANSCRIPT PANE
// =============================================================================

// styleViewport sizes the transcript pane within the window.
func styleViewport(vp viewport.Model, width, height int) viewport.Model {
	paneHeight := height - chromeHeight
	if paneHeight < 3 {
		paneHeight = 3
	}
	vp.Width = width
	vp.Height = paneHeight
	return vp
}

// updateViewport rebuilds the transcript pane content and pins it to the
// bottom so the newest message stays visible.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, msg := range m.transcript.Messages() {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	if m.typing != nil {
		b.WriteString(m.renderTyping())
		b.WriteString("\n")
	}
	if m.loading {
		b.WriteString(m.theme.SenderTag.Render("Bot") + " " + m.spinner.View())
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// renderMessage renders one transcript entry as a bubble. User messages hug
// the right edge; bot messages hug the left and flow through the markdown
// renderer.
func (m Model) renderMessage(msg model.Message) string {
	if msg.Sender == model.SenderUser {
		text := msg.Text
		if msg.Edited {
			text += " " + m.theme.EditedTag.Render("(edited)")
		}
		bubble := m.theme.UserBubble.Render(text)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
	}

	bubble := m.theme.BotBubble.Render(m.renderMarkdown(msg.Text))
	return bubble
}

// renderTyping renders the partially revealed bot message with a cursor.
func (m Model) renderTyping() string {
	partial := m.typing.partial()
	cursor := m.theme.TypingCursor.Render("|")
	return m.theme.TypingBubble.Render(partial + cursor)
}

// renderMarkdown formats bot text as markdown, falling back to the raw text
// when the renderer is unavailable or chokes.
func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// =============================================================================
// INPUT AREA
// =============================================================================

// inputView renders either the edit overlay or the normal input row.
func (m Model) inputView() string {
	if m.editing() {
		return m.editView()
	}

	input := m.input
	input.Placeholder = m.placeholder()

	row := input.View()
	count := m.charCountView()
	gap := m.width - lipgloss.Width(row) - lipgloss.Width(count) - 2
	if gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	row += count

	lines := []string{row}
	if m.inputError != "" {
		lines = append(lines, m.theme.InputError.Render(m.inputError))
	}
	if m.notice != "" {
		lines = append(lines, m.theme.InputError.Render(m.notice))
	}
	if m.listening {
		lines = append(lines, m.spinner.View()+" Listening...")
	}
	return m.theme.InputContainer.Width(m.width).Render(strings.Join(lines, "\n"))
}

// placeholder picks the input hint for the current state. The cool-down
// countdown wins over everything else.
func (m Model) placeholder() string {
	switch {
	case m.cooldownLeft > 0:
		return fmt.Sprintf("Please wait %ds...", m.cooldownLeft)
	case m.typing != nil || m.loading:
		return "Bot is typing..."
	default:
		return "Type your message..."
	}
}

// charCountView renders the running character counter, escalating color as
// the limit approaches and passes.
func (m Model) charCountView() string {
	n := len(m.input.Value())
	text := fmt.Sprintf("%d/%d", n, model.MaxMessageLen)
	switch {
	case n > model.MaxMessageLen:
		return m.theme.CharCountDanger.Render(text)
	case n > model.MaxMessageLen-100:
		return m.theme.CharCountWarning.Render(text)
	default:
		return m.theme.CharCount.Render(text)
	}
}

// editView renders the edit overlay.
func (m Model) editView() string {
	lines := []string{
		m.theme.EditTitle.Render("Editing message"),
		m.editInput.View(),
		m.theme.EditHint.Render("enter save · esc cancel"),
	}
	if m.inputError != "" {
		lines = append(lines, m.theme.InputError.Render(m.inputError))
	}
	return m.theme.EditBox.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// =============================================================================
// STATUS + FOOTER
// =============================================================================

// statusView renders the shortcut bar. The voice shortcut only appears when
// the recognizer executable exists.
func (m Model) statusView() string {
	shortcuts := []string{
		m.shortcut("enter", "send"),
		m.shortcut("ctrl+e", "edit last"),
		m.shortcut("ctrl+t", "theme"),
	}
	if m.dictationAvailable() {
		shortcuts = append(shortcuts, m.shortcut("ctrl+g", "voice"))
	}
	shortcuts = append(shortcuts, m.shortcut("ctrl+c", "quit"))
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(shortcuts, "  "))
}

func (m Model) shortcut(keyLabel, desc string) string {
	return m.theme.ShortcutKey.Render(keyLabel) + " " + m.theme.ShortcutDesc.Render(desc)
}

func (m Model) footerView() string {
	return m.theme.Footer.Width(m.width).Render("Replies are generated automatically and may be inaccurate.")
}
