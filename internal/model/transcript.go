// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import "strings"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered list of messages exchanged in one session.
// Insertion order defines conversation turn order. Alternation is not
// enforced; consecutive same-sender messages are permitted.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0)}
}

// Messages returns the transcript contents in order.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.messages) == 0
}

// Last returns the most recent message and true, or a zero message and false
// when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// At returns the message at index i. The index must be in range.
func (t *Transcript) At(i int) Message {
	return t.messages[i]
}

// =============================================================================
// MUTATION
// =============================================================================

// AppendUser appends a user message and returns it.
func (t *Transcript) AppendUser(text string) Message {
	msg := NewUserMessage(text)
	t.messages = append(t.messages, msg)
	return msg
}

// AppendBot appends a bot message unless the last message is already a bot
// message with identical text. Returns false when the duplicate was dropped.
// This guards against a duplicate completion firing twice.
func (t *Transcript) AppendBot(text string) bool {
	if last, ok := t.Last(); ok && last.Sender == SenderBot && last.Text == text {
		return false
	}
	t.messages = append(t.messages, NewBotMessage(text))
	return true
}

// EditUser replaces the text of the user message at index i and discards every
// message after it. Returns true when the transcript changed. Saving unchanged
// text is a no-op; editing a non-user message is rejected.
func (t *Transcript) EditUser(i int, text string) bool {
	if i < 0 || i >= len(t.messages) {
		return false
	}
	if t.messages[i].Sender != SenderUser {
		return false
	}
	if t.messages[i].Text == text {
		return false
	}
	t.messages[i].Text = text
	t.messages[i].Edited = true
	t.messages = t.messages[:i+1]
	return true
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.messages = t.messages[:0]
}

// =============================================================================
// WIRE MAPPING
// =============================================================================

// WireMessage is a role/content pair in the shape the chat endpoint consumes.
type WireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// angleEscaper rewrites angle brackets to HTML entities. Content is sanitized
// before transmission so raw markup never reaches the backend.
var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// SanitizeText escapes < and > in text.
func SanitizeText(text string) string {
	return angleEscaper.Replace(text)
}

// ToWire maps the transcript to the role/content list sent upstream.
// User messages map to role "user", bot messages to role "assistant".
func (t *Transcript) ToWire() []WireMessage {
	wire := make([]WireMessage, 0, len(t.messages))
	for _, msg := range t.messages {
		wire = append(wire, WireMessage{
			Role:    msg.Sender.Role(),
			Content: SanitizeText(msg.Text),
		})
	}
	return wire
}
