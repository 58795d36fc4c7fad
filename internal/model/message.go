// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import (
	"errors"
	"sync/atomic"
	"time"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Role maps a sender to the wire role expected by the chat endpoint.
// User messages keep the "user" role; everything else is "assistant".
func (s Sender) Role() string {
	if s == SenderUser {
		return "user"
	}
	return "assistant"
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Bot"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the transcript. Once appended a message is
// immutable except for the Text of a user message, which an edit may replace.
type Message struct {
	ID      int64  `json:"id"`
	Sender  Sender `json:"sender"`
	Text    string `json:"text"`
	Animate bool   `json:"animate"`
	Edited  bool   `json:"edited,omitempty"`
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) Message {
	return Message{
		ID:      nextID(),
		Sender:  SenderUser,
		Text:    text,
		Animate: true,
	}
}

// NewBotMessage creates a new bot message.
func NewBotMessage(text string) Message {
	return Message{
		ID:      nextID(),
		Sender:  SenderBot,
		Text:    text,
		Animate: true,
	}
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// MaxMessageLen is the maximum raw length of an outgoing message.
const MaxMessageLen = 1000

var (
	// ErrEmptyMessage indicates the trimmed input was empty.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong indicates the raw input exceeded MaxMessageLen.
	ErrMessageTooLong = errors.New("message too long (max 1000 characters)")
)

// ValidateOutgoing reports whether text is acceptable as an outgoing message:
// trimmed length greater than zero and raw length at most MaxMessageLen.
func ValidateOutgoing(text string) error {
	if len(text) > MaxMessageLen {
		return ErrMessageTooLong
	}
	if isBlank(text) {
		return ErrEmptyMessage
	}
	return nil
}

// isBlank reports whether text contains only whitespace.
func isBlank(text string) bool {
	for _, r := range text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// =============================================================================
// ID GENERATION
// =============================================================================

// lastID holds the most recently issued message ID.
var lastID atomic.Int64

// nextID returns a time-based, strictly increasing ID. IDs are only used as
// stable render keys, never for ordering logic.
func nextID() int64 {
	for {
		prev := lastID.Load()
		id := time.Now().UnixNano()
		if id <= prev {
			id = prev + 1
		}
		if lastID.CompareAndSwap(prev, id) {
			return id
		}
	}
}
