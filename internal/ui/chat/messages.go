// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// MESSAGE TYPES (Bubble Tea)
// =============================================================================
// Every asynchronous outcome carries the generation counter that was current
// when its command was issued. Updates compare it against the model's counter
// and drop anything stale, so a reset or an abandoned request can never mutate
// the transcript after the fact.

// ReplyMsg delivers a successful completion from the chat endpoint.
type ReplyMsg struct {
	Seq  int
	Text string
}

// RateLimitedMsg indicates the endpoint rejected the request with HTTP 429.
type RateLimitedMsg struct {
	Seq int
}

// ServerErrorMsg indicates a non-429 error status from the endpoint.
type ServerErrorMsg struct {
	Seq    int
	Status int
}

// NetworkErrorMsg indicates the request never produced a usable response:
// connection failure, timeout, or an unparseable body.
type NetworkErrorMsg struct {
	Seq int
	Err error
}

// TypeTickMsg advances the character-by-character reveal of a bot message.
type TypeTickMsg struct {
	Seq int
}

// CountdownTickMsg decrements the rate-limit cool-down once per second.
type CountdownTickMsg struct{}

// DictationResultMsg delivers the outcome of a voice recognition pass.
type DictationResultMsg struct {
	Transcript string
	Err        error
}

// ThemeChangedMsg arrives when the config file on disk changes the theme
// out from under the running program.
type ThemeChangedMsg struct {
	Mode string
}

// NewReplyMsg creates a reply message.
func NewReplyMsg(seq int, text string) ReplyMsg {
	return ReplyMsg{Seq: seq, Text: text}
}

// NewServerErrorMsg creates a server error message.
func NewServerErrorMsg(seq, status int) ServerErrorMsg {
	return ServerErrorMsg{Seq: seq, Status: status}
}
