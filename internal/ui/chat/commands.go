// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatbox-tui/internal/chatapi"
	"github.com/jeranaias/chatbox-tui/internal/dictation"
	"github.com/jeranaias/chatbox-tui/internal/model"
)

// =============================================================================
// COMMANDS
// =============================================================================

// dictationTimeout bounds one voice recognition pass.
const dictationTimeout = 30 * time.Second

// sendCmd posts the wire transcript to the chat endpoint and maps the outcome
// onto exactly one of the four completion messages.
func sendCmd(client *chatapi.Client, messages []model.WireMessage, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatapi.DefaultTimeout)
		defer cancel()

		reply, err := client.Complete(ctx, messages)
		if err == nil {
			return ReplyMsg{Seq: seq, Text: reply}
		}
		if errors.Is(err, chatapi.ErrRateLimited) {
			return RateLimitedMsg{Seq: seq}
		}
		var statusErr *chatapi.StatusError
		if errors.As(err, &statusErr) {
			return ServerErrorMsg{Seq: seq, Status: statusErr.Code}
		}
		return NetworkErrorMsg{Seq: seq, Err: err}
	}
}

// countdownTickCmd schedules the next one-second cool-down tick.
func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{}
	})
}

// listenCmd runs one recognition pass and delivers its transcript or error.
func listenCmd(recognizer *dictation.Recognizer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dictationTimeout)
		defer cancel()

		transcript, err := recognizer.Listen(ctx)
		return DictationResultMsg{Transcript: transcript, Err: err}
	}
}
