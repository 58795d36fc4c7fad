// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linemode is the plain line-oriented fallback for terminals where
// the full-screen widget is unwanted. It shares the transcript rules and the
// endpoint contract with the widget but renders nothing fancier than lines.
package linemode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/chatbox-tui/internal/chatapi"
	"github.com/jeranaias/chatbox-tui/internal/model"
)

// =============================================================================
// LITERALS
// =============================================================================

const (
	greetingText      = "Hi! How can I help you today?"
	rateLimitText     = "Too many requests. Please wait 15 seconds before sending another message."
	serverErrorFormat = "Server error (%d). Please try again later."
	networkErrorText  = "Network error. Please check your connection and try again."

	cooldown = 15 * time.Second
)

// =============================================================================
// SESSION
// =============================================================================

// Session is one line-mode conversation.
type Session struct {
	client     *chatapi.Client
	transcript *model.Transcript
	out        io.Writer

	// nextAllowed gates sends after a rate-limit response.
	nextAllowed time.Time
	now         func() time.Time
}

// NewSession creates a line-mode session writing output to out.
func NewSession(client *chatapi.Client, out io.Writer) *Session {
	return &Session{
		client:     client,
		transcript: model.NewTranscript(),
		out:        out,
		now:        time.Now,
	}
}

// Transcript exposes the conversation for tests.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// Submit validates one line of input, posts the transcript, and returns the
// bot's line. Validation and cool-down failures return the user-visible text
// without touching the network.
func (s *Session) Submit(ctx context.Context, text string) (string, error) {
	if err := model.ValidateOutgoing(text); err != nil {
		return "", err
	}

	if remaining := s.nextAllowed.Sub(s.now()); remaining > 0 {
		secs := int(remaining.Round(time.Second).Seconds())
		return fmt.Sprintf("Please wait %ds before sending another message.", secs), nil
	}

	s.transcript.AppendUser(text)
	return s.complete(ctx)
}

// EditLast replaces the most recent user message, discards everything after
// it, and regenerates. Unchanged text is a no-op returning the empty string.
func (s *Session) EditLast(ctx context.Context, text string) (string, error) {
	if err := model.ValidateOutgoing(text); err != nil {
		return "", err
	}

	msgs := s.transcript.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Sender != model.SenderUser {
			continue
		}
		if !s.transcript.EditUser(i, text) {
			return "", nil
		}
		return s.complete(ctx)
	}
	return "", errors.New("no user message to edit")
}

// complete posts the wire transcript and folds every outcome into one bot
// line, appended to the transcript with the usual duplicate guard.
func (s *Session) complete(ctx context.Context) (string, error) {
	reply, err := s.client.Complete(ctx, s.transcript.ToWire())
	switch {
	case err == nil:
		// keep reply as is
	case errors.Is(err, chatapi.ErrRateLimited):
		s.nextAllowed = s.now().Add(cooldown)
		reply = rateLimitText
	default:
		var statusErr *chatapi.StatusError
		if errors.As(err, &statusErr) {
			reply = fmt.Sprintf(serverErrorFormat, statusErr.Code)
		} else {
			reply = networkErrorText
		}
	}

	s.transcript.AppendBot(reply)
	return reply, nil
}

// =============================================================================
// REPL
// =============================================================================

// Run drives the interactive prompt until EOF, ctrl+c, or /quit. Lines
// beginning with /edit replace the last user message.
func (s *Session) Run(ctx context.Context) error {
	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)

	fmt.Fprintf(s.out, "bot> %s\n", greetingText)
	s.transcript.AppendBot(greetingText)

	for {
		line, err := prompt.Prompt("you> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "/quit":
			return nil
		case strings.HasPrefix(line, "/edit "):
			s.respond(ctx, prompt, line, func() (string, error) {
				return s.EditLast(ctx, strings.TrimPrefix(line, "/edit "))
			})
		default:
			s.respond(ctx, prompt, line, func() (string, error) {
				return s.Submit(ctx, line)
			})
		}
	}
}

// respond runs one exchange and prints its outcome.
func (s *Session) respond(ctx context.Context, prompt *liner.State, line string, exchange func() (string, error)) {
	reply, err := exchange()
	switch {
	case errors.Is(err, model.ErrEmptyMessage):
		return // blank lines are dropped silently
	case errors.Is(err, model.ErrMessageTooLong):
		fmt.Fprintln(s.out, "Message is too long (max 1000 characters).")
		return
	case err != nil:
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	prompt.AppendHistory(line)
	if reply != "" {
		fmt.Fprintf(s.out, "bot> %s\n", reply)
	}
}
