// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dictation provides optional voice input for the chat widget.
//
// The capability is an external speech-recognition executable on PATH. When
// the executable is absent the feature is hidden entirely; there is no
// fallback dictation. A single non-continuous recognition pass runs in a
// fixed locale and its first transcript replaces the whole input field.
package dictation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrUnavailable indicates no recognizer executable is on PATH.
	ErrUnavailable = errors.New("speech recognition is not available")

	// ErrPermissionDenied indicates microphone access was refused.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrNoSpeech indicates the pass completed without detecting speech.
	ErrNoSpeech = errors.New("no speech detected")
)

// MessageFor maps a recognition error to its user-visible text. The three
// cases each have distinct wording.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Microphone access denied. Please allow microphone access and try again."
	case errors.Is(err, ErrNoSpeech):
		return "No speech detected. Please try again."
	default:
		return "Voice input failed. Please try again."
	}
}

// =============================================================================
// RECOGNIZER
// =============================================================================

// Recognizer runs one-shot speech recognition via an external command.
type Recognizer struct {
	command string
	locale  string
}

// New creates a recognizer for the given command and locale.
func New(command, locale string) *Recognizer {
	return &Recognizer{command: command, locale: locale}
}

// Available reports whether the recognizer executable is on PATH. Callers
// hide the microphone control entirely when this is false.
func (r *Recognizer) Available() bool {
	if r.command == "" {
		return false
	}
	_, err := exec.LookPath(r.command)
	return err == nil
}

// Listen runs a single non-continuous recognition pass and returns the first
// transcript line. The context bounds the pass.
func (r *Recognizer) Listen(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, r.command, "--locale", r.locale, "--once")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isPermissionFailure(stderr.String()) {
			return "", ErrPermissionDenied
		}
		return "", fmt.Errorf("recognition pass: %w", err)
	}

	transcript := firstLine(stdout.String())
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}

// isPermissionFailure classifies recognizer stderr as a microphone
// permission problem.
func isPermissionFailure(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "permission denied") ||
		strings.Contains(s, "not allowed") ||
		strings.Contains(s, "access denied")
}

// firstLine returns the first non-empty trimmed line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
