// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package linemode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatbox-tui/internal/chatapi"
	"github.com/jeranaias/chatbox-tui/internal/model"
)

func replyServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"` + text + `"}}]}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSubmitRoundTrip(t *testing.T) {
	server := replyServer(t, "hi there")
	session := NewSession(chatapi.New(server.URL), &strings.Builder{})

	reply, err := session.Submit(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)

	require.Equal(t, 2, session.Transcript().Len())
	last, _ := session.Transcript().Last()
	assert.Equal(t, model.SenderBot, last.Sender)
}

func TestSubmitValidation(t *testing.T) {
	session := NewSession(chatapi.New("http://127.0.0.1:1"), &strings.Builder{})

	_, err := session.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, model.ErrEmptyMessage)

	_, err = session.Submit(context.Background(), strings.Repeat("a", model.MaxMessageLen+1))
	assert.ErrorIs(t, err, model.ErrMessageTooLong)

	assert.Zero(t, session.Transcript().Len(), "rejected input must not touch the transcript")
}

func TestRateLimitGate(t *testing.T) {
	server := statusServer(t, http.StatusTooManyRequests)
	session := NewSession(chatapi.New(server.URL), &strings.Builder{})

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session.now = func() time.Time { return clock }

	reply, err := session.Submit(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, rateLimitText, reply)

	// Still inside the cool-down: blocked locally, nothing sent.
	before := session.Transcript().Len()
	reply, err = session.Submit(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, "Please wait 15s before sending another message.", reply)
	assert.Equal(t, before, session.Transcript().Len())

	// Past the cool-down the gate opens.
	clock = clock.Add(cooldown + time.Second)
	_, err = session.Submit(context.Background(), "again")
	require.NoError(t, err)
	assert.Greater(t, session.Transcript().Len(), before)
}

func TestServerAndNetworkErrorLines(t *testing.T) {
	server := statusServer(t, http.StatusBadGateway)
	session := NewSession(chatapi.New(server.URL), &strings.Builder{})

	reply, err := session.Submit(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Server error (502). Please try again later.", reply)

	dead := NewSession(chatapi.New("http://127.0.0.1:1"), &strings.Builder{})
	reply, err = dead.Submit(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, networkErrorText, reply)
}

func TestEditLastRegenerates(t *testing.T) {
	server := replyServer(t, "answer")
	session := NewSession(chatapi.New(server.URL), &strings.Builder{})

	_, err := session.Submit(context.Background(), "first question")
	require.NoError(t, err)
	require.Equal(t, 2, session.Transcript().Len())

	reply, err := session.EditLast(context.Background(), "better question")
	require.NoError(t, err)
	assert.Equal(t, "answer", reply)

	// Old reply discarded, edited turn plus fresh reply remain.
	require.Equal(t, 2, session.Transcript().Len())
	edited := session.Transcript().At(0)
	assert.Equal(t, "better question", edited.Text)
	assert.True(t, edited.Edited)
}

func TestEditLastUnchangedIsNoOp(t *testing.T) {
	server := replyServer(t, "answer")
	session := NewSession(chatapi.New(server.URL), &strings.Builder{})

	_, err := session.Submit(context.Background(), "question")
	require.NoError(t, err)
	before := session.Transcript().Len()

	reply, err := session.EditLast(context.Background(), "question")
	require.NoError(t, err)
	assert.Empty(t, reply)
	assert.Equal(t, before, session.Transcript().Len())
}

func TestEditWithoutUserMessage(t *testing.T) {
	session := NewSession(chatapi.New("http://127.0.0.1:1"), &strings.Builder{})
	_, err := session.EditLast(context.Background(), "anything")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrEmptyMessage))
}
