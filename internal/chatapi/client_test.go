// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatbox-tui/internal/model"
)

func wire(texts ...string) []model.WireMessage {
	msgs := make([]model.WireMessage, 0, len(texts))
	for i, text := range texts {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		msgs = append(msgs, model.WireMessage{Role: role, Content: text})
	}
	return msgs
}

func TestCompleteSuccess(t *testing.T) {
	var gotBody completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	reply, err := client.Complete(context.Background(), wire("hello", "prev reply", "again"))
	require.NoError(t, err)
	assert.Equal(t, "hi", reply)

	// Full transcript must be forwarded in order with roles intact.
	require.Len(t, gotBody.Messages, 3)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "assistant", gotBody.Messages[1].Role)
	assert.Equal(t, "again", gotBody.Messages[2].Content)
}

func TestCompleteRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Complete(context.Background(), wire("hello"))
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Complete(context.Background(), wire("hello"))
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestCompleteMissingReplyFieldFallsBack(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"content":""}}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			reply, err := New(srv.URL).Complete(context.Background(), wire("hello"))
			require.NoError(t, err)
			assert.Equal(t, FallbackReply, reply)
		})
	}
}

func TestCompleteNonJSONBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Complete(context.Background(), wire("hello"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestCompleteNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed before use: every request fails at the dial.

	_, err := New(srv.URL).Complete(context.Background(), wire("hello"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestCompleteHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL).Complete(ctx, wire("hello"))
	require.Error(t, err)
}
