// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi provides the HTTP client for the remote text-completion
// endpoint. The endpoint is an opaque collaborator: it accepts a role/content
// message list and answers in the OpenAI chat-completion shape.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/chatbox-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrRateLimited indicates the endpoint answered HTTP 429. The caller reacts
// to the signal; no cool-down is enforced on this side of the wire.
var ErrRateLimited = errors.New("rate limited by chat endpoint")

// StatusError is returned for any non-2xx status other than 429.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat endpoint returned status %d", e.Code)
}

// FallbackReply is used when a 2xx response does not carry the expected reply
// field. Degraded output, not an error.
const FallbackReply = "Sorry, I didn't get that."

// =============================================================================
// WIRE TYPES
// =============================================================================

// completionRequest is the request body for the chat endpoint.
type completionRequest struct {
	Messages []model.WireMessage `json:"messages"`
}

// completionResponse mirrors the OpenAI chat-completion response shape.
// Only the first choice's message content is consumed.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// =============================================================================
// CLIENT
// =============================================================================

// DefaultTimeout bounds a single completion round trip.
const DefaultTimeout = 60 * time.Second

// Client handles communication with the chat endpoint. Thread-safe.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the given endpoint URL.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewWithHTTPClient creates a client with a custom http.Client (used in tests).
func NewWithHTTPClient(endpoint string, hc *http.Client) *Client {
	return &Client{endpoint: endpoint, httpClient: hc}
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Complete sends the full transcript to the endpoint and returns the reply
// text. Outcomes:
//   - nil error with reply text on success
//   - nil error with FallbackReply when the 2xx body lacks the reply field
//   - ErrRateLimited on HTTP 429
//   - *StatusError on any other non-2xx status
//   - a wrapped transport/decode error on network-level failure
func (c *Client) Complete(ctx context.Context, messages []model.WireMessage) (string, error) {
	body, err := json.Marshal(completionRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return FallbackReply, nil
	}
	return parsed.Choices[0].Message.Content, nil
}
