// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package proxy provides the request forwarder that relays chat requests to
// the backend chat host without exposing its address to the caller.
//
// Contract:
//   - POST only; any other method yields 405 with a plain-text body
//   - missing backend target yields 500 {"error":"Backend URL not configured"}
//   - the inbound JSON body (empty body treated as {}) is POSTed to the
//     backend and the backend's status and JSON body are mirrored unchanged
//   - every parse/fetch/decode failure becomes 500 {"error":<message>};
//     a raw panic never reaches the caller
//
// The forwarder is stateless and adds no retry, timeout, or body-size policy
// of its own; those belong to the host platform and the backend.
package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// DefaultPort is the default listen port for the proxy binary.
const DefaultPort = 8787

// errorBody is the uniform JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// Handler forwards chat requests to the configured backend URL.
type Handler struct {
	backendURL string
	httpClient *http.Client
	logger     *log.Logger
}

// NewHandler creates a forwarder for the given backend URL. An empty URL is
// accepted; requests then fail with the misconfiguration error.
func NewHandler(backendURL string) *Handler {
	return &Handler{
		backendURL: backendURL,
		httpClient: http.DefaultClient,
		logger:     log.Default(),
	}
}

// WithHTTPClient sets a custom http.Client (used in tests).
func (h *Handler) WithHTTPClient(hc *http.Client) *Handler {
	h.httpClient = hc
	return h
}

// WithLogger sets a custom logger.
func (h *Handler) WithLogger(l *log.Logger) *Handler {
	h.logger = l
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	// The caller always gets the JSON envelope, never a stack trace.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Printf("[proxy] %s panic: %v", reqID, rec)
			h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("%v", rec))
		}
	}()

	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		io.WriteString(w, "Method Not Allowed")
		return
	}

	if h.backendURL == "" {
		h.logger.Printf("[proxy] %s backend URL not configured", reqID)
		h.writeError(w, http.StatusInternalServerError, "Backend URL not configured")
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		h.logger.Printf("[proxy] %s bad request body: %v", reqID, err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	forward, err := json.Marshal(parsed)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.backendURL, bytes.NewReader(forward))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Printf("[proxy] %s forward failed: %v", reqID, err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !json.Valid(body) {
		h.logger.Printf("[proxy] %s backend returned non-JSON body", reqID)
		h.writeError(w, http.StatusInternalServerError, "backend returned invalid JSON")
		return
	}

	h.logger.Printf("[proxy] %s -> %d (%d bytes)", reqID, resp.StatusCode, len(body))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(body)
}

// writeError writes the JSON error envelope with the given status.
func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: msg})
}
