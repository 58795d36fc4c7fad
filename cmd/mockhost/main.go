// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command mockhost is a development stand-in for the backend chat host. It
// speaks the same completion contract the widget consumes and enforces a
// token-bucket rate limit so the client's 429 handling can be exercised
// locally. It is a dev tool, not part of the product.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// completionRequest is the inbound message list.
type completionRequest struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// completionResponse is the OpenAI-shaped reply.
type completionResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

func main() {
	port := flag.Int("port", 3001, "listen port")
	burst := flag.Int("burst", 5, "requests allowed before throttling")
	interval := flag.Duration("refill", 3*time.Second, "token refill interval")
	flag.Parse()

	limiter := rate.NewLimiter(rate.Every(*interval), *burst)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
			return
		}

		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		last := ""
		for i := len(req.Messages) - 1; i >= 0; i-- {
			if req.Messages[i].Role == "user" {
				last = req.Messages[i].Content
				break
			}
		}

		var resp completionResponse
		var c choice
		c.Message.Content = fmt.Sprintf("You said: %q. This is a canned development reply.", last)
		resp.Choices = []choice{c}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[mockhost] serving canned completions on %s (burst %d, refill %s)", addr, *burst, *interval)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[mockhost] serve: %v", err)
	}
}
