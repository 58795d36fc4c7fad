// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command proxy runs the chat request forwarder. It presents a single stable
// origin to chat clients and relays every POST to the backend chat host named
// by the CHAT_HOST_URL environment variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/chatbox-tui/internal/proxy"
)

func main() {
	port := flag.Int("port", proxy.DefaultPort, "listen port")
	flag.Parse()

	backendURL := os.Getenv("CHAT_HOST_URL")
	if backendURL == "" {
		// Still serve; requests answer with the configuration error envelope
		// rather than the process refusing to start.
		log.Printf("[proxy] warning: CHAT_HOST_URL is not set")
	}

	handler := proxy.NewHandler(backendURL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Printf("[proxy] shutdown error: %v", err)
		}
	}()

	log.Printf("[proxy] listening on :%d", *port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[proxy] serve: %v", err)
	}
}
