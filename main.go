// chatbox TUI - a terminal chat widget speaking the OpenAI-style chat contract.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/chatbox-tui/internal/chatapi"
	"github.com/jeranaias/chatbox-tui/internal/config"
	"github.com/jeranaias/chatbox-tui/internal/dictation"
	"github.com/jeranaias/chatbox-tui/internal/linemode"
	"github.com/jeranaias/chatbox-tui/internal/ui/chat"
	"github.com/jeranaias/chatbox-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	plain := flag.Bool("plain", false, "line-oriented mode instead of the full-screen widget")
	showVersion := flag.Bool("version", false, "print version and exit")
	endpoint := flag.String("endpoint", "", "override the chat endpoint URL")
	flag.Parse()

	if *showVersion {
		fmt.Printf("chatbox %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	url := cfg.Endpoint()
	if *endpoint != "" {
		url = *endpoint
	}
	client := chatapi.New(url)

	// Fall back to line mode on dumb terminals.
	if *plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		session := linemode.NewSession(client, os.Stdout)
		if err := session.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runTUI(cfg, client)
}

// runTUI starts the full-screen widget under the crash supervisor.
func runTUI(cfg *config.Config, client *chatapi.Client) {
	theme := styles.NewTheme(cfg.Theme())
	recognizer := dictation.New(cfg.Dictation.Command, cfg.Dictation.Locale)

	app := newApp(theme, cfg, client, recognizer)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Live theme reload: edits to the config file on disk flow into the
	// running program. The widget ignores no-op changes, so the event fired
	// by our own saves is harmless.
	if path, err := config.Path(); err == nil {
		if stop, err := config.Watch(path, func(fresh *config.Config) {
			p.Send(chat.ThemeChangedMsg{Mode: fresh.Theme()})
		}); err == nil {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running chatbox: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SUPERVISOR
// =============================================================================
// The supervisor wraps the chat widget and catches panics out of its Update
// and View. A crash swaps in a static recovery screen; 'r' rebuilds the
// widget from scratch and the session continues with a fresh transcript.

// crashState is shared by pointer across model copies so a panic caught in
// View is still visible to the next Update.
type crashState struct {
	mu     sync.Mutex
	active bool
	detail string
}

func (c *crashState) trip(cause any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.detail = fmt.Sprint(cause)
}

func (c *crashState) tripped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *crashState) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.detail = ""
}

// appModel is the top-level Bubble Tea model.
type appModel struct {
	chat       chat.Model
	theme      *styles.Theme
	cfg        *config.Config
	client     *chatapi.Client
	recognizer *dictation.Recognizer
	crash      *crashState

	width  int
	height int
}

func newApp(theme *styles.Theme, cfg *config.Config, client *chatapi.Client, recognizer *dictation.Recognizer) appModel {
	return appModel{
		chat:       chat.New(theme, cfg, client, recognizer),
		theme:      theme,
		cfg:        cfg,
		client:     client,
		recognizer: recognizer,
		crash:      &crashState{},
	}
}

func (a appModel) Init() tea.Cmd {
	return a.chat.Init()
}

func (a appModel) Update(msg tea.Msg) (result tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			a.crash.trip(r)
			result = a
			cmd = nil
		}
	}()

	if a.crash.tripped() {
		return a.handleCrashKey(msg)
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
	}

	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

// handleCrashKey drives the recovery screen: r rebuilds, q quits.
func (a appModel) handleCrashKey(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "r":
		a.crash.clear()
		a.chat = chat.New(a.theme, a.cfg, a.client, a.recognizer)
		cmds := []tea.Cmd{a.chat.Init()}
		if a.width > 0 {
			var cmd tea.Cmd
			a.chat, cmd = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}
	return a, nil
}

func (a appModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			a.crash.trip(r)
			out = a.recoveryView()
		}
	}()

	if a.crash.tripped() {
		return a.recoveryView()
	}
	return a.chat.View()
}

// recoveryView renders the static crash screen.
func (a appModel) recoveryView() string {
	a.crash.mu.Lock()
	detail := a.crash.detail
	a.crash.mu.Unlock()

	lines := []string{
		a.theme.RecoveryTitle.Render("Something went wrong."),
		"",
		a.theme.RecoveryMessage.Render("The chat hit an unexpected error and was stopped."),
		a.theme.RecoveryMessage.Render("Press r to reload the chat, or q to quit."),
	}
	if detail != "" {
		lines = append(lines, "", a.theme.RecoveryMessage.Render(detail))
	}

	box := a.theme.RecoveryBox.Render(strings.Join(lines, "\n"))
	if a.width > 0 {
		return "\n\n" + centerBlock(box, a.width)
	}
	return "\n\n" + box
}

// centerBlock indents every line of block so it sits centered in width.
func centerBlock(block string, width int) string {
	lines := strings.Split(block, "\n")
	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}
	pad := (width - longest) / 2
	if pad <= 0 {
		return block
	}
	indent := strings.Repeat(" ", pad)
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
