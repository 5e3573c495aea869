// minigemini - a terminal client for a Gemini-backed chat service.
//
// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lokraj2004/minigemini/internal/auth"
	"github.com/lokraj2004/minigemini/internal/config"
	"github.com/lokraj2004/minigemini/internal/gemini"
	"github.com/lokraj2004/minigemini/internal/pipeline"
	"github.com/lokraj2004/minigemini/internal/storage"
	"github.com/lokraj2004/minigemini/internal/store"
	"github.com/lokraj2004/minigemini/internal/ui"
	"github.com/lokraj2004/minigemini/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.minigemini/config.toml)")
	apiURL := flag.String("api-url", "", "completion endpoint URL (overrides config)")
	dataDir := flag.String("data-dir", "", "data directory (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("minigemini %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// Load configuration, CLI flags override config and environment.
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the persistence, store, gate, and pipeline, then hands the
// terminal to Bubble Tea.
func run(cfg *config.Config) error {
	// Persistence adapter
	var persist *storage.Store
	var err error
	if cfg.DataDir != "" {
		persist, err = storage.NewStoreWithDir(cfg.DataDir)
	} else {
		persist, err = storage.NewStore()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Route the standard logger to a file so log output does not corrupt
	// the terminal while the TUI owns it.
	logFile, err := tea.LogToFile(filepath.Join(persist.BaseDir, "minigemini.log"), "minigemini")
	if err == nil {
		defer logFile.Close()
	}
	log.Printf("minigemini %s starting", Version)

	// Conversation store, seeded from disk
	conversations := store.New(persist).WithMaxConversations(cfg.MaxConversations)
	conversations.Reset(persist.LoadConversations())

	// Login gate
	gate := auth.NewGate(persist)

	// Remote client and send pipeline
	client := gemini.NewClient(cfg.APIURL).WithTimeout(cfg.RequestTimeout())
	pipe := pipeline.New(conversations, client)

	theme := styles.NewTheme()
	app := ui.NewApp(theme, gate, conversations, pipe, cfg.UI.ShowSidebar)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running minigemini: %w", err)
	}
	return nil
}
