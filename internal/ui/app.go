// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lokraj2004/minigemini/internal/auth"
	"github.com/lokraj2004/minigemini/internal/pipeline"
	"github.com/lokraj2004/minigemini/internal/store"
	"github.com/lokraj2004/minigemini/internal/ui/styles"
)

// screen identifies the top-level view.
type screen int

const (
	screenLogin screen = iota
	screenChat
)

// App is the root Bubble Tea model. It gates the chat surface behind the
// login form until the gate reports an authenticated session.
type App struct {
	screen screen
	keys   KeyMap

	login loginModel
	chat  chatModel
}

// NewApp wires the root model. A previously persisted login skips the form.
func NewApp(theme *styles.Theme, gate *auth.Gate, s *store.Store, pipe *pipeline.Pipeline, showSidebar bool) App {
	app := App{
		keys:  DefaultKeyMap(),
		login: newLoginModel(theme, gate),
		chat:  newChatModel(theme, s, pipe, showSidebar),
	}
	if gate.IsAuthenticated() {
		app.screen = screenChat
	}
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Both screens track the terminal size.
		var loginCmd, chatCmd tea.Cmd
		a.login, loginCmd = a.login.Update(msg)
		a.chat, chatCmd = a.chat.Update(msg)
		return a, tea.Batch(loginCmd, chatCmd)

	case loginSuccessMsg:
		a.screen = screenChat
		return a, nil
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
	case screenChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	switch a.screen {
	case screenLogin:
		return a.login.View()
	default:
		return a.chat.View()
	}
}
