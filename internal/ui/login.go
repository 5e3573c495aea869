// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lokraj2004/minigemini/internal/auth"
	"github.com/lokraj2004/minigemini/internal/ui/styles"
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// loginModel is the credential form shown before the chat surface.
type loginModel struct {
	theme  *styles.Theme
	gate   *auth.Gate
	inputs [fieldCount]textinput.Model
	focus  int
	errMsg string
	width  int
	height int
}

func newLoginModel(theme *styles.Theme, gate *auth.Gate) loginModel {
	m := loginModel{theme: theme, gate: gate}

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m.inputs[fieldUsername] = username
	m.inputs[fieldEmail] = email
	m.inputs[fieldPassword] = password
	return m
}

// loginSuccessMsg signals that the gate accepted the credentials.
type loginSuccessMsg struct{}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "enter":
			if m.focus < fieldPassword {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	err := m.gate.Login(
		m.inputs[fieldUsername].Value(),
		m.inputs[fieldEmail].Value(),
		m.inputs[fieldPassword].Value(),
	)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			m.errMsg = "Invalid credentials, try again."
		} else {
			m.errMsg = err.Error()
		}
		m.setFocus(fieldUsername)
		return m, nil
	}
	m.errMsg = ""
	return m, func() tea.Msg { return loginSuccessMsg{} }
}

func (m loginModel) View() string {
	labels := [fieldCount]string{"Username", "Email", "Password"}

	var rows []string
	rows = append(rows, m.theme.LoginTitle.Render("minigemini — sign in"), "")
	for i, in := range m.inputs {
		rows = append(rows, m.theme.LoginLabel.Render(labels[i]), in.View())
	}
	if m.errMsg != "" {
		rows = append(rows, "", m.theme.LoginError.Render(m.errMsg))
	}
	rows = append(rows, "", m.theme.Hint.Render("tab: next field   enter: submit"))

	box := m.theme.LoginBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
