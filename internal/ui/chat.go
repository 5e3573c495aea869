// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lokraj2004/minigemini/internal/pipeline"
	"github.com/lokraj2004/minigemini/internal/store"
	"github.com/lokraj2004/minigemini/internal/textfilter"
	"github.com/lokraj2004/minigemini/internal/ui/styles"
)

const sidebarWidth = 26

// sendFinishedMsg signals that a send resolved (success or apology).
type sendFinishedMsg struct {
	admitted bool
}

// chatModel is the main chat surface: transcript, composer, and sidebar.
type chatModel struct {
	theme *styles.Theme
	keys  KeyMap

	store *store.Store
	pipe  *pipeline.Pipeline

	viewport viewport.Model
	composer textarea.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	showSidebar bool
	sending     bool

	width  int
	height int
	ready  bool
}

func newChatModel(theme *styles.Theme, s *store.Store, pipe *pipeline.Pipeline, showSidebar bool) chatModel {
	composer := textarea.New()
	composer.Placeholder = "Message Gemini... (`backticks` mark scratch text)"
	composer.ShowLineNumbers = false
	composer.SetHeight(3)
	composer.KeyMap.InsertNewline.SetKeys("alt+enter")
	composer.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	return chatModel{
		theme:       theme,
		keys:        DefaultKeyMap(),
		store:       s,
		pipe:        pipe,
		composer:    composer,
		spin:        spin,
		showSidebar: showSidebar,
	}
}

// sendCmd runs the pipeline on a background goroutine so the event loop
// stays responsive during the remote call.
func sendCmd(pipe *pipeline.Pipeline, prompt string) tea.Cmd {
	return func() tea.Msg {
		admitted := pipe.Send(context.Background(), prompt)
		return sendFinishedMsg{admitted: admitted}
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Send):
			return m.handleSend()
		case key.Matches(msg, m.keys.NewChat):
			m.store.SelectActive("")
			m.refreshViewport()
			return m, nil
		case key.Matches(msg, m.keys.ToggleSidebar):
			m.showSidebar = !m.showSidebar
			m.layout()
			m.refreshViewport()
			return m, nil
		case key.Matches(msg, m.keys.NextConv):
			m.selectRelative(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevConv):
			m.selectRelative(-1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
			return m, nil
		}

	case sendFinishedMsg:
		m.sending = false
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		// The optimistic user message lands mid-flight; keep the
		// transcript current while waiting.
		m.refreshViewport()
		return m, cmd
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// handleSend captures the composer through the styled-text filter and, when
// text survives, clears the surface and starts the send.
func (m chatModel) handleSend() (chatModel, tea.Cmd) {
	var prompt string
	capturer := textfilter.NewCapturer(func(text string) { prompt = text })

	if !capturer.Process(ComposerTree(m.composer.Value())) {
		// Nothing survived the filter: keep the composer as-is.
		return m, nil
	}
	if m.pipe.Sending() {
		return m, nil
	}

	m.composer.Reset()
	m.sending = true
	return m, tea.Batch(sendCmd(m.pipe, prompt), m.spin.Tick)
}

// selectRelative moves the active conversation by delta within the
// newest-first sidebar order.
func (m *chatModel) selectRelative(delta int) {
	convs := m.store.All()
	if len(convs) == 0 {
		return
	}
	idx := 0
	if active := m.store.ActiveID(); active != "" {
		for i, c := range convs {
			if c.ID == active {
				idx = i + delta
				break
			}
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(convs) {
		idx = len(convs) - 1
	}
	m.store.SelectActive(convs[idx].ID)
	m.refreshViewport()
}

// layout recomputes component dimensions after a resize or sidebar toggle.
func (m *chatModel) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := m.width
	if m.showSidebar {
		contentWidth -= sidebarWidth
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	headerHeight := 1
	statusHeight := 1
	composerHeight := m.composer.Height() + 2
	viewportHeight := m.height - headerHeight - statusHeight - composerHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = viewportHeight
	}
	m.composer.SetWidth(contentWidth - 2)
	m.renderer = newMarkdownRenderer(contentWidth - 4)
}

// refreshViewport re-renders the active conversation into the viewport.
func (m *chatModel) refreshViewport() {
	if !m.ready {
		return
	}
	content := renderTranscript(m.theme, m.renderer, m.store.Active(), m.viewport.Width)
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.theme.Header.Width(m.viewport.Width).Render("minigemini")

	composer := m.theme.InputContainer.Width(m.viewport.Width).Render(m.composer.View())

	status := m.statusLine()

	main := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), composer, status)
	if !m.showSidebar {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), main)
}

// statusLine renders the bottom bar: spinner while sending, key hints
// otherwise.
func (m chatModel) statusLine() string {
	if m.sending {
		return m.theme.StatusBar.Width(m.viewport.Width).Render(
			m.spin.View() + m.theme.ThinkingText.Render(" waiting for Gemini..."))
	}
	hints := "enter send · alt+enter newline · C-n new · C-b sidebar · C-j/C-k switch · C-c quit"
	return m.theme.StatusBar.Width(m.viewport.Width).Render(hints)
}

// sidebarView renders the conversation list, newest first.
func (m chatModel) sidebarView() string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	convs := m.store.All()
	if len(convs) == 0 {
		b.WriteString(m.theme.Hint.Render("none yet"))
	}
	active := m.store.ActiveID()
	for _, c := range convs {
		title := runewidth.Truncate(c.Title, sidebarWidth-4, "…")
		if c.ID == active {
			b.WriteString(m.theme.SidebarItemSelected.Render("▸ " + title))
		} else {
			b.WriteString(m.theme.SidebarItem.Render("  " + title))
		}
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth - 1).
		Height(m.height - 1).
		Render(b.String())
}
