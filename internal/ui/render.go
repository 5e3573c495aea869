// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/lokraj2004/minigemini/internal/model"
	"github.com/lokraj2004/minigemini/internal/ui/styles"
)

// newMarkdownRenderer builds the glamour renderer used for model messages.
// Returns nil when the terminal cannot support it; callers fall back to
// plain text.
func newMarkdownRenderer(wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderTranscript renders a conversation's full message list for the
// viewport. Model messages go through the markdown renderer; user messages
// are plain text with fenced code blocks highlighted.
func renderTranscript(theme *styles.Theme, renderer *glamour.TermRenderer, conv *model.Conversation, width int) string {
	if conv == nil || conv.IsEmpty() {
		return theme.Hint.Render("Start a new conversation. Wrap scratch text in `backticks` to keep it out of the send.")
	}

	var b strings.Builder
	for i, msg := range conv.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case model.RoleUser:
			b.WriteString(theme.UserLabel.Render(msg.Role.DisplayName()))
			b.WriteString("\n")
			b.WriteString(theme.MessageBody.Render(renderCodeBlocks(msg.Text, width)))
		case model.RoleModel:
			b.WriteString(theme.ModelLabel.Render(msg.Role.DisplayName()))
			b.WriteString("\n")
			b.WriteString(renderMarkdown(theme, renderer, msg.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMarkdown renders model message markdown for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(theme *styles.Theme, renderer *glamour.TermRenderer, content string) string {
	if renderer == nil {
		return theme.MessageBody.Render(content)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return theme.MessageBody.Render(content)
	}
	return strings.TrimRight(rendered, "\n")
}
