// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payload builds the outgoing completion request from a
// conversation's message history.
package payload

import (
	"github.com/lokraj2004/minigemini/internal/model"
)

// Truncation constants for the outgoing payload. The full history stays in
// the stored conversation; only the transmitted copy is reduced.
const (
	// MaxHistoryMessages caps the transmitted history at the most recent
	// 10 messages (5 user/model turn pairs).
	MaxHistoryMessages = 10

	// MaxMessageText is the per-message character limit. Longer texts are
	// clipped to this many characters plus an ellipsis marker.
	MaxMessageText = 1000

	// ellipsisMarker is appended to clipped message text.
	ellipsisMarker = "..."
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Part is one text fragment of a history message.
type Part struct {
	Text string `json:"text"`
}

// HistoryMessage is one turn of the transmitted history.
type HistoryMessage struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Request is the body of the completion call: the truncated history plus
// the raw new prompt.
type Request struct {
	History []HistoryMessage `json:"history"`
	Message string           `json:"message"`
}

// =============================================================================
// BUILDER
// =============================================================================

// Build derives the outgoing request from the full message sequence (with
// the new user message already appended) and the raw prompt.
//
// Build is pure: it never mutates its input and always produces the same
// output for the same input. Only the most recent MaxHistoryMessages
// messages are included, and any retained text longer than MaxMessageText
// characters is clipped on the outgoing copy only.
func Build(messages []model.Message, prompt string) Request {
	start := 0
	if len(messages) > MaxHistoryMessages {
		start = len(messages) - MaxHistoryMessages
	}
	retained := messages[start:]

	history := make([]HistoryMessage, 0, len(retained))
	for _, msg := range retained {
		history = append(history, HistoryMessage{
			Role:  msg.Role.String(),
			Parts: []Part{{Text: clip(msg.Text)}},
		})
	}

	return Request{History: history, Message: prompt}
}

// clip bounds a message text to MaxMessageText characters, appending the
// ellipsis marker when anything was cut. Counting is rune-based so clipping
// never splits a multi-byte character.
func clip(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxMessageText {
		return text
	}
	return string(runes[:MaxMessageText]) + ellipsisMarker
}
