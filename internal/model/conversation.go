// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strconv"
	"sync"
	"time"

	"github.com/lokraj2004/minigemini/internal/util"
)

// TitleMaxRunes is the maximum length of an auto-generated conversation
// title, taken from the first characters of the opening prompt.
const TitleMaxRunes = 40

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a titled, ordered sequence of exchanged messages.
// The title is fixed at creation time and never revised afterward.
type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// NewConversation creates a conversation for the given opening prompt.
// The id is time-derived and unique; the title is the first TitleMaxRunes
// characters of the prompt. The message list starts empty - the caller
// appends the opening prompt as part of the optimistic send step.
func NewConversation(prompt string) *Conversation {
	return &Conversation{
		ID:       newConversationID(),
		Title:    util.TruncateRunesNoEllipsis(prompt, TitleMaxRunes),
		Messages: make([]Message, 0),
	}
}

// Append adds a message to the conversation.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// AppendUser creates and appends a user message.
func (c *Conversation) AppendUser(text string) {
	c.Append(NewUserMessage(text))
}

// AppendModel creates and appends a model message.
func (c *Conversation) AppendModel(text string) {
	c.Append(NewModelMessage(text))
}

// LastMessage returns the most recent message and true, or a zero Message
// and false if the conversation is empty.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clone creates a deep copy of the conversation. Mutating code clones
// before appending so that previously published snapshots stay immutable.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:       c.ID,
		Title:    c.Title,
		Messages: make([]Message, len(c.Messages)),
	}
	copy(clone.Messages, c.Messages)
	return clone
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

var (
	idMu   sync.Mutex
	lastID int64
)

// newConversationID creates a unique time-derived conversation ID.
// Nanosecond timestamps are strictly monotonic per process; the guard below
// covers clock steps so two conversations can never share an id.
func newConversationID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixNano()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
