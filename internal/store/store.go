// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store manages the in-memory ordered conversation collection.
package store

import (
	"log"
	"sync"

	"github.com/lokraj2004/minigemini/internal/model"
)

// DefaultMaxConversations is the retention cap: inserting a conversation
// past the cap silently evicts the oldest entry.
const DefaultMaxConversations = 10

// Persister receives the full collection after every mutation. An empty
// collection means the stored value should be removed entirely.
type Persister interface {
	PersistConversations(convs []*model.Conversation) error
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the ordered conversation collection, newest-first, plus the
// active-conversation pointer. Every mutation is followed synchronously by
// a persistence write so a restart reflects the last completed mutation.
//
// The send pipeline mutates the store from a background goroutine while the
// UI loop reads it, so access is mutex-guarded. Conversations handed out by
// All and Active are treated as immutable snapshots; mutating code clones
// before appending and publishes the clone via Upsert.
type Store struct {
	mu            sync.Mutex
	conversations []*model.Conversation
	activeID      string
	max           int
	persister     Persister
}

// New creates a store with the default retention cap.
func New(persister Persister) *Store {
	return &Store{
		max:       DefaultMaxConversations,
		persister: persister,
	}
}

// WithMaxConversations sets the retention cap. Values below 1 are ignored.
func (s *Store) WithMaxConversations(n int) *Store {
	if n >= 1 {
		s.mu.Lock()
		s.max = n
		s.mu.Unlock()
	}
	return s
}

// Reset replaces the collection without persisting, for loading stored
// state at startup. The most recent conversation becomes active, matching
// the behavior on reload.
func (s *Store) Reset(convs []*model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]*model.Conversation(nil), convs...)
	if len(s.conversations) > s.max {
		s.conversations = s.conversations[:s.max]
	}
	s.activeID = ""
	if len(s.conversations) > 0 {
		s.activeID = s.conversations[0].ID
	}
}

// =============================================================================
// ACTIVE CONVERSATION
// =============================================================================

// SelectActive sets the active conversation pointer. The empty string means
// "no conversation selected": the next send composes a new conversation.
func (s *Store) SelectActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// ActiveID returns the active conversation id, or "" if none is selected.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Active returns the active conversation, or nil if none is selected or the
// active id no longer resolves (for example after eviction).
func (s *Store) Active() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.activeID)
}

// Get returns the conversation with the given id, or nil.
func (s *Store) Get(id string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// =============================================================================
// MUTATION
// =============================================================================

// Upsert inserts or replaces a conversation. An existing id is replaced in
// place, preserving its position; a new conversation is prepended and the
// collection truncated to the retention cap, dropping the oldest entries
// silently. The mutation and its persistence write form one unit.
func (s *Store) Upsert(conv *model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, existing := range s.conversations {
		if existing.ID == conv.ID {
			s.conversations[i] = conv
			replaced = true
			break
		}
	}
	if !replaced {
		s.conversations = append([]*model.Conversation{conv}, s.conversations...)
		if len(s.conversations) > s.max {
			s.conversations = s.conversations[:s.max]
		}
	}

	s.persistLocked()
}

// =============================================================================
// READ ACCESS
// =============================================================================

// All returns the ordered conversation sequence, newest-first. The returned
// slice is a copy; the conversations themselves are shared snapshots.
func (s *Store) All() []*model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Conversation(nil), s.conversations...)
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (s *Store) findLocked(id string) *model.Conversation {
	if id == "" {
		return nil
	}
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// persistLocked writes the collection through the persister. Persistence
// failures are logged and absorbed; the in-memory state stays authoritative
// for the rest of the session.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.PersistConversations(s.conversations); err != nil {
		log.Printf("store: failed to persist conversations: %v", err)
	}
}
