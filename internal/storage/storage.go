// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable key-value persistence layer.
package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/lokraj2004/minigemini/internal/model"
	"github.com/lokraj2004/minigemini/internal/util"
)

// Storage keys. These mirror the two values the application persists:
// the serialized conversation collection and the authentication flag.
const (
	conversationsKey = "chatConversations"
	authenticatedKey = "isAuthenticated"
)

// authenticatedValue is the literal stored when the user has logged in.
// The flag is either this string or absent entirely.
const authenticatedValue = "true"

// =============================================================================
// STORE
// =============================================================================

// Store is a small durable key-value store scoped to a data directory.
// Each key is one file; writes are atomic (temp file + fsync + rename) so a
// crash mid-write leaves either the old value or the new complete value.
type Store struct {
	// BaseDir is the directory holding the key files.
	// Default: ~/.minigemini/
	BaseDir string
}

// NewStore creates a store rooted at the default data directory.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithDir(filepath.Join(homeDir, ".minigemini"))
}

// NewStoreWithDir creates a store rooted at a custom directory.
func NewStoreWithDir(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: baseDir}, nil
}

// =============================================================================
// CONVERSATION COLLECTION
// =============================================================================

// LoadConversations reads the persisted conversation collection.
//
// A missing key yields an empty collection. A present but unparseable value
// is logged and wiped, and an empty collection is returned - corrupted state
// never crashes startup and is never surfaced to the user.
func (s *Store) LoadConversations() []*model.Conversation {
	data, err := os.ReadFile(s.keyPath(conversationsKey))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("storage: failed to read %s: %v", conversationsKey, err)
		}
		return nil
	}

	var convs []*model.Conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		log.Printf("storage: discarding corrupted %s: %v", conversationsKey, err)
		s.removeKey(conversationsKey)
		return nil
	}
	return convs
}

// PersistConversations writes the conversation collection. An empty
// collection removes the stored key entirely.
func (s *Store) PersistConversations(convs []*model.Conversation) error {
	if len(convs) == 0 {
		s.removeKey(conversationsKey)
		return nil
	}

	data, err := json.MarshalIndent(convs, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.keyPath(conversationsKey), data, 0644)
}

// =============================================================================
// AUTHENTICATION FLAG
// =============================================================================

// Authenticated reports whether the persisted authentication flag is set.
func (s *Store) Authenticated() bool {
	data, err := os.ReadFile(s.keyPath(authenticatedKey))
	if err != nil {
		return false
	}
	return string(data) == authenticatedValue
}

// SetAuthenticated persists the authentication flag. It is written once on
// login and never cleared; there is no logout operation.
func (s *Store) SetAuthenticated() error {
	return util.AtomicWriteFile(s.keyPath(authenticatedKey), []byte(authenticatedValue), 0644)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// keyPath returns the file path backing a storage key.
func (s *Store) keyPath(key string) string {
	return filepath.Join(s.BaseDir, key+".json")
}

// removeKey deletes a key's backing file. A missing file is not an error.
func (s *Store) removeKey(key string) {
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: failed to remove %s: %v", key, err)
	}
}
