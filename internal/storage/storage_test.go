// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lokraj2004/minigemini/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStoreWithDir(t.TempDir())
	require.NoError(t, err)
	return s
}

// =============================================================================
// CONVERSATION ROUND TRIP
// =============================================================================

func TestStore_ConversationRoundTrip(t *testing.T) {
	s := newTestStore(t)

	var convs []*model.Conversation
	for _, prompt := range []string{"first question", "second question", "third question"} {
		conv := model.NewConversation(prompt)
		conv.AppendUser(prompt)
		conv.AppendModel("answer to " + prompt)
		convs = append(convs, conv)
	}

	require.NoError(t, s.PersistConversations(convs))

	got := s.LoadConversations()
	require.Len(t, got, 3)
	for i, conv := range got {
		require.Equal(t, convs[i].ID, conv.ID)
		require.Equal(t, convs[i].Title, conv.Title)
		require.Equal(t, convs[i].Messages, conv.Messages)
	}
}

func TestStore_MissingKeyIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.Empty(t, s.LoadConversations())
}

func TestStore_EmptyCollectionRemovesKey(t *testing.T) {
	s := newTestStore(t)

	conv := model.NewConversation("Hello")
	conv.AppendUser("Hello")
	require.NoError(t, s.PersistConversations([]*model.Conversation{conv}))

	keyFile := filepath.Join(s.BaseDir, "chatConversations.json")
	_, err := os.Stat(keyFile)
	require.NoError(t, err, "key file should exist after persist")

	require.NoError(t, s.PersistConversations(nil))
	_, err = os.Stat(keyFile)
	require.True(t, os.IsNotExist(err), "key file should be removed when collection is empty")
}

func TestStore_CorruptedValueIsWiped(t *testing.T) {
	s := newTestStore(t)

	keyFile := filepath.Join(s.BaseDir, "chatConversations.json")
	require.NoError(t, os.WriteFile(keyFile, []byte("{not json"), 0644))

	got := s.LoadConversations()
	require.Empty(t, got, "corrupted value should load as empty state")

	_, err := os.Stat(keyFile)
	require.True(t, os.IsNotExist(err), "corrupted key should be wiped")
}

// =============================================================================
// AUTHENTICATION FLAG
// =============================================================================

func TestStore_AuthenticationFlag(t *testing.T) {
	s := newTestStore(t)

	require.False(t, s.Authenticated(), "flag should be absent initially")
	require.NoError(t, s.SetAuthenticated())
	require.True(t, s.Authenticated())

	// The flag survives a new store over the same directory.
	s2, err := NewStoreWithDir(s.BaseDir)
	require.NoError(t, err)
	require.True(t, s2.Authenticated())
}

func TestStore_AuthenticationFlagGarbageValue(t *testing.T) {
	s := newTestStore(t)
	keyFile := filepath.Join(s.BaseDir, "isAuthenticated.json")
	require.NoError(t, os.WriteFile(keyFile, []byte("yes"), 0644))
	require.False(t, s.Authenticated(), "only the literal true value authenticates")
}
