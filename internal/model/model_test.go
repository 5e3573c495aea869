// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation_Title(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"short prompt kept whole", "Hello", "Hello"},
		{"exactly forty runes kept whole", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"long prompt cut at forty runes", strings.Repeat("a", 41), strings.Repeat("a", 40)},
		{"unicode prompt cut by runes not bytes", strings.Repeat("ü", 50), strings.Repeat("ü", 40)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv := NewConversation(tc.prompt)
			if conv.Title != tc.want {
				t.Errorf("Title = %q, want %q", conv.Title, tc.want)
			}
		})
	}
}

func TestNewConversation_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		conv := NewConversation("prompt")
		if conv.ID == "" {
			t.Fatal("conversation id should not be empty")
		}
		if seen[conv.ID] {
			t.Fatalf("duplicate conversation id: %s", conv.ID)
		}
		seen[conv.ID] = true
	}
}

func TestConversation_Append(t *testing.T) {
	conv := NewConversation("Hello")
	if !conv.IsEmpty() {
		t.Error("new conversation should be empty")
	}

	conv.AppendUser("Hello")
	conv.AppendModel("Hi!")

	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	last, ok := conv.LastMessage()
	if !ok || last.Role != RoleModel || last.Text != "Hi!" {
		t.Errorf("LastMessage = %+v, want model/Hi!", last)
	}
}

func TestConversation_CloneIsIndependent(t *testing.T) {
	conv := NewConversation("Hello")
	conv.AppendUser("Hello")

	clone := conv.Clone()
	clone.AppendModel("Hi!")

	if conv.MessageCount() != 1 {
		t.Errorf("original mutated by clone append: %d messages", conv.MessageCount())
	}
	if clone.MessageCount() != 2 {
		t.Errorf("clone MessageCount = %d, want 2", clone.MessageCount())
	}
	if clone.ID != conv.ID || clone.Title != conv.Title {
		t.Error("clone should share id and title")
	}
}

// =============================================================================
// SERIALIZATION TESTS
// =============================================================================

func TestConversation_JSONRoundTrip(t *testing.T) {
	conv := NewConversation("What is Go?")
	conv.AppendUser("What is Go?")
	conv.AppendModel("A programming language.")

	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Conversation
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.ID != conv.ID || got.Title != conv.Title {
		t.Errorf("round trip changed identity: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != RoleUser || got.Messages[1].Text != "A programming language." {
		t.Errorf("round trip changed messages: %+v", got.Messages)
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Error("user display name should be You")
	}
	if RoleModel.DisplayName() != "Gemini" {
		t.Error("model display name should be Gemini")
	}
}
