// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.APIURL == "" {
		t.Error("default APIURL is empty")
	}
	if cfg.MaxConversations != 10 {
		t.Errorf("MaxConversations = %d, want 10", cfg.MaxConversations)
	}
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("RequestTimeout() = %v, want 60s", cfg.RequestTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `api_url = "https://chat.example.com/api/chat"
max_conversations = 25

[ui]
theme = "light"
show_sidebar = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.APIURL != "https://chat.example.com/api/chat" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.MaxConversations != 25 {
		t.Errorf("MaxConversations = %d, want 25", cfg.MaxConversations)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.UI.ShowSidebar {
		t.Error("UI.ShowSidebar = true, want false")
	}
	// Unset fields fall back to defaults.
	if cfg.RequestTimeoutSecs != 60 {
		t.Errorf("RequestTimeoutSecs = %d, want default 60", cfg.RequestTimeoutSecs)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed toml",
			content: `api_url = [broken`,
		},
		{
			name:    "bad url",
			content: `api_url = "not a url"`,
		},
		{
			name:    "negative cap",
			content: `max_conversations = -3`,
		},
		{
			name:    "timeout out of range",
			content: `request_timeout_secs = 4000`,
		},
		{
			name: "unknown theme",
			content: `[ui]
theme = "solarized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := LoadFromPath(path); err == nil {
				t.Error("LoadFromPath() succeeded, want error")
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MINIGEMINI_API_URL", "https://override.example.com/chat")
	t.Setenv("MINIGEMINI_DATA_DIR", "/tmp/minigemini-test")
	t.Setenv("MINIGEMINI_MAX_CONVERSATIONS", "5")
	t.Setenv("MINIGEMINI_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.APIURL != "https://override.example.com/chat" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.DataDir != "/tmp/minigemini-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.MaxConversations != 5 {
		t.Errorf("MaxConversations = %d, want 5", cfg.MaxConversations)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides_BadCapIgnored(t *testing.T) {
	t.Setenv("MINIGEMINI_MAX_CONVERSATIONS", "zero")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.MaxConversations != 10 {
		t.Errorf("MaxConversations = %d, want default 10", cfg.MaxConversations)
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.APIURL = "https://saved.example.com/api/chat"
	cfg.MaxConversations = 7

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.APIURL != cfg.APIURL {
		t.Errorf("APIURL = %q, want %q", loaded.APIURL, cfg.APIURL)
	}
	if loaded.MaxConversations != 7 {
		t.Errorf("MaxConversations = %d, want 7", loaded.MaxConversations)
	}
}
