// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Verify styles are initialized by rendering through them.
	if theme.Header.Render("x") == "" {
		t.Error("Header style renders empty")
	}
	if theme.UserLabel.Render("You") == "" {
		t.Error("UserLabel style renders empty")
	}
	if theme.LoginError.Render("bad") == "" {
		t.Error("LoginError style renders empty")
	}
}
