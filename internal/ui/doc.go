// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the terminal interface: a login form gating a chat
// surface with transcript viewport, sidebar, and a composer whose
// backtick-marked scratch text is filtered out before sending.
package ui
