// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the minigemini application.
//
// It contains the atomic file write primitive used by the persistence
// layer and rune-safe string helpers used wherever user text is truncated
// for display or titles.
package util
