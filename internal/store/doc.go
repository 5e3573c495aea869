// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store manages the in-memory ordered conversation collection.
//
// The collection is kept newest-first with a bounded retention cap
// (default 10): upserting a new conversation past the cap silently drops
// the oldest entry. The active-conversation pointer lives here too; an
// unset pointer means the next send creates a new conversation. Every
// mutation is mirrored to an injected Persister before the call returns.
package store
