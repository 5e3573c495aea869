// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is a titled, ordered sequence of Message values identified
// by a unique time-derived id. Messages carry only a role (user or model)
// and text; they are immutable once created and never shared across
// conversations. All JSON tags match the persisted wire shape so that a
// stored collection round-trips without translation.
package model
