// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable key-value persistence layer.
//
// Two keys are stored under the data directory: the JSON-serialized
// conversation collection (removed entirely when the collection becomes
// empty) and the authentication flag (the string "true", or absent).
// All writes go through util.AtomicWriteFile so that on restart the loaded
// state reflects the last completed write, never a partial one. Malformed
// stored JSON is logged and wiped rather than crashing startup.
package storage
