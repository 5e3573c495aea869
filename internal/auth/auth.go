// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the fixed-credential login gate in front of the
// chat surface. It is a minimal gate, not a security boundary: credentials
// are hardcoded and the authenticated flag never expires.
package auth

import (
	"errors"
	"log"
)

// Hardcoded credential triple accepted by the gate.
const (
	validUsername = "lokraj2004"
	validEmail    = "lokraj2004@gmail.com"
	validPassword = "Lokraj@2004"
)

// ErrInvalidCredentials is returned when the submitted triple does not
// match. It is user-visible; the form stays open for retry.
var ErrInvalidCredentials = errors.New("invalid credentials")

// FlagStore persists the authenticated flag across restarts.
type FlagStore interface {
	Authenticated() bool
	SetAuthenticated() error
}

// Gate checks credentials and remembers a successful login.
type Gate struct {
	flags FlagStore
}

// NewGate creates a gate over the given flag store.
func NewGate(flags FlagStore) *Gate {
	return &Gate{flags: flags}
}

// IsAuthenticated reports whether a previous login succeeded.
func (g *Gate) IsAuthenticated() bool {
	return g.flags.Authenticated()
}

// Login validates the credential triple. On match it persists the
// authenticated flag and returns nil; otherwise ErrInvalidCredentials.
// A flag persistence failure is logged but does not fail the login: the
// session is authenticated either way.
func (g *Gate) Login(username, email, password string) error {
	if username != validUsername || email != validEmail || password != validPassword {
		return ErrInvalidCredentials
	}
	if err := g.flags.SetAuthenticated(); err != nil {
		log.Printf("auth: failed to persist authenticated flag: %v", err)
	}
	return nil
}
