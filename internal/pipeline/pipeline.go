// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline orchestrates the send flow: optimistic update, remote
// call, and success/failure reconciliation.
package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/lokraj2004/minigemini/internal/model"
	"github.com/lokraj2004/minigemini/internal/payload"
	"github.com/lokraj2004/minigemini/internal/store"
)

// ErrorReply is the fixed user-visible model turn substituted when the
// remote call fails.
const ErrorReply = "⚠️ Sorry, something went wrong."

// Completer is the remote completion collaborator.
type Completer interface {
	Complete(ctx context.Context, req payload.Request) (string, error)
}

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the pipeline's admission-control state.
type State int

const (
	// StateIdle means no send is in flight; a send may begin.
	StateIdle State = iota

	// StateSending means a send is in flight; new sends are rejected.
	StateSending
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline owns the single-flight send guard. Only one send may be in
// flight at a time; a send arriving while another is unresolved is silently
// ignored, not queued.
type Pipeline struct {
	mu     sync.Mutex
	state  State
	store  *store.Store
	client Completer
}

// New creates a pipeline over the given store and completion client.
func New(s *store.Store, client Completer) *Pipeline {
	return &Pipeline{
		state:  StateIdle,
		store:  s,
		client: client,
	}
}

// State returns the current admission state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Sending reports whether a send is currently in flight.
func (p *Pipeline) Sending() bool {
	return p.State() == StateSending
}

// Send runs one complete send for the given prompt and reports whether the
// send was admitted. It blocks until the remote call resolves; callers
// drive it from a background goroutine and keep the event loop responsive.
//
// The flow:
//  1. Admission: an empty (post-trim) prompt or an in-flight send is a
//     silent no-op. The Sending flag is set before the remote call begins,
//     so an overlapping send is rejected deterministically.
//  2. Optimistic update: the user message is appended (synthesizing and
//     activating a new conversation when none is selected) and the store
//     upserted, which persists.
//  3. Remote call. On success the response text is appended as a model
//     message; on failure a fixed apology is appended instead and the
//     error logged, never retried. The optimistic user message survives
//     failure either way.
//  4. The pipeline returns to Idle on every path, via defer.
func (p *Pipeline) Send(ctx context.Context, prompt string) bool {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return false
	}
	if !p.begin() {
		return false
	}
	defer p.finish()

	// Optimistic update. Conversations in the store are shared snapshots,
	// so mutate a clone and publish it through Upsert.
	var conv *model.Conversation
	if active := p.store.Active(); active != nil {
		conv = active.Clone()
	} else {
		conv = model.NewConversation(prompt)
	}
	conv.AppendUser(prompt)
	p.store.Upsert(conv)
	p.store.SelectActive(conv.ID)

	req := payload.Build(conv.Messages, prompt)

	reply, err := p.client.Complete(ctx, req)
	if err != nil {
		log.Printf("pipeline: send failed: %v", err)
		reply = ErrorReply
	}

	// Reconcile against the conversation by id, not the active pointer:
	// the user may have switched conversations while the call was in
	// flight. Eviction during flight drops the reply with the rest of the
	// conversation.
	final := conv.Clone()
	final.AppendModel(reply)
	if p.store.Get(final.ID) != nil {
		p.store.Upsert(final)
	}

	return true
}

// =============================================================================
// ADMISSION GUARD
// =============================================================================

// begin transitions Idle -> Sending, returning false if a send is already
// in flight.
func (p *Pipeline) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateIdle {
		return false
	}
	p.state = StateSending
	return true
}

// finish transitions back to Idle. It runs via defer so the transition
// executes on every return path.
func (p *Pipeline) finish() {
	p.mu.Lock()
	p.state = StateIdle
	p.mu.Unlock()
}
