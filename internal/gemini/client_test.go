// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lokraj2004/minigemini/internal/model"
	"github.com/lokraj2004/minigemini/internal/payload"
)

func testRequest() payload.Request {
	return payload.Build([]model.Message{model.NewUserMessage("Hello")}, "Hello")
}

func TestClient_CompleteSuccess(t *testing.T) {
	var received payload.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "Hi!"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got, err := client.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "Hi!" {
		t.Errorf("response = %q, want %q", got, "Hi!")
	}
	if received.Message != "Hello" {
		t.Errorf("server saw message %q, want %q", received.Message, "Hello")
	}
	if len(received.History) != 1 || received.History[0].Role != "user" {
		t.Errorf("server saw history %+v", received.History)
	}
}

func TestClient_CompleteNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Complete(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiErr.Status)
	}
}

func TestClient_CompleteMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing response field", `{"result": "Hi!"}`},
		{"empty response field", `{"response": ""}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.Complete(context.Background(), testRequest())
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.Complete(context.Background(), testRequest())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	// Server closed before the call: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Complete(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected a network error")
	}
}
