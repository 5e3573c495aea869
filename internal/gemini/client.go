// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the remote completion endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lokraj2004/minigemini/internal/payload"
)

// Configuration constants for the completion endpoint.
const (
	// DefaultTimeout is the default timeout for completion requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// Error variables for common client errors.
var (
	// ErrNotConfigured indicates the endpoint URL is not set.
	ErrNotConfigured = errors.New("completion endpoint not configured")

	// ErrMalformedResponse indicates the response body could not be parsed
	// or carried no response text.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// APIError represents a non-success HTTP response from the endpoint.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("completion error (HTTP %d): %s", e.Status, e.Body)
}

// completionResponse is the expected response body shape.
type completionResponse struct {
	Response string `json:"response"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client calls the remote completion endpoint: one POST per send carrying
// the truncated history and the new prompt, expecting {"response": "..."}.
// Network failures, non-2xx statuses, and malformed bodies are all returned
// as errors; the caller treats every failure uniformly.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// IsConfigured returns true if the client has an endpoint configured.
func (c *Client) IsConfigured() bool {
	return c.endpoint != ""
}

// =============================================================================
// COMPLETION CALL
// =============================================================================

// Complete sends the request payload and returns the response text.
func (c *Client) Complete(ctx context.Context, req payload.Request) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logRequest(httpReq)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logResponse(resp, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if completion.Response == "" {
		return "", ErrMalformedResponse
	}

	return completion.Response, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// logRequest logs an API request without exposing the body, which carries
// conversation content.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("gemini: request %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("gemini: response %d (%v)", resp.StatusCode, duration)
}
