// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textfilter extracts plain text from a styled text tree, dropping
// any region whose effective font family marks it as excluded.
package textfilter

import "strings"

// DefaultExclusionFont is the font-family marker for text that must be
// stripped before sending.
const DefaultExclusionFont = "Courier New"

// =============================================================================
// STYLED TEXT TREE
// =============================================================================

// Kind discriminates tree node variants.
type Kind int

const (
	// KindText is a text-bearing leaf.
	KindText Kind = iota
	// KindElement is a styled container with children.
	KindElement
)

// Node is one node of a styled text tree. A node with an empty FontFamily
// inherits the effective font of its nearest styled ancestor.
type Node struct {
	Kind       Kind
	Text       string
	FontFamily string
	Children   []*Node
}

// TextNode returns a text leaf with no font of its own.
func TextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// StyledText returns a text leaf carrying its own font family.
func StyledText(text, font string) *Node {
	return &Node{Kind: KindText, Text: text, FontFamily: font}
}

// Element returns a container with no font of its own.
func Element(children ...*Node) *Node {
	return &Node{Kind: KindElement, Children: children}
}

// StyledElement returns a container carrying its own font family.
func StyledElement(font string, children ...*Node) *Node {
	return &Node{Kind: KindElement, FontFamily: font, Children: children}
}

// =============================================================================
// FILTER WALK
// =============================================================================

// Filter walks the tree rooted at root in document order and returns the
// concatenated text of every region whose effective font family does not
// contain exclusionFont, trimmed of surrounding whitespace.
//
// A container whose effective font matches is discarded whole, without
// descending. Matching is a case-insensitive substring test, so a stacked
// family list such as "courier new, monospace" still matches.
func Filter(root *Node, exclusionFont string) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	walk(root, "", strings.ToLower(exclusionFont), &b)
	return strings.TrimSpace(b.String())
}

func walk(n *Node, inherited, exclusion string, b *strings.Builder) {
	font := n.FontFamily
	if font == "" {
		font = inherited
	}
	if excluded(font, exclusion) {
		return
	}
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
	case KindElement:
		for _, child := range n.Children {
			walk(child, font, exclusion, b)
		}
	}
}

func excluded(font, exclusion string) bool {
	if exclusion == "" {
		return false
	}
	return strings.Contains(strings.ToLower(font), exclusion)
}

// =============================================================================
// CAPTURER
// =============================================================================

// Capturer binds the filter walk to a send callback. A non-empty filtered
// result fires the callback and tells the caller to clear the editing
// surface; an empty result is a silent no-op.
type Capturer struct {
	exclusionFont string
	send          func(text string)
}

// CapturerOption configures a Capturer.
type CapturerOption func(*Capturer)

// WithExclusionFont overrides the exclusion font marker.
func WithExclusionFont(font string) CapturerOption {
	return func(c *Capturer) {
		c.exclusionFont = font
	}
}

// NewCapturer creates a capturer that delivers filtered text to send.
func NewCapturer(send func(text string), opts ...CapturerOption) *Capturer {
	c := &Capturer{
		exclusionFont: DefaultExclusionFont,
		send:          send,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Process filters the tree and, when the result is non-empty, invokes the
// send callback. It reports whether a send fired; on true the caller clears
// the editing surface.
func (c *Capturer) Process(root *Node) bool {
	text := Filter(root, c.exclusionFont)
	if text == "" {
		return false
	}
	if c.send != nil {
		c.send(text)
	}
	return true
}
