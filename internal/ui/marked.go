// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/lokraj2004/minigemini/internal/textfilter"
)

// ComposerTree converts the raw composer text into a styled text tree for
// filtered capture. Backtick-delimited spans are the marker convention for
// scratch text: they are styled with the exclusion font and stripped before
// sending. An unclosed trailing backtick span is treated as plain text.
func ComposerTree(text string) *textfilter.Node {
	var children []*textfilter.Node
	var plain strings.Builder
	var marked strings.Builder
	inMarked := false

	flushPlain := func() {
		if plain.Len() > 0 {
			children = append(children, textfilter.TextNode(plain.String()))
			plain.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '`' && !inMarked:
			flushPlain()
			inMarked = true
		case r == '`' && inMarked:
			children = append(children, textfilter.StyledText(marked.String(), textfilter.DefaultExclusionFont))
			marked.Reset()
			inMarked = false
		case inMarked:
			marked.WriteRune(r)
		default:
			plain.WriteRune(r)
		}
	}

	if inMarked {
		// Unclosed span: restore the backtick and keep the text.
		plain.WriteString("`")
		plain.WriteString(marked.String())
	}
	flushPlain()

	return textfilter.Element(children...)
}
