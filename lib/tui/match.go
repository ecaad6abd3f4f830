// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Span is a half-open range of rune offsets.
type Span struct {
	Start int
	End   int
}

// MatchSpans returns every non-overlapping occurrence of term in text,
// compared case-insensitively, in order. An empty term matches
// nothing.
func MatchSpans(text, term string) []Span {
	pattern := []rune(strings.ToLower(term))
	if len(pattern) == 0 {
		return nil
	}
	runes := []rune(text)
	slab := util.MakeSlab(1024, 256)
	return matchIn(runes, pattern, 0, len(runes), slab)
}

// matchIn searches runes[from:to]. The exact matcher reports the
// best-scoring occurrence rather than the first, so the stretches on
// either side of it are searched too.
func matchIn(runes, pattern []rune, from, to int, slab *util.Slab) []Span {
	if to-from < len(pattern) {
		return nil
	}
	chars := util.ToChars([]byte(string(runes[from:to])))
	result, _ := algo.ExactMatchNaive(false, false, true, &chars, pattern, false, slab)
	if result.Start < 0 {
		return nil
	}
	found := Span{Start: from + int(result.Start), End: from + int(result.End)}
	spans := matchIn(runes, pattern, from, found.Start, slab)
	spans = append(spans, found)
	return append(spans, matchIn(runes, pattern, found.End, to, slab)...)
}

// Highlight renders text with every occurrence of term drawn in match
// and the remainder in base.
func Highlight(text, term string, base, match lipgloss.Style) string {
	spans := MatchSpans(text, term)
	if len(spans) == 0 {
		return base.Render(text)
	}
	runes := []rune(text)
	var rendered strings.Builder
	cursor := 0
	for _, span := range spans {
		if span.Start > cursor {
			rendered.WriteString(base.Render(string(runes[cursor:span.Start])))
		}
		rendered.WriteString(match.Render(string(runes[span.Start:span.End])))
		cursor = span.End
	}
	if cursor < len(runes) {
		rendered.WriteString(base.Render(string(runes[cursor:])))
	}
	return rendered.String()
}
