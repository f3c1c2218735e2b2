// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package hashtag turns free-text queries into hashtag candidates for graph
// exploration.
//
// Generation is a lexical chunker: the query is normalized, split into words,
// and runs of consecutive content words become one hashtag. "A red car near
// the old bridge" yields #redcar and #oldbridge.
package hashtag

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.English)

// Generate returns the hashtags for query, deduplicated in first-seen order.
// A tag contained in a longer tag is dropped.
func Generate(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}

	var tags []string
	seen := make(map[string]struct{})
	var phrase []string
	flush := func() {
		if len(phrase) == 0 {
			return
		}
		tag := "#" + strings.Join(phrase, "")
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
		phrase = phrase[:0]
	}

	for _, word := range tokenize(query) {
		if isContentWord(word) {
			phrase = append(phrase, strings.ReplaceAll(word, "'", ""))
			continue
		}
		flush()
	}
	flush()

	return dropContained(tags)
}

// ParseList splits a comma-separated hashtag field, trimming whitespace and
// dropping empty entries.
func ParseList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// tokenize lowercases s and splits it into words. Punctuation ends a word
// and is returned as a separate empty token so it also breaks phrases.
func tokenize(s string) []string {
	s = lower.String(norm.NFKC.String(s))

	var words []string
	var b strings.Builder
	emit := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// Contractions stay attached; "don't" is one stop word.
			if b.Len() > 0 {
				b.WriteRune('\'')
			}
		case unicode.IsSpace(r):
			emit()
		default:
			emit()
			words = append(words, "")
		}
	}
	emit()
	return words
}

func isContentWord(word string) bool {
	if word == "" || isNumber(word) {
		return false
	}
	_, stop := stopWords[strings.TrimSuffix(word, "'")]
	return !stop
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// dropContained removes every tag that is a substring of a different tag.
func dropContained(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		contained := false
		for _, other := range tags {
			if other != tag && strings.Contains(other, tag) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, tag)
		}
	}
	return out
}
