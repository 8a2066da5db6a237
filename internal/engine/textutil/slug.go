// Package textutil provides the pure text-normalisation helpers used
// everywhere the engine derives identifiers from display names.
package textutil

import "strings"

// Slugify converts a display name into its canonical slug: lowercased,
// trimmed, stripped of everything outside [a-z0-9\s-], whitespace runs
// collapsed to a single hyphen, repeated hyphens collapsed, leading and
// trailing hyphens removed. It is pure and idempotent: Slugify(Slugify(s))
// == Slugify(s) for every s.
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '-':
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	return strings.Join(fields, "-")
}

// Normalize lowercases and trims a filter or query value for index lookup.
// Unlike Slugify it keeps interior whitespace, so "New Delhi" and
// "new delhi" normalise to the same key without becoming a slug.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Searchable flattens text for trie traversal: lowercased, with every
// character outside [a-z0-9] dropped. Trie walks are one node per
// character of the result.
func Searchable(text string) string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
