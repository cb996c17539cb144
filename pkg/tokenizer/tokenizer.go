// Package tokenizer normalizes raw query/field text into the term sequences
// the trie and inverted index operate on: lowercasing, diacritic stripping,
// whitespace collapsing, and locale-aware stopword filtering.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer normalizes and tokenizes text for a fixed set of locales.
type Tokenizer struct {
	stopwords map[string]bool
	locales   []string
}

// New builds a Tokenizer whose stopword set is the union of the given
// locales. A nil/empty slice falls back to the ["pt", "en"] default.
func New(locales []string) *Tokenizer {
	return &Tokenizer{
		stopwords: stopwordSets(locales),
		locales:   locales,
	}
}

// Token is one normalized query or field term, tagged with its source
// position so callers (the intent segmenter) can reconstruct order.
type Token struct {
	Text string
	Pos  int
}

// Normalize lowercases text, strips combining diacritical marks via NFD
// decomposition, collapses any run of characters outside [a-z0-9] to a
// single space, and trims the result.
func Normalize(text string) string {
	lower := strings.ToLower(text)

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runeRemoveFunc(unicode.M)), lower)
	if err != nil {
		stripped = lower
	}

	var b strings.Builder
	b.Grow(len(stripped))
	lastWasSpace := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if !lastWasSpace {
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// runeRemoveFunc adapts transform.RemoveFunc to drop runes in the given
// unicode.RangeTable (used here to drop category "Mark" after NFD).
func runeRemoveFunc(table *unicode.RangeTable) transform.Transformer {
	return transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(table, r)
	})
}

// RawTokens splits normalized text on whitespace into an ordered token
// sequence with NO stopword filtering applied. The intent segmenter needs
// this unfiltered view because separator tokens ("and", "or", ...) are
// themselves drawn from the stopword lists — filtering them out before
// segmentation would destroy the very boundaries segmentation looks for.
func (t *Tokenizer) RawTokens(text string) []Token {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	fields := strings.Fields(normalized)
	tokens := make([]Token, len(fields))
	for i, f := range fields {
		tokens[i] = Token{Text: f, Pos: i}
	}
	return tokens
}

// FilterStopwords drops stopwords from an already-split token slice. When
// keepLastPartial is true the final token is kept even if it is a
// stopword, since it may still be a partial word in a live streaming
// buffer.
func (t *Tokenizer) FilterStopwords(tokens []Token, keepLastPartial bool) []Token {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]Token, 0, len(tokens))
	for i, tk := range tokens {
		isLast := i == len(tokens)-1
		if t.stopwords[tk.Text] && !(keepLastPartial && isLast) {
			continue
		}
		out = append(out, tk)
	}
	return out
}

// Tokens splits normalized text into a stopword-filtered token sequence —
// a convenience wrapper over RawTokens + FilterStopwords for callers that
// don't need multi-intent segmentation.
func (t *Tokenizer) Tokens(text string, keepLastPartial bool) []Token {
	return t.FilterStopwords(t.RawTokens(text), keepLastPartial)
}

// IsStopword reports whether term is in this Tokenizer's configured
// stopword set.
func (t *Tokenizer) IsStopword(term string) bool {
	return t.stopwords[term]
}
