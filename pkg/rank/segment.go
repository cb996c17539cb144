package rank

import "github.com/toolsuggest/core/pkg/tokenizer"

// Segmenter splits a raw (unfiltered) token sequence into 1..maxIntents
// anchored intent windows around separator tokens.
type Segmenter struct {
	separators map[string]bool
}

// NewSegmenter builds a Segmenter. A nil separatorTokens falls back to
// tokenizer.DefaultSeparatorTokens(); a non-nil (even empty) slice
// overrides the defaults entirely, matching the engine construction rule
// by the caller. Separators are stored in tokenizer.Normalize form so they
// compare equal to normalized tokens ("também" matches "tambem").
func NewSegmenter(separatorTokens []string) *Segmenter {
	if separatorTokens == nil {
		separatorTokens = tokenizer.DefaultSeparatorTokens()
	}
	set := make(map[string]bool, len(separatorTokens))
	for _, s := range separatorTokens {
		set[tokenizer.Normalize(s)] = true
	}
	return &Segmenter{separators: set}
}

// Segment splits tokens into at most maxIntents contiguous, non-empty
// windows delimited by separator tokens. Separators are consumed (never
// appear inside a window) up until maxIntents-1 splits have been made;
// any further separator tokens are absorbed as ordinary content into the
// window being built.
func (s *Segmenter) Segment(tokens []tokenizer.Token, maxIntents int) [][]tokenizer.Token {
	if len(tokens) == 0 {
		return nil
	}
	if maxIntents <= 1 {
		return [][]tokenizer.Token{tokens}
	}

	var windows [][]tokenizer.Token
	var current []tokenizer.Token
	for _, tok := range tokens {
		canSplit := s.separators[tok.Text] && len(windows) < maxIntents-1
		if canSplit {
			if len(current) > 0 {
				windows = append(windows, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		windows = append(windows, current)
	}
	return windows
}

// IsSeparator reports whether term is one of this Segmenter's configured
// separator tokens.
func (s *Segmenter) IsSeparator(term string) bool {
	return s.separators[term]
}
