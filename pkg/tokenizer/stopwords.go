package tokenizer

// Stopword sets are lightweight, documented PT/EN lists — not meant to be
// exhaustive, just enough to keep "the", "a", "de", "para" from drowning out
// real query terms. Stable and published: consumers may rely on these exact
// sets not changing shape across patch releases.

var englishStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true, "for": true,
	"and": true, "or": true, "is": true, "are": true, "in": true, "on": true,
	"with": true, "by": true, "at": true, "from": true, "as": true, "it": true,
	"its": true, "be": true, "been": true, "was": true, "were": true,
	"this": true, "that": true, "these": true, "those": true, "you": true,
	"your": true, "i": true, "my": true, "me": true, "we": true, "our": true,
	"do": true, "does": true, "did": true, "not": true, "no": true, "if": true,
	"then": true, "also": true, "plus": true,
}

var portugueseStopwords = map[string]bool{
	"o": true, "a": true, "os": true, "as": true, "de": true, "da": true,
	"do": true, "das": true, "dos": true, "para": true, "com": true,
	"em": true, "e": true, "ou": true, "é": true, "são": true, "um": true,
	"uma": true, "uns": true, "umas": true, "no": true, "na": true,
	"nos": true, "nas": true, "por": true, "que": true, "se": true,
	"ao": true, "aos": true, "à": true, "às": true, "esse": true,
	"essa": true, "isso": true, "este": true, "esta": true, "isto": true,
	"depois": true, "também": true, "então": true,
}

// stopwordSets returns the merged stopword set for the requested locales,
// keyed by each word's Normalize form so accented entries match normalized
// tokens. Unknown locales are ignored rather than rejected: locale hints are
// best-effort per spec, never exclusionary.
func stopwordSets(locales []string) map[string]bool {
	if len(locales) == 0 {
		locales = []string{"pt", "en"}
	}
	merged := make(map[string]bool)
	for _, loc := range locales {
		switch loc {
		case "en":
			for w := range englishStopwords {
				merged[Normalize(w)] = true
			}
		case "pt":
			for w := range portugueseStopwords {
				merged[Normalize(w)] = true
			}
		}
	}
	return merged
}

// DefaultSeparatorTokens lists the tokens that split a query into intent
// windows when multi-intent segmentation is enabled and no override is given.
func DefaultSeparatorTokens() []string {
	return []string{"and", "then", "also", "or", "plus", "e", "depois", "também", "ou"}
}
