// Package rank turns tokenized query windows into ranked tool suggestions:
// it expands a trailing partial term against the prefix trie, scores every
// candidate tool against the inverted index with TF-IDF field weighting,
// and splits multi-intent queries into independently ranked windows.
package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toolsuggest/core/pkg/index"
	"github.com/toolsuggest/core/pkg/trie"
)

// Window is one segment of a (possibly multi-intent) query: zero or more
// already-complete terms plus an optional trailing partial term still being
// typed.
type Window struct {
	CompleteTerms []string
	PrefixTerm    string
	HasPrefix     bool
}

// ScoreResult is one tool's ranked outcome for a Window.
type ScoreResult struct {
	Tool       string
	Score      float64
	MatchCount int
	Reason     string
}

// Ranker scores tools against a Window using the inverted index for
// TF-IDF-weighted term matches and the trie to expand a trailing partial
// term into completed terms.
type Ranker struct {
	idx      *index.Index
	trie     *trie.Trie
	minScore float64
}

// New builds a Ranker over idx and trie. minScore is the floor below which
// a tool is dropped from the result set; 0 keeps every
// non-zero match.
func New(idx *index.Index, tr *trie.Trie, minScore float64) *Ranker {
	return &Ranker{idx: idx, trie: tr, minScore: minScore}
}

// lengthBonus rewards longer, more specific terms: 1 + 0.1 * max(0, len-3).
func lengthBonus(term string) float64 {
	extra := len(term) - 3
	if extra < 0 {
		extra = 0
	}
	return 1 + 0.1*float64(extra)
}

// dampFactor is applied to a term reached via prefix expansion so a short
// prefix that happens to expand to a long term doesn't get the full weight
// of an exact match: min(1, len(prefix)/len(expansion)).
func dampFactor(prefix, expansion string) float64 {
	if len(expansion) == 0 {
		return 1
	}
	d := float64(len(prefix)) / float64(len(expansion))
	if d > 1 {
		d = 1
	}
	return d
}

// RankWindow scores every tool touched by w's terms and returns results
// sorted by descending score, then descending match count, then ascending
// tool name. It does not truncate to a top-k; the caller (the suggestion
// engine) applies that limit once results from every window have been
// combined.
func (r *Ranker) RankWindow(w Window) []ScoreResult {
	// term -> damp factor for this window's contributing terms.
	contributors := make(map[string]float64, len(w.CompleteTerms)+1)
	for _, term := range w.CompleteTerms {
		contributors[term] = 1.0
	}
	if w.HasPrefix && w.PrefixTerm != "" {
		if r.trie.Contains(w.PrefixTerm) {
			if _, exists := contributors[w.PrefixTerm]; !exists {
				contributors[w.PrefixTerm] = 1.0
			}
		}
		for _, expansion := range r.trie.PrefixTerms(w.PrefixTerm, trie.DefaultLimit) {
			damp := dampFactor(w.PrefixTerm, expansion)
			if existing, ok := contributors[expansion]; !ok || damp > existing {
				contributors[expansion] = damp
			}
		}
	}

	// termContribution tracks, per tool per distinct query term, the
	// dominant field (highest-weighted posting) and that term's total
	// contribution. A term repeated in the query counts once per tool per
	// window; its contribution is the sum over all of that tool's postings
	// for the term, across every field it was indexed from.
	type termContribution struct {
		field     index.Field
		fieldBest float64
		total     float64
	}
	type accum struct {
		score float64
		terms map[string]*termContribution
	}
	byTool := make(map[string]*accum)

	for term, damp := range contributors {
		idf := r.idx.IDF(term)
		bonus := lengthBonus(term)
		for _, p := range r.idx.Postings(term) {
			weight := index.FieldWeight[p.Field]
			contribution := weight * float64(p.TF) * idf * bonus * damp

			a, ok := byTool[p.Tool]
			if !ok {
				a = &accum{terms: make(map[string]*termContribution)}
				byTool[p.Tool] = a
			}
			a.score += contribution
			tc, ok := a.terms[term]
			if !ok {
				tc = &termContribution{}
				a.terms[term] = tc
			}
			tc.total += contribution
			if contribution > tc.fieldBest {
				tc.fieldBest = contribution
				tc.field = p.Field
			}
		}
	}

	results := make([]ScoreResult, 0, len(byTool))
	for tool, a := range byTool {
		if a.score < r.minScore {
			continue
		}
		reasons := make([]string, 0, len(a.terms))
		weights := make([]float64, 0, len(a.terms))
		for term, tc := range a.terms {
			reasons = append(reasons, fmt.Sprintf("%s: %s", term, tc.field))
			weights = append(weights, tc.total)
		}
		results = append(results, ScoreResult{
			Tool:       tool,
			Score:      a.score,
			MatchCount: len(a.terms),
			Reason:     topReasons(reasons, weights),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].MatchCount != results[j].MatchCount {
			return results[i].MatchCount > results[j].MatchCount
		}
		return results[i].Tool < results[j].Tool
	})
	return results
}

// topReasons orders a tool's per-term reason clauses by descending
// contribution and joins them into a single human-readable explanation.
func topReasons(reasons []string, weights []float64) string {
	idxs := make([]int, len(reasons))
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(i, j int) bool { return weights[idxs[i]] > weights[idxs[j]] })
	ordered := make([]string, len(idxs))
	for i, id := range idxs {
		ordered[i] = reasons[id]
	}
	return strings.Join(ordered, "; ")
}
