// Package index implements a term-to-tool inverted index with
// TF-IDF-style field weighting over (term, tool, field) postings.
package index

import (
	"math"
	"sort"
	"sync"
)

// Field identifies which part of a ToolSpec a posting was indexed from.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldKeywords    Field = "keywords"
	FieldAliases     Field = "aliases"
)

// FieldWeight is the fixed per-field weight used when scoring a match.
var FieldWeight = map[Field]float64{
	FieldName:        3.0,
	FieldAliases:     2.5,
	FieldKeywords:    2.0,
	FieldDescription: 1.0,
}

// Posting ties a term to a tool via one source field, carrying the
// in-field term frequency.
type Posting struct {
	Tool  string
	Field Field
	TF    int
}

// Index is the term -> postings inverted index, plus the document
// frequency and tool-count bookkeeping IDF needs.
type Index struct {
	mu       sync.RWMutex
	postings map[string][]Posting
	docFreq  map[string]int
	tools    map[string]bool
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		postings: make(map[string][]Posting),
		docFreq:  make(map[string]int),
		tools:    make(map[string]bool),
	}
}

// AddPosting records that term appears tf times in tool's field. Calling
// this more than once for the same (term, tool, field) accumulates TF
// rather than duplicating the posting — the inverted index is built by
// calling this once per distinct term per field during catalog indexing.
func (idx *Index) AddPosting(term, tool string, field Field, tf int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	postings := idx.postings[term]
	sawTool, merged := false, false
	for i := range postings {
		if postings[i].Tool == tool {
			sawTool = true
		}
		if postings[i].Tool == tool && postings[i].Field == field {
			postings[i].TF += tf
			merged = true
		}
	}
	if !sawTool {
		idx.docFreq[term]++
	}
	if !merged {
		postings = append(postings, Posting{Tool: tool, Field: field, TF: tf})
	}
	idx.postings[term] = postings
	idx.tools[tool] = true
}

// RemoveTool deletes every posting belonging to tool, decrementing
// document frequency for every term that tool contributed to. Returns the
// set of terms whose document frequency dropped to zero, so the trie can
// soft-remove them.
func (idx *Index) RemoveTool(tool string) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var drained []string
	for term, postings := range idx.postings {
		hadTool := false
		kept := postings[:0:0]
		for _, p := range postings {
			if p.Tool == tool {
				hadTool = true
				continue
			}
			kept = append(kept, p)
		}
		if !hadTool {
			continue
		}
		if len(kept) == 0 {
			delete(idx.postings, term)
		} else {
			idx.postings[term] = kept
		}
		idx.docFreq[term]--
		if idx.docFreq[term] <= 0 {
			delete(idx.docFreq, term)
			drained = append(drained, term)
		}
	}
	delete(idx.tools, tool)
	return drained
}

// N returns the number of distinct tools currently indexed.
func (idx *Index) N() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.tools)
}

// DocFreq returns the number of distinct tools containing term.
func (idx *Index) DocFreq(term string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.docFreq[term]
}

// IDF computes the smoothed inverse document frequency for term, per spec
// §4.3: ln((N+1)/(docFreq+1)) + 1. Always >= 1, including for terms the
// index has never seen.
func (idx *Index) IDF(term string) float64 {
	idx.mu.RLock()
	n := len(idx.tools)
	df := idx.docFreq[term]
	idx.mu.RUnlock()
	return math.Log(float64(n+1)/float64(df+1)) + 1
}

// Postings returns a copy of the posting list for term (nil if absent).
func (idx *Index) Postings(term string) []Posting {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	src := idx.postings[term]
	if len(src) == 0 {
		return nil
	}
	out := make([]Posting, len(src))
	copy(out, src)
	return out
}

// HasTerm reports whether term has any live postings.
func (idx *Index) HasTerm(term string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.postings[term]) > 0
}

// Terms returns every indexed term in sorted order (used by tests and the
// debug snapshot dump, not on the query hot path).
func (idx *Index) Terms() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	terms := make([]string, 0, len(idx.postings))
	for t := range idx.postings {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
