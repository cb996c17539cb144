// Package trie implements the prefix index over normalized terms.
//
// It is built on the tchap/go-patricia radix-trie library, generalized
// from whole dictionary words with a frequency item to indexed terms with
// a posting-count item: the count lets Remove soft-delete a term
// (decrement to zero) without requiring physical node pruning.
package trie

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultLimit is the hard latency guard on prefix expansion.
const DefaultLimit = 64

// Trie is a character-keyed prefix tree over normalized terms.
type Trie struct {
	t *patricia.Trie
}

// New creates an empty Trie.
func New() *Trie {
	return &Trie{t: patricia.NewTrie()}
}

// Insert adds term to the trie, marking it terminal. Idempotent: inserting
// an already-present term increments its posting-count refcount.
func (tr *Trie) Insert(term string) {
	if term == "" {
		return
	}
	if item := tr.t.Get(patricia.Prefix(term)); item != nil {
		count := item.(int)
		tr.t.Set(patricia.Prefix(term), count+1)
		return
	}
	tr.t.Insert(patricia.Prefix(term), 1)
}

// Remove decrements term's refcount. Physical pruning is not
// required; once the count reaches zero the term is soft-deleted by
// unmarking it (future PrefixTerms calls skip it) but the node may remain.
func (tr *Trie) Remove(term string) {
	item := tr.t.Get(patricia.Prefix(term))
	if item == nil {
		return
	}
	count := item.(int)
	if count <= 1 {
		tr.t.Set(patricia.Prefix(term), 0)
		return
	}
	tr.t.Set(patricia.Prefix(term), count-1)
}

// PrefixTerms returns up to limit terminal terms whose normalized form
// starts with prefix, in deterministic depth-first, ascending-character
// order. limit<=0 uses DefaultLimit.
func (tr *Trie) PrefixTerms(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var terms []string
	err := tr.t.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		count, _ := item.(int)
		if count <= 0 {
			return nil
		}
		terms = append(terms, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("trie: visiting subtree for prefix %q: %v", prefix, err)
	}

	sort.Strings(terms)
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// Contains reports whether term has a live (non-zero refcount) posting.
func (tr *Trie) Contains(term string) bool {
	item := tr.t.Get(patricia.Prefix(term))
	if item == nil {
		return false
	}
	count, _ := item.(int)
	return count > 0
}
