// Package suggest implements the public suggestion engine: it owns the
// catalog (inverted index + prefix trie), the per-session buffers, and the
// submit/feed/reset/add_tools/remove_tool orchestration described by the
// matching pipeline.
package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/toolsuggest/core/pkg/index"
	"github.com/toolsuggest/core/pkg/rank"
	"github.com/toolsuggest/core/pkg/session"
	"github.com/toolsuggest/core/pkg/tokenizer"
	"github.com/toolsuggest/core/pkg/trie"
)

const minQueryLength = 2

var validate = validator.New()

// CombineStrategy picks how a tool's per-window scores are merged when
// max_intents > 1.
type CombineStrategy string

const (
	CombineMax CombineStrategy = "max"
	CombineSum CombineStrategy = "sum"
)

// Config holds the construction parameters for an Engine.
type Config struct {
	TopK                  int             `validate:"gte=1"`
	MaxIntents            int             `validate:"gte=1"`
	IntentSeparatorTokens []string
	CombineStrategy       CombineStrategy `validate:"omitempty,oneof=max sum"`
	MinScore              float64         `validate:"gte=0"`
	Locales               []string
}

// DefaultConfig returns the engine's documented construction defaults.
func DefaultConfig() Config {
	return Config{
		TopK:            5,
		MaxIntents:      1,
		CombineStrategy: CombineMax,
		MinScore:        1.0,
		Locales:         []string{"pt", "en"},
	}
}

// RejectedTool reports one spec that add_tools refused to apply.
type RejectedTool struct {
	Name string
	Err  error
}

// AddToolsResult reports the per-spec outcome of an add_tools call; it is
// never partial per rejected spec — each spec either fully applies or is
// left out entirely.
type AddToolsResult struct {
	Accepted []string
	Rejected []RejectedTool
}

// Engine is the public suggestion orchestrator. The catalog (index + trie +
// tool registry) is guarded by its own RWMutex, independent of the session
// store's lock, so a catalog rebuild never blocks session reads/writes and
// vice versa.
type Engine struct {
	cfg Config

	catalogMu sync.RWMutex
	idx       *index.Index
	trie      *trie.Trie
	tools     map[string]ToolSpec

	ranker *rank.Ranker
	tok    *tokenizer.Tokenizer
	seg    *rank.Segmenter

	sessions *session.Store
}

// NewEngine builds an Engine over the initial catalog and cfg. Zero-valued
// Config fields are NOT defaulted here — callers needing spec defaults
// should start from DefaultConfig(). Construction fails atomically:
// nothing partially initializes.
func NewEngine(tools []ToolSpec, cfg Config) (*Engine, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, NewConfigError("config", err)
	}

	seen := make(map[string]bool, len(tools))
	for _, t := range tools {
		if err := validate.Struct(t); err != nil {
			return nil, NewConfigError("tool:"+t.Name, err)
		}
		if seen[t.Name] {
			return nil, NewConfigError("tool:"+t.Name, &DuplicateToolError{Name: t.Name})
		}
		seen[t.Name] = true
	}

	e := &Engine{
		cfg:      cfg,
		idx:      index.New(),
		trie:     trie.New(),
		tools:    make(map[string]ToolSpec, len(tools)),
		tok:      tokenizer.New(cfg.Locales),
		seg:      rank.NewSegmenter(cfg.IntentSeparatorTokens),
		sessions: session.New(),
	}
	e.ranker = rank.New(e.idx, e.trie, cfg.MinScore)

	for _, t := range tools {
		e.indexTool(t)
	}
	return e, nil
}

// indexTool tokenizes every field of t and inserts one posting per distinct
// term per field, plus one trie entry per distinct term. Caller must hold
// catalogMu for writing.
func (e *Engine) indexTool(t ToolSpec) {
	e.tools[t.Name] = t

	indexField := func(text string, field index.Field) {
		terms := e.tok.Tokens(text, false)
		tf := make(map[string]int, len(terms))
		for _, term := range terms {
			tf[term.Text]++
		}
		for term, count := range tf {
			e.idx.AddPosting(term, t.Name, field, count)
			e.trie.Insert(term)
		}
	}

	indexField(t.Name, index.FieldName)
	indexField(t.Description, index.FieldDescription)
	indexField(strings.Join(t.Keywords, " "), index.FieldKeywords)
	indexField(strings.Join(t.Aliases, " "), index.FieldAliases)
}

// Submit replaces session sid's buffer with text and runs the matching
// pipeline on it as finalized input: no token is treated as a trailing
// prefix.
func (e *Engine) Submit(text, sid string) []Suggestion {
	e.sessions.Replace(sid, text)
	return e.query(text, false)
}

// Feed appends delta onto session sid's buffer and runs the pipeline,
// treating the trailing non-whitespace run as a prefix token unless delta
// ends in whitespace or the buffer's last raw token is itself a separator.
func (e *Engine) Feed(delta, sid string) []Suggestion {
	buf := e.sessions.Append(sid, delta)
	hasPrefix := delta != "" && !endsInWhitespace(delta)
	if hasPrefix {
		if raw := e.tok.RawTokens(buf); len(raw) > 0 && e.seg.IsSeparator(raw[len(raw)-1].Text) {
			hasPrefix = false
		}
	}
	return e.query(buf, hasPrefix)
}

func endsInWhitespace(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == ' ' || last == '\t' || last == '\n' || last == '\r'
}

// Reset removes session sid's buffer entirely. An unknown session id is a
// no-op.
func (e *Engine) Reset(sid string) {
	e.sessions.Remove(sid)
}

// query runs the full matching pipeline (tokenize, segment, rank,
// combine, sort, truncate) against text.
func (e *Engine) query(text string, hasPrefix bool) []Suggestion {
	if len(strings.TrimSpace(text)) < minQueryLength {
		return nil
	}

	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()

	raw := e.tok.RawTokens(text)
	if len(raw) == 0 {
		return nil
	}

	windows := e.seg.Segment(raw, e.cfg.MaxIntents)
	if len(windows) == 0 {
		return nil
	}

	type combined struct {
		score      float64
		matchCount int
		reasons    []string
	}
	byTool := make(map[string]*combined)

	for wi, winTokens := range windows {
		isLastWindow := wi == len(windows)-1
		w := e.buildWindow(winTokens, hasPrefix && isLastWindow)

		for _, res := range e.ranker.RankWindow(w) {
			c, ok := byTool[res.Tool]
			if !ok {
				byTool[res.Tool] = &combined{score: res.Score, matchCount: res.MatchCount, reasons: []string{res.Reason}}
				continue
			}
			switch e.cfg.CombineStrategy {
			case CombineSum:
				c.score += res.Score
			default:
				if res.Score > c.score {
					c.score = res.Score
				}
			}
			if res.MatchCount > c.matchCount {
				c.matchCount = res.MatchCount
			}
			if len(c.reasons) == 0 || c.reasons[len(c.reasons)-1] != res.Reason {
				c.reasons = append(c.reasons, res.Reason)
			}
		}
	}

	tools := make([]string, 0, len(byTool))
	for tool := range byTool {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		ci, cj := byTool[tools[i]], byTool[tools[j]]
		if ci.score != cj.score {
			return ci.score > cj.score
		}
		if ci.matchCount != cj.matchCount {
			return ci.matchCount > cj.matchCount
		}
		return tools[i] < tools[j]
	})

	if len(tools) > e.cfg.TopK {
		tools = tools[:e.cfg.TopK]
	}

	suggestions := make([]Suggestion, 0, len(tools))
	for _, name := range tools {
		spec := e.tools[name]
		c := byTool[name]
		suggestions = append(suggestions, Suggestion{
			ID:                spec.Name,
			Kind:              kindOf(spec.Name),
			Score:             c.score,
			Label:             spec.Name,
			Reason:            strings.Join(c.reasons, "; "),
			ArgumentsTemplate: spec.ArgsSchema,
			Metadata:          Metadata{Tags: spec.Tags},
		})
	}
	return suggestions
}

// buildWindow turns one segmenter window into a rank.Window, splitting off
// a trailing prefix term when withPrefix is true.
func (e *Engine) buildWindow(winTokens []tokenizer.Token, withPrefix bool) rank.Window {
	if withPrefix && len(winTokens) > 0 {
		last := winTokens[len(winTokens)-1]
		complete := e.tok.FilterStopwords(winTokens[:len(winTokens)-1], false)
		return rank.Window{
			CompleteTerms: textsOf(complete),
			PrefixTerm:    last.Text,
			HasPrefix:     true,
		}
	}
	complete := e.tok.FilterStopwords(winTokens, false)
	return rank.Window{CompleteTerms: textsOf(complete)}
}

func textsOf(tokens []tokenizer.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// AddTools inserts specs incrementally (no full rebuild). A spec whose name
// already exists in the catalog is rejected and reported; every other spec
// in the same batch still applies.
func (e *Engine) AddTools(specs []ToolSpec) AddToolsResult {
	e.catalogMu.Lock()
	defer e.catalogMu.Unlock()

	var result AddToolsResult
	for _, t := range specs {
		if err := validate.Struct(t); err != nil {
			result.Rejected = append(result.Rejected, RejectedTool{Name: t.Name, Err: NewConfigError("tool:"+t.Name, err)})
			continue
		}
		if _, exists := e.tools[t.Name]; exists {
			result.Rejected = append(result.Rejected, RejectedTool{Name: t.Name, Err: &DuplicateToolError{Name: t.Name}})
			continue
		}
		e.indexTool(t)
		result.Accepted = append(result.Accepted, t.Name)
	}
	return result
}

// RemoveTool deletes every posting belonging to name, decrements doc_freq
// for every term that name contributed, and soft-removes from the trie any
// term whose doc_freq drops to zero. Unknown tool names return
// UnknownToolError.
func (e *Engine) RemoveTool(name string) error {
	e.catalogMu.Lock()
	defer e.catalogMu.Unlock()

	if _, exists := e.tools[name]; !exists {
		return &UnknownToolError{Name: name}
	}
	drained := e.idx.RemoveTool(name)
	for _, term := range drained {
		// The trie refcount was raised once per field the term was indexed
		// from, so drain it to zero.
		for e.trie.Contains(term) {
			e.trie.Remove(term)
		}
	}
	delete(e.tools, name)
	return nil
}

// SessionCount reports the number of live sessions, used by gateway status
// reporting.
func (e *Engine) SessionCount() int {
	return e.sessions.Len()
}

// CatalogSize reports the number of tools currently indexed.
func (e *Engine) CatalogSize() int {
	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()
	return len(e.tools)
}
