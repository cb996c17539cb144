// Package cli handles interactive terminal input for manual testing of
// live suggestions against a running suggest.Engine.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toolsuggest/core/pkg/suggest"
)

// InputHandler drives an engine from stdin one line at a time, passing each
// line to submit() as finalized input.
type InputHandler struct {
	engine       *suggest.Engine
	sessionID    string
	requestCount int
}

// NewInputHandler builds an InputHandler over engine, using sessionID as
// the single session this terminal drives.
func NewInputHandler(engine *suggest.Engine, sessionID string) *InputHandler {
	return &InputHandler{engine: engine, sessionID: sessionID}
}

// Start begins the REPL loop: read a line from stdin, submit it, print
// ranked suggestions. Loop terminates if an error occurs while reading
// from stdin (e.g. EOF from Ctrl+D).
func (h *InputHandler) Start() error {
	log.Print("tool suggestion REPL")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a query and press Enter (Ctrl+C to exit, 'reset' to clear the session):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "reset" {
			h.engine.Reset(h.sessionID)
			log.Debug("session reset")
			continue
		}
		h.handleInput(line)
	}
}

// handleInput submits line against the engine and prints the ranked
// suggestions.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	start := time.Now()
	results := h.engine.Submit(line, h.sessionID)
	elapsed := time.Since(start)

	log.Debugf("took %v for %q", elapsed, line)

	if len(results) == 0 {
		log.Warnf("no suggestions for: %q", line)
		return
	}

	log.Printf("found %d suggestions for %q:", len(results), line)
	for i, s := range results {
		label := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Label)
		log.Printf("%2d. %-30s (score: %6.2f, kind: %-4s) %s", i+1, label, s.Score, s.Kind, s.Reason)
	}
}
