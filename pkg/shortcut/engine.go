// Package shortcut rewrites markdown-like text into rich formatting as the
// user types.
//
// An Engine subscribes to an editor's text changes. When the user types a
// space or presses Enter it matches the line against an ordered pattern table
// and defers the first allowed match's rewrite to the editor's scheduler.
// Every trigger rescans the line; nothing is carried between keystrokes.
package shortcut

import (
	"maps"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/editor"
)

// Options configures an Engine.
type Options struct {
	// Ignore names patterns that never fire. Unknown names are inert.
	Ignore []string

	// Logger receives debug output about matches. Defaults to logging.Default().
	Logger *log.Logger
}

// Stats counts what an Engine has done since it was created.
type Stats struct {
	// Applied counts completed rewrites by pattern name.
	Applied map[string]int

	// Declined counts matches whose rewrite produced no edits.
	Declined int

	// Failed counts deferred rewrites the editor rejected.
	Failed int
}

// Total returns the number of completed rewrites.
func (s Stats) Total() int {
	n := 0
	for _, c := range s.Applied {
		n += c
	}
	return n
}

// Engine applies markdown shortcuts to one editor.
type Engine struct {
	ed          editor.Editor
	patterns    []Pattern
	logger      *log.Logger
	unsubscribe func()
	stats       Stats
}

// New creates an Engine for ed and subscribes it to ed's text changes.
func New(ed editor.Editor, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	e := &Engine{
		ed:       ed,
		patterns: WithExclusions(opts.Ignore),
		logger:   logger,
		stats:    Stats{Applied: make(map[string]int)},
	}
	e.unsubscribe = ed.OnTextChange(e.handleChange)

	return e
}

// Patterns returns the active patterns in match order.
func (e *Engine) Patterns() []Pattern {
	out := make([]Pattern, len(e.patterns))
	copy(out, e.patterns)
	return out
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Applied = maps.Clone(e.stats.Applied)
	return s
}

// Close unsubscribes the engine from its editor. Rewrites already deferred
// still run.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}
