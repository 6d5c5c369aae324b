package shortcut

import (
	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/editor"
)

// handleChange inspects a change notification for trigger characters. Only
// user edits are considered.
func (e *Engine) handleChange(ch editor.Change) {
	if ch.Source != delta.SourceUser || ch.Delta == nil {
		return
	}

	for _, op := range ch.Delta.Ops {
		switch {
		case op.IsInsert() && op.Embed == nil && op.Insert == " ":
			e.onSpace()
		case op.IsInsert() && op.Embed == nil && op.Insert == "\n":
			e.onEnter()
		case op.IsDelete():
			e.onDelete()
		}
	}
}

func (e *Engine) onSpace() {
	sel, ok := e.ed.Selection()
	if !ok {
		return
	}
	line, _, ok := e.ed.LineAt(sel.Index)
	if !ok || line.Text == "" {
		return
	}
	e.run(line.Text, line, sel, TriggerSpace)
}

// onEnter examines the line the new newline ended. The caret already sits at
// the start of the following line, one past that line's end.
func (e *Engine) onEnter() {
	sel, ok := e.ed.Selection()
	if !ok || sel.Index == 0 {
		return
	}
	line, _, ok := e.ed.LineAt(sel.Index - 1)
	if !ok {
		return
	}
	e.run(line.Text+" ", line, sel, TriggerNewline)
}

func (e *Engine) onDelete() {
	if sel, ok := e.ed.Selection(); ok {
		e.logger.Debug("user delete", logging.FieldIndex, sel.Index)
	}
}

// run matches text and defers the first allowed pattern's rewrite. The guard
// sees the examined line's formats together with the formats at the caret.
func (e *Engine) run(text string, line editor.Line, sel editor.Range, trigger Trigger) {
	formats := line.Formats.Merge(e.ed.Format(sel))

	p, loc, ok := Find(e.patterns, formats, text)
	if !ok {
		return
	}

	m := newMatch(p, text, line, sel.Index, trigger, loc)
	edits := p.Rewrite(m)
	if len(edits) == 0 {
		e.stats.Declined++
		e.logger.Debug("shortcut declined", logging.FieldPattern, p.Name, logging.FieldTrigger, trigger)
		return
	}

	e.schedule(p, m, edits)
}
