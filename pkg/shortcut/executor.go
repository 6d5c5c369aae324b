package shortcut

import (
	"fmt"

	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/editor"
)

// Apply performs edits in order through the editor API. The first edit the
// editor rejects stops the sequence; its error is returned.
func Apply(ed editor.Editor, edits []Edit) error {
	for i, e := range edits {
		if err := applyOne(ed, e); err != nil {
			return fmt.Errorf("edit %d (%s at %d): %w", i, e.Kind, e.Index, err)
		}
	}
	return nil
}

func applyOne(ed editor.Editor, e Edit) error {
	switch e.Kind {
	case EditDelete:
		return ed.DeleteText(e.Index, e.Length, e.Source)
	case EditInsertText:
		return ed.InsertText(e.Index, e.Text, e.Attrs, e.Source)
	case EditInsertEmbed:
		return ed.InsertEmbed(e.Index, e.Name, e.Value, e.Source)
	case EditFormatLine:
		return ed.FormatLine(e.Index, e.Length, e.Name, e.Value, e.Source)
	case EditFormatCaret:
		ed.FormatCaret(e.Name, e.Value)
		return nil
	case EditSetSelection:
		return ed.SetSelection(e.Index, e.Source)
	default:
		return fmt.Errorf("unknown edit kind %s", e.Kind)
	}
}

// schedule defers the rewrite of m past the current change dispatch. The
// edits are computed now, against the document the match was made on.
func (e *Engine) schedule(p Pattern, m Match, edits []Edit) {
	e.ed.Defer(func() error {
		if err := Apply(e.ed, edits); err != nil {
			e.stats.Failed++
			return fmt.Errorf("rewrite %s: %w", p.Name, err)
		}
		e.stats.Applied[p.Name]++
		e.logger.Debug("rewrote shortcut",
			logging.FieldPattern, p.Name,
			logging.FieldTrigger, m.Trigger,
			logging.FieldLine, m.Line.Start,
			logging.FieldEdits, len(edits),
		)
		return nil
	})
}
