package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/textdiff"
)

// FormatDiff renders diff git-style with colored hunks, followed by a
// "+N -M" tally. A nil diff renders as "".
func (s *Styles) FormatDiff(diff *textdiff.Diff) string {
	if diff == nil {
		return ""
	}

	path := strings.TrimPrefix(diff.Path, "/")

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)) + "\n")
	b.WriteString(s.DiffRemove.Render("--- a/"+path) + "\n")
	b.WriteString(s.DiffAdd.Render("+++ b/"+path) + "\n")

	for _, hunk := range diff.Hunks {
		b.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			text := line.Prefix() + line.Text
			switch line.Kind {
			case textdiff.Add:
				text = s.DiffAdd.Render(text)
			case textdiff.Remove:
				text = s.DiffRemove.Render(text)
			default:
				text = s.DiffContext.Render(text)
			}
			b.WriteString(text + "\n")
		}
	}

	b.WriteString(s.Success.Render(fmt.Sprintf("+%d", diff.Additions)) + " " +
		s.Error.Render(fmt.Sprintf("-%d", diff.Deletions)) + "\n")
	return b.String()
}
