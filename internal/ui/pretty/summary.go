package pretty

import (
	"fmt"
	"sort"
	"strings"
)

// ReplaySummary holds the statistics of one replay run.
type ReplaySummary struct {
	Keys     int
	Lines    int
	Applied  map[string]int
	Declined int
}

// FormatReplaySummary formats replay statistics as a single line.
// Example: "42 keys, 5 lines; 3 shortcuts (bold 2, header 1)".
func (s *Styles) FormatReplaySummary(sum ReplaySummary) string {
	base := fmt.Sprintf("%s, %s", plural(sum.Keys, "key", "keys"), plural(sum.Lines, "line", "lines"))

	names := make([]string, 0, len(sum.Applied))
	total := 0
	for name, n := range sum.Applied {
		if n > 0 {
			names = append(names, name)
			total += n
		}
	}
	sort.Strings(names)

	if total == 0 {
		return base + "; " + s.Dim.Render("no shortcuts fired") + "\n"
	}

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %d", name, sum.Applied[name])
	}

	msg := base + "; " + s.Success.Render(plural(total, "shortcut", "shortcuts")) +
		" (" + strings.Join(parts, ", ") + ")"
	if sum.Declined > 0 {
		msg += s.Dim.Render(fmt.Sprintf(", %d declined", sum.Declined))
	}
	return msg + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
