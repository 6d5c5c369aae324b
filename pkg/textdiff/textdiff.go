// Package textdiff computes line-based unified diffs between two versions of
// a rendered document.
package textdiff

import (
	"fmt"
	"strings"
)

// Kind classifies a diff line.
type Kind int

const (
	// Context is a line present in both versions.
	Context Kind = iota

	// Add is a line only in the new version.
	Add

	// Remove is a line only in the old version.
	Remove
)

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// Line is one line of a hunk, without its diff prefix.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line. An empty side is numbered by
// the line before it, as diff(1) does.
func (h Hunk) Header() string {
	oldStart, newStart := h.OldStart, h.NewStart
	if h.OldCount == 0 {
		oldStart--
	}
	if h.NewCount == 0 {
		newStart--
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, h.OldCount, newStart, h.NewCount)
}

// Diff is the difference between an old and a new version of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute returns the diff from before to after, or nil when they hold the
// same lines.
func Compute(path string, before, after []byte) *Diff {
	ops := script(splitLines(before), splitLines(after))

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case Add:
			diff.Additions++
		case Remove:
			diff.Deletions++
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}

	diff.Hunks = hunks(ops)
	return diff
}

// String returns the diff in unified format with ---/+++ file headers.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(l.Prefix())
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Prefix returns the unified-diff marker for the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case Add:
		return "+"
	case Remove:
		return "-"
	default:
		return " "
	}
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// script returns the edit script from a to b. suffix[i][j] holds the length
// of the longest common subsequence of a[i:] and b[j:], so the script can be
// read off front to back. Removals come before additions within a change.
func script(a, b []string) []Line {
	suffix := make([][]int, len(a)+1)
	for i := range suffix {
		suffix[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, Line{Kind: Context, Text: a[i]})
			i++
			j++
		case i < len(a) && (j == len(b) || suffix[i+1][j] >= suffix[i][j+1]):
			ops = append(ops, Line{Kind: Remove, Text: a[i]})
			i++
		default:
			ops = append(ops, Line{Kind: Add, Text: b[j]})
			j++
		}
	}
	return ops
}

// hunks groups an edit script into hunks. Changes separated by at most twice
// ContextLines unchanged lines share a hunk.
func hunks(ops []Line) []Hunk {
	var out []Hunk

	oldLine, newLine := 1, 1
	var cur *Hunk
	lastChange := -1

	for idx, op := range ops {
		if op.Kind != Context {
			if cur == nil || idx-lastChange-1 > 2*ContextLines {
				if cur != nil {
					trimTrailingContext(cur, lastChange, idx)
					out = append(out, *cur)
				}
				cur = startHunk(ops, idx, oldLine, newLine)
			}
			lastChange = idx
		}
		if cur != nil {
			cur.Lines = append(cur.Lines, op)
			countLine(cur, op.Kind)
		}

		if op.Kind != Add {
			oldLine++
		}
		if op.Kind != Remove {
			newLine++
		}
	}

	if cur != nil {
		trimTrailingContext(cur, lastChange, len(ops))
		out = append(out, *cur)
	}
	return out
}

// startHunk opens a hunk at ops[idx] with up to ContextLines of leading
// context. oldLine and newLine are the line numbers of ops[idx].
func startHunk(ops []Line, idx, oldLine, newLine int) *Hunk {
	from := max(idx-ContextLines, 0)
	h := &Hunk{
		OldStart: oldLine - (idx - from),
		NewStart: newLine - (idx - from),
	}
	for _, op := range ops[from:idx] {
		h.Lines = append(h.Lines, op)
		countLine(h, op.Kind)
	}
	return h
}

// trimTrailingContext drops context beyond ContextLines after the hunk's last
// change. next is the index of the first op not yet considered.
func trimTrailingContext(h *Hunk, lastChange, next int) {
	extra := next - lastChange - 1 - ContextLines
	if extra <= 0 {
		return
	}
	h.Lines = h.Lines[:len(h.Lines)-extra]
	h.OldCount -= extra
	h.NewCount -= extra
}

func countLine(h *Hunk, kind Kind) {
	switch kind {
	case Context:
		h.OldCount++
		h.NewCount++
	case Remove:
		h.OldCount++
	case Add:
		h.NewCount++
	}
}
