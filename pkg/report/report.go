// Package report renders match results for display and export.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/regexlab/pkg/engine"
)

// Markers placed around each match by Highlight.
const (
	OpenMarker  = ">>>"
	CloseMarker = "<<<"
)

// Highlight wraps every match in text with OpenMarker and CloseMarker.
// Matches must be ordered and non-overlapping, as engine.FindAll returns them.
func Highlight(text string, matches []engine.Match) string {
	runes := []rune(text)

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(string(runes[last:m.Start]))
		b.WriteString(OpenMarker)
		b.WriteString(string(runes[m.Start:m.End]))
		b.WriteString(CloseMarker)
		last = m.End
	}
	b.WriteString(string(runes[last:]))

	return b.String()
}

// Truncate shortens s to at most n characters, appending "..." when
// something was cut.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Ellipsize shortens s to exactly n characters, the last three being "...",
// when it is longer than n.
func Ellipsize(s string, n int) string {
	if n < 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// Summary describes one match for display.
type Summary struct {
	// Index is 1-based.
	Index int
	Start int
	End   int
	Text  string
	// Groups and Named are only filled when groups were requested.
	Groups []*string
	Named  map[string]*string
}

// Describe builds display summaries for matches.
func Describe(matches []engine.Match, withGroups bool) []Summary {
	summaries := make([]Summary, 0, len(matches))
	for i, m := range matches {
		s := Summary{
			Index: i + 1,
			Start: m.Start,
			End:   m.End,
			Text:  m.Text,
		}
		if withGroups {
			s.Groups = m.Groups
			s.Named = m.Named
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// WriteSummaries writes the summaries in a block-per-match layout.
func WriteSummaries(w io.Writer, summaries []Summary) error {
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "Match #%d:\n  Position: %d-%d\n  Matched: %s\n", s.Index, s.Start, s.End, strconv.Quote(s.Text)); err != nil {
			return err
		}
		if len(s.Groups) > 0 {
			if _, err := fmt.Fprintf(w, "  Groups: %s\n", FormatGroups(s.Groups)); err != nil {
				return err
			}
		}
		if len(s.Named) > 0 {
			if _, err := fmt.Fprintf(w, "  Named Groups: %s\n", FormatNamed(s.Named)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups renders groups as a tuple; groups that did not participate
// are shown as null.
func FormatGroups(groups []*string) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = groupString(g)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatNamed renders named groups ordered by name.
func FormatNamed(named map[string]*string) string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + groupString(named[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func groupString(g *string) string {
	if g == nil {
		return "null"
	}
	return strconv.Quote(*g)
}
