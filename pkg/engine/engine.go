// Package engine compiles and runs user patterns.
//
// Matching is delegated to regexp2, a backtracking engine compatible with
// Perl-style syntax (lookarounds, backreferences, (?P<name>...) groups).
// All positions reported by this package are character (rune) offsets.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Flags is a bitmask of matching modes. The values match the ones stored in
// history documents.
type Flags int

const (
	IgnoreCase Flags = 2
	Multiline  Flags = 8
	DotAll     Flags = 16
)

// NewFlags builds a bitmask from individual switches.
func NewFlags(ignoreCase, multiline, dotAll bool) Flags {
	var f Flags
	if ignoreCase {
		f |= IgnoreCase
	}
	if multiline {
		f |= Multiline
	}
	if dotAll {
		f |= DotAll
	}
	return f
}

// String returns a readable list of the set flags, or "None".
func (f Flags) String() string {
	var names []string
	if f&IgnoreCase != 0 {
		names = append(names, "IGNORECASE")
	}
	if f&Multiline != 0 {
		names = append(names, "MULTILINE")
	}
	if f&DotAll != 0 {
		names = append(names, "DOTALL")
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

func (f Flags) options() regexp2.RegexOptions {
	// RE2 enables the (?P<name>...) group syntax.
	opts := regexp2.RegexOptions(regexp2.RE2)
	if f&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if f&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&DotAll != 0 {
		opts |= regexp2.Singleline
	}
	return opts
}

// SyntaxError reports a pattern the engine refused to compile.
type SyntaxError struct {
	Pattern string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid regex pattern: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// MatchError reports a failure while running a compiled pattern, typically
// an exceeded match timeout.
type MatchError struct {
	Pattern string
	Err     error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("matching %q failed: %v", e.Pattern, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

// Match is a single match of a pattern.
type Match struct {
	// Start and End form the half-open span [Start, End).
	Start int
	End   int
	Text  string
	// Groups holds every capturing group in group-number order. A nil entry
	// is a group that did not participate in the match.
	Groups []*string
	// Named holds the subset of Groups that carry a name.
	Named map[string]*string
}

// Option configures a compiled Pattern.
type Option func(*Pattern)

// WithTimeout bounds the time a single match attempt may take. Zero or a
// negative duration leaves matching unbounded.
func WithTimeout(d time.Duration) Option {
	return func(p *Pattern) {
		if d > 0 {
			p.re.MatchTimeout = d
		}
	}
}

// Pattern is a compiled pattern.
type Pattern struct {
	source string
	flags  Flags
	re     *regexp2.Regexp
}

// Compile compiles pattern with the given flags. The pattern text itself is
// never modified; flags are applied as engine options.
func Compile(pattern string, flags Flags, opts ...Option) (*Pattern, error) {
	re, err := regexp2.Compile(pattern, flags.options())
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Err: err}
	}

	p := &Pattern{
		source: pattern,
		flags:  flags,
		re:     re,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// Flags returns the flags the pattern was compiled with.
func (p *Pattern) Flags() Flags {
	return p.flags
}

// FindAll returns all non-overlapping matches, left to right. After a
// zero-length match the scan resumes one character further.
func (p *Pattern) FindAll(text string) ([]Match, error) {
	var matches []Match

	m, err := p.re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = p.re.FindNextMatch(m) {
		matches = append(matches, convert(m))
	}
	if err != nil {
		return nil, &MatchError{Pattern: p.source, Err: err}
	}

	return matches, nil
}

// Strings returns the matched text of every match.
func Strings(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}

// Split splits text around matches of the pattern. Text before the first
// and after the last delimiter is always returned, even when empty, and the
// captured groups of each delimiter are inserted between the parts. A
// positive maxSplits limits the number of splits.
func (p *Pattern) Split(text string, maxSplits int) ([]string, error) {
	matches, err := p.FindAll(text)
	if err != nil {
		return nil, err
	}

	runes := []rune(text)
	parts := make([]string, 0, len(matches)+1)
	last := 0
	for i, m := range matches {
		if maxSplits > 0 && i >= maxSplits {
			break
		}
		parts = append(parts, string(runes[last:m.Start]))
		for _, g := range m.Groups {
			if g == nil {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, *g)
		}
		last = m.End
	}
	parts = append(parts, string(runes[last:]))

	return parts, nil
}

// Replace substitutes the first limit matches (all when limit <= 0) with
// replacement and returns the result and the number of substitutions.
//
// The replacement may reference groups as $1, ${1} or ${name}. The
// backslash forms \1 and \g<name> are accepted as well.
func (p *Pattern) Replace(text, replacement string, limit int) (string, int, error) {
	matches, err := p.FindAll(text)
	if err != nil {
		return "", 0, err
	}

	count := -1
	replaced := len(matches)
	if limit > 0 {
		count = limit
		replaced = min(limit, replaced)
	}
	if replaced == 0 {
		return text, 0, nil
	}

	out, err := p.re.Replace(text, translateReplacement(replacement), -1, count)
	if err != nil {
		return "", 0, &MatchError{Pattern: p.source, Err: err}
	}

	return out, replaced, nil
}

func convert(m *regexp2.Match) Match {
	out := Match{
		Start: m.Index,
		End:   m.Index + m.Length,
		Text:  m.String(),
	}

	groups := m.Groups()
	if len(groups) <= 1 {
		return out
	}

	out.Groups = make([]*string, 0, len(groups)-1)
	for _, g := range groups[1:] {
		value := groupValue(g)
		out.Groups = append(out.Groups, value)
		if isNumber(g.Name) {
			continue
		}
		if out.Named == nil {
			out.Named = make(map[string]*string)
		}
		out.Named[g.Name] = value
	}

	return out
}

func groupValue(g regexp2.Group) *string {
	if len(g.Captures) == 0 {
		return nil
	}
	s := g.String()
	return &s
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// translateReplacement rewrites backslash group references into the
// engine's ${...} form. Everything else is passed through.
func translateReplacement(repl string) string {
	if !strings.Contains(repl, `\`) {
		return repl
	}

	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c != '\\' || i+1 == len(repl) {
			b.WriteByte(c)
			continue
		}

		next := repl[i+1]
		switch {
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(repl) && j < i+3 && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			b.WriteString("${" + repl[i+1:j] + "}")
			i = j - 1
		case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
			end := strings.IndexByte(repl[i+3:], '>')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("${" + repl[i+3:i+3+end] + "}")
			i += 3 + end
		case next == '\\':
			b.WriteByte('\\')
			i++
		case next == 'n':
			b.WriteByte('\n')
			i++
		case next == 't':
			b.WriteByte('\t')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
