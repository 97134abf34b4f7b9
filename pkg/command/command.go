// Package command parses and executes regexlab invocations.
//
// Every verb is a distinct Command type; Dispatcher.Execute resolves them
// with a type switch.
package command

import (
	"github.com/Veraticus/regexlab/pkg/engine"
	"github.com/Veraticus/regexlab/pkg/report"
)

// Exit codes returned by Dispatcher.Execute.
const (
	ExitOK    = 0
	ExitError = 1
)

// Command is a parsed invocation.
type Command interface {
	Verb() string
}

// TestCmd reports every match of a pattern and records it in the history.
type TestCmd struct {
	Pattern    string
	Text       string
	Flags      engine.Flags
	ShowGroups bool
}

// LibraryListCmd lists the built-in patterns.
type LibraryListCmd struct{}

// LibraryTestCmd runs a built-in pattern like TestCmd.
type LibraryTestCmd struct {
	Name       string
	Text       string
	ShowGroups bool
}

// FindCmd prints every matched string.
type FindCmd struct {
	Pattern string
	Text    string
	Flags   engine.Flags
}

// ReplaceCmd previews a substitution.
type ReplaceCmd struct {
	Pattern     string
	Replacement string
	Text        string
	Flags       engine.Flags
	// Count limits the substitutions; zero means all.
	Count int
}

// SplitCmd splits text around the pattern.
type SplitCmd struct {
	Pattern string
	Text    string
	Flags   engine.Flags
	// Max limits the splits; zero means unlimited.
	Max int
}

// HistoryCmd prints recent history entries, newest first.
type HistoryCmd struct {
	// Count limits the entries shown; zero means all.
	Count int
}

// FavoriteAddCmd stores a named pattern.
type FavoriteAddCmd struct {
	Name        string
	Pattern     string
	Description string
}

// FavoriteListCmd lists stored favorites.
type FavoriteListCmd struct{}

// ExportCmd writes matched strings to a file.
type ExportCmd struct {
	Pattern string
	Text    string
	Output  string
	Flags   engine.Flags
	// Format is empty when the configured default applies.
	Format report.Format
}

// HelpCmd prints usage, for a single verb when Topic is set.
type HelpCmd struct {
	Topic string
}

func (TestCmd) Verb() string         { return "test" }
func (LibraryListCmd) Verb() string  { return "library list" }
func (LibraryTestCmd) Verb() string  { return "library test" }
func (FindCmd) Verb() string         { return "find" }
func (ReplaceCmd) Verb() string      { return "replace" }
func (SplitCmd) Verb() string        { return "split" }
func (HistoryCmd) Verb() string      { return "history" }
func (FavoriteAddCmd) Verb() string  { return "favorite add" }
func (FavoriteListCmd) Verb() string { return "favorite list" }
func (ExportCmd) Verb() string       { return "export" }
func (HelpCmd) Verb() string         { return "help" }
