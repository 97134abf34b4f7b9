package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/Veraticus/regexlab/pkg/engine"
	"github.com/Veraticus/regexlab/pkg/report"
)

// UsageError reports malformed command-line arguments.
type UsageError struct {
	Verb string
	Msg  string
}

func (e *UsageError) Error() string {
	if e.Verb == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Verb, e.Msg)
}

// errHelp is returned by parseArgs when -h/--help was given.
var errHelp = errors.New("help requested")

// Parse turns the arguments following the program name into a Command.
func Parse(argv []string) (Command, error) {
	if len(argv) == 0 {
		return HelpCmd{}, nil
	}

	verb, rest := argv[0], argv[1:]
	var (
		cmd Command
		err error
	)
	switch verb {
	case "test":
		cmd, err = parseTest(rest)
	case "library":
		cmd, err = parseLibrary(rest)
	case "find":
		cmd, err = parseFind(rest)
	case "replace":
		cmd, err = parseReplace(rest)
	case "split":
		cmd, err = parseSplit(rest)
	case "history":
		cmd, err = parseHistory(rest)
	case "favorite":
		cmd, err = parseFavorite(rest)
	case "export":
		cmd, err = parseExport(rest)
	case "help", "-h", "--help":
		if len(rest) > 0 {
			return HelpCmd{Topic: strings.Join(rest, " ")}, nil
		}
		return HelpCmd{}, nil
	default:
		return nil, &UsageError{Msg: fmt.Sprintf("unknown command %q", verb)}
	}

	if errors.Is(err, errHelp) {
		return HelpCmd{Topic: helpTopic(verb, rest)}, nil
	}
	return cmd, err
}

func helpTopic(verb string, rest []string) string {
	if (verb == "library" || verb == "favorite") && len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		return verb + " " + rest[0]
	}
	return verb
}

func newFlagSet(verb string) *flag.FlagSet {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// matchFlags registers -i, -m and -s on fs.
type matchFlags struct {
	ignoreCase bool
	multiline  bool
	dotAll     bool
}

func addMatchFlags(fs *flag.FlagSet) *matchFlags {
	mf := &matchFlags{}
	fs.BoolVarP(&mf.ignoreCase, "ignorecase", "i", false, "Case-insensitive matching")
	fs.BoolVarP(&mf.multiline, "multiline", "m", false, "^ and $ match at line boundaries")
	fs.BoolVarP(&mf.dotAll, "dotall", "s", false, "Dot matches all characters including newlines")
	return mf
}

func (mf *matchFlags) flags() engine.Flags {
	return engine.NewFlags(mf.ignoreCase, mf.multiline, mf.dotAll)
}

// parseArgs parses args and checks the positional arguments against names.
func parseArgs(fs *flag.FlagSet, verb string, args []string, names ...string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, &UsageError{Verb: verb, Msg: err.Error()}
	}

	if fs.NArg() != len(names) {
		if len(names) == 0 {
			return nil, &UsageError{Verb: verb, Msg: fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " "))}
		}
		return nil, &UsageError{
			Verb: verb,
			Msg:  fmt.Sprintf("expected %d argument(s) <%s>, got %d", len(names), strings.Join(names, "> <"), fs.NArg()),
		}
	}

	return fs.Args(), nil
}

func parseTest(args []string) (Command, error) {
	fs := newFlagSet("test")
	mf := addMatchFlags(fs)
	groups := fs.BoolP("groups", "g", false, "Show capturing groups")

	pos, err := parseArgs(fs, "test", args, "pattern", "text")
	if err != nil {
		return nil, err
	}

	return TestCmd{
		Pattern:    pos[0],
		Text:       pos[1],
		Flags:      mf.flags(),
		ShowGroups: *groups,
	}, nil
}

func parseLibrary(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, &UsageError{Verb: "library", Msg: "expected subcommand: list or test"}
	}

	switch args[0] {
	case "list":
		fs := newFlagSet("library list")
		if _, err := parseArgs(fs, "library list", args[1:]); err != nil {
			return nil, err
		}
		return LibraryListCmd{}, nil
	case "test":
		fs := newFlagSet("library test")
		groups := fs.BoolP("groups", "g", false, "Show capturing groups")
		pos, err := parseArgs(fs, "library test", args[1:], "name", "text")
		if err != nil {
			return nil, err
		}
		return LibraryTestCmd{Name: pos[0], Text: pos[1], ShowGroups: *groups}, nil
	case "-h", "--help":
		return nil, errHelp
	default:
		return nil, &UsageError{Verb: "library", Msg: fmt.Sprintf("unknown subcommand %q (use list or test)", args[0])}
	}
}

func parseFind(args []string) (Command, error) {
	fs := newFlagSet("find")
	mf := addMatchFlags(fs)

	pos, err := parseArgs(fs, "find", args, "pattern", "text")
	if err != nil {
		return nil, err
	}

	return FindCmd{Pattern: pos[0], Text: pos[1], Flags: mf.flags()}, nil
}

func parseReplace(args []string) (Command, error) {
	fs := newFlagSet("replace")
	mf := addMatchFlags(fs)
	count := fs.IntP("count", "c", 0, "Maximum number of replacements (0 = all)")

	pos, err := parseArgs(fs, "replace", args, "pattern", "replacement", "text")
	if err != nil {
		return nil, err
	}
	if *count < 0 {
		return nil, &UsageError{Verb: "replace", Msg: "--count must be non-negative"}
	}

	return ReplaceCmd{
		Pattern:     pos[0],
		Replacement: pos[1],
		Text:        pos[2],
		Flags:       mf.flags(),
		Count:       *count,
	}, nil
}

func parseSplit(args []string) (Command, error) {
	fs := newFlagSet("split")
	mf := addMatchFlags(fs)
	maxSplits := fs.Int("max", 0, "Maximum number of splits (0 = unlimited)")

	pos, err := parseArgs(fs, "split", args, "pattern", "text")
	if err != nil {
		return nil, err
	}
	if *maxSplits < 0 {
		return nil, &UsageError{Verb: "split", Msg: "--max must be non-negative"}
	}

	return SplitCmd{Pattern: pos[0], Text: pos[1], Flags: mf.flags(), Max: *maxSplits}, nil
}

func parseHistory(args []string) (Command, error) {
	fs := newFlagSet("history")
	count := fs.IntP("count", "n", 0, "Number of entries to show (0 = all)")

	if _, err := parseArgs(fs, "history", args); err != nil {
		return nil, err
	}
	if *count < 0 {
		return nil, &UsageError{Verb: "history", Msg: "--count must be non-negative"}
	}

	return HistoryCmd{Count: *count}, nil
}

func parseFavorite(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, &UsageError{Verb: "favorite", Msg: "expected subcommand: add or list"}
	}

	switch args[0] {
	case "add":
		fs := newFlagSet("favorite add")
		description := fs.String("description", "", "Pattern description")
		pos, err := parseArgs(fs, "favorite add", args[1:], "name", "pattern")
		if err != nil {
			return nil, err
		}
		return FavoriteAddCmd{Name: pos[0], Pattern: pos[1], Description: *description}, nil
	case "list":
		fs := newFlagSet("favorite list")
		if _, err := parseArgs(fs, "favorite list", args[1:]); err != nil {
			return nil, err
		}
		return FavoriteListCmd{}, nil
	case "-h", "--help":
		return nil, errHelp
	default:
		return nil, &UsageError{Verb: "favorite", Msg: fmt.Sprintf("unknown subcommand %q (use add or list)", args[0])}
	}
}

func parseExport(args []string) (Command, error) {
	fs := newFlagSet("export")
	mf := addMatchFlags(fs)
	format := fs.StringP("format", "f", "", "Output format: json, csv or txt (default json)")

	pos, err := parseArgs(fs, "export", args, "pattern", "text", "output")
	if err != nil {
		return nil, err
	}

	cmd := ExportCmd{Pattern: pos[0], Text: pos[1], Output: pos[2], Flags: mf.flags()}
	if *format != "" {
		f, err := report.ParseFormat(*format)
		if err != nil {
			return nil, &UsageError{Verb: "export", Msg: err.Error()}
		}
		cmd.Format = f
	}

	return cmd, nil
}
