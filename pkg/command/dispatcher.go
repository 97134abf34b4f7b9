package command

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/Veraticus/regexlab/pkg/engine"
	"github.com/Veraticus/regexlab/pkg/interfaces"
	"github.com/Veraticus/regexlab/pkg/library"
	"github.com/Veraticus/regexlab/pkg/report"
	"github.com/Veraticus/regexlab/pkg/status"
	"github.com/Veraticus/regexlab/pkg/store"
	"github.com/Veraticus/regexlab/pkg/types"
)

// Display limits, in characters.
const (
	testStringDisplay = 100
	highlightDisplay  = 200
	previewDisplay    = 200
	partDisplay       = 100
	historyDisplay    = 80
)

// Dispatcher executes parsed commands against a store and prints the
// outcome.
type Dispatcher struct {
	store        interfaces.Store
	printer      *status.Printer
	clock        interfaces.Clock
	logger       *log.Logger
	debug        bool
	matchTimeout time.Duration
	exportFormat report.Format
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock sets the clock used for history and export timestamps.
func WithClock(c interfaces.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = c
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithDebug enables debug diagnostics.
func WithDebug(debug bool) Option {
	return func(d *Dispatcher) {
		d.debug = debug
	}
}

// WithMatchTimeout bounds each match attempt.
func WithMatchTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.matchTimeout = timeout
	}
}

// WithExportFormat sets the format used when export is given no --format.
func WithExportFormat(f report.Format) Option {
	return func(d *Dispatcher) {
		d.exportFormat = f
	}
}

// NewDispatcher creates a dispatcher writing through printer.
func NewDispatcher(s interfaces.Store, printer *status.Printer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:        s,
		printer:      printer,
		clock:        interfaces.SystemClock{},
		logger:       log.New(io.Discard, "", 0),
		exportFormat: report.FormatJSON,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run parses argv and executes the result, returning the exit code.
func (d *Dispatcher) Run(argv []string) int {
	cmd, err := Parse(argv)
	if err != nil {
		d.printer.Fail("%v", err)
		d.printer.Printf("Run 'regexlab help' for usage.\n")
		return ExitError
	}
	return d.Execute(cmd)
}

// Execute runs cmd. Errors are reported as a single status line and turned
// into ExitError.
func (d *Dispatcher) Execute(cmd Command) int {
	d.debugf("executing %s", cmd.Verb())

	var err error
	switch c := cmd.(type) {
	case TestCmd:
		err = d.runTest(c)
	case LibraryListCmd:
		d.runLibraryList()
	case LibraryTestCmd:
		err = d.runLibraryTest(c)
	case FindCmd:
		err = d.runFind(c)
	case ReplaceCmd:
		err = d.runReplace(c)
	case SplitCmd:
		err = d.runSplit(c)
	case HistoryCmd:
		err = d.runHistory(c)
	case FavoriteAddCmd:
		err = d.runFavoriteAdd(c)
	case FavoriteListCmd:
		err = d.runFavoriteList()
	case ExportCmd:
		err = d.runExport(c)
	case HelpCmd:
		d.printer.Printf("%s", Usage(c.Topic))
	default:
		err = fmt.Errorf("unsupported command %T", cmd)
	}

	if err != nil {
		d.debugf("%s failed: %v", cmd.Verb(), err)
		d.printer.Fail("%s", describeError(err))
		return ExitError
	}
	return ExitOK
}

func describeError(err error) string {
	var (
		syntaxErr  *engine.SyntaxError
		unknownErr *library.UnknownPatternError
		exportErr  *report.ExportIOError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Invalid regex pattern: %v", syntaxErr.Err)
	case errors.As(err, &unknownErr):
		return fmt.Sprintf("Pattern '%s' not found in library. Use 'regexlab library list' to see available patterns", unknownErr.Name)
	case errors.As(err, &exportErr):
		return fmt.Sprintf("Export failed: %v", exportErr)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// resolvePattern maps "@name" to the saved favorite "name". Anything else,
// including "@name" without a matching favorite, is used literally.
func (d *Dispatcher) resolvePattern(arg string) (string, error) {
	if len(arg) < 2 || !strings.HasPrefix(arg, "@") {
		return arg, nil
	}

	entry, ok, err := d.store.Favorite(arg[1:])
	if err != nil {
		return "", fmt.Errorf("failed to read favorites: %w", err)
	}
	if !ok {
		return arg, nil
	}
	d.debugf("using favorite %s: %s", arg[1:], entry.Pattern)
	return entry.Pattern, nil
}

func (d *Dispatcher) compile(arg string, flags engine.Flags) (*engine.Pattern, error) {
	pattern, err := d.resolvePattern(arg)
	if err != nil {
		return nil, err
	}
	return engine.Compile(pattern, flags, engine.WithTimeout(d.matchTimeout))
}

func (d *Dispatcher) runTest(c TestCmd) error {
	p, err := d.compile(c.Pattern, c.Flags)
	if err != nil {
		return err
	}
	return d.testPattern(p, c.Text, c.ShowGroups)
}

// testPattern reports the matches of p in text and records the test in the
// history.
func (d *Dispatcher) testPattern(p *engine.Pattern, text string, showGroups bool) error {
	matches, err := p.FindAll(text)
	if err != nil {
		return err
	}

	d.printer.Blank()
	d.printer.OK("Pattern: %s", p)
	d.printer.OK("Flags: %s", p.Flags())
	d.printer.OK("Test String: %s", report.Truncate(text, testStringDisplay))
	d.printer.Rule()

	if len(matches) == 0 {
		d.printer.Fail("No matches found")
	} else {
		d.printer.OK("%d match(es) found", len(matches))
		d.printer.Blank()
		if err := report.WriteSummaries(d.printer.Writer(), report.Describe(matches, showGroups)); err != nil {
			return err
		}
		d.printer.Printf("Highlighted text:\n  %s\n\n", report.Ellipsize(report.Highlight(text, matches), highlightDisplay))
	}

	d.recordHistory(p, text)
	return nil
}

func (d *Dispatcher) recordHistory(p *engine.Pattern, text string) {
	entry := types.HistoryEntry{
		Pattern:    p.String(),
		TestString: text,
		Flags:      int(p.Flags()),
		Timestamp:  d.clock.Now().Format(types.TimestampLayout),
	}
	if err := d.store.AppendHistory(entry); err != nil {
		d.logger.Printf("warning: failed to record history: %v", err)
	}
}

func (d *Dispatcher) runLibraryList() {
	d.printer.Blank()
	d.printer.OK("RegexLab Pattern Library:")
	d.printer.Rule()

	for _, rec := range library.Sorted() {
		d.printer.Printf("\n%s:\n  Pattern: %s\n  Description: %s\n  Example: %s\n",
			rec.Name, rec.Pattern, rec.Description, rec.Example)
	}
}

func (d *Dispatcher) runLibraryTest(c LibraryTestCmd) error {
	rec, err := library.Get(c.Name)
	if err != nil {
		return err
	}

	p, err := engine.Compile(rec.Pattern, 0, engine.WithTimeout(d.matchTimeout))
	if err != nil {
		return err
	}

	d.printer.OK("Testing library pattern: %s", rec.Name)
	return d.testPattern(p, c.Text, c.ShowGroups)
}

func (d *Dispatcher) runFind(c FindCmd) error {
	p, err := d.compile(c.Pattern, c.Flags)
	if err != nil {
		return err
	}
	matches, err := p.FindAll(c.Text)
	if err != nil {
		return err
	}

	d.printer.Blank()
	d.printer.OK("Found %d match(es)", len(matches))
	for i, m := range matches {
		d.printer.Printf("  %d. %s\n", i+1, m.Text)
	}
	return nil
}

func (d *Dispatcher) runReplace(c ReplaceCmd) error {
	p, err := d.compile(c.Pattern, c.Flags)
	if err != nil {
		return err
	}
	result, replaced, err := p.Replace(c.Text, c.Replacement, c.Count)
	if err != nil {
		return err
	}

	d.printer.Blank()
	d.printer.OK("Would replace %d occurrence(s)", replaced)
	d.printer.Printf("\nOriginal:\n  %s\n", report.Truncate(c.Text, previewDisplay))
	d.printer.Printf("\nResult:\n  %s\n", report.Truncate(result, previewDisplay))
	return nil
}

func (d *Dispatcher) runSplit(c SplitCmd) error {
	p, err := d.compile(c.Pattern, c.Flags)
	if err != nil {
		return err
	}
	parts, err := p.Split(c.Text, c.Max)
	if err != nil {
		return err
	}

	d.printer.Blank()
	d.printer.OK("Split into %d part(s):", len(parts))
	for i, part := range parts {
		d.printer.Printf("  %d. %s\n", i+1, report.Truncate(part, partDisplay))
	}
	return nil
}

func (d *Dispatcher) runHistory(c HistoryCmd) error {
	history, err := d.store.LoadHistory()
	if err != nil {
		var corrupt *store.CorruptStoreError
		if !errors.As(err, &corrupt) {
			return err
		}
		d.logger.Printf("warning: %v; ignoring history", err)
		history = nil
	}

	if len(history) == 0 {
		d.printer.Blank()
		d.printer.Fail("No history found")
		return nil
	}

	n := c.Count
	if n <= 0 || n > len(history) {
		n = len(history)
	}

	d.printer.Blank()
	d.printer.OK("Last %d Pattern(s):", n)
	d.printer.Rule()

	for i := 0; i < n; i++ {
		entry := history[len(history)-1-i]
		d.printer.Printf("\n%d. [%s]\n", i+1, displayTime(entry.Timestamp, "2006-01-02 15:04"))
		d.printer.Printf("   Pattern: %s\n", entry.Pattern)
		if entry.Flags != 0 {
			d.printer.Printf("   Flags: %s\n", engine.Flags(entry.Flags))
		}
		d.printer.Printf("   Test: %s\n", report.Truncate(entry.TestString, historyDisplay))
	}
	return nil
}

func (d *Dispatcher) runFavoriteAdd(c FavoriteAddCmd) error {
	if err := d.store.AddFavorite(c.Name, c.Pattern, c.Description); err != nil {
		return err
	}
	d.printer.OK("Added '%s' to favorites", c.Name)
	return nil
}

func (d *Dispatcher) runFavoriteList() error {
	favorites, err := d.store.ListFavorites()
	if err != nil {
		return err
	}

	if len(favorites) == 0 {
		d.printer.Blank()
		d.printer.Fail("No favorites found")
		return nil
	}

	d.printer.Blank()
	d.printer.OK("Favorite Patterns:")
	d.printer.Rule()

	for _, f := range favorites {
		d.printer.Printf("\n%s (added %s):\n  Pattern: %s\n", f.Name, displayTime(f.Created, "2006-01-02"), f.Pattern)
		if f.Description != "" {
			d.printer.Printf("  Description: %s\n", f.Description)
		}
	}
	return nil
}

func (d *Dispatcher) runExport(c ExportCmd) error {
	p, err := d.compile(c.Pattern, c.Flags)
	if err != nil {
		return err
	}
	matches, err := p.FindAll(c.Text)
	if err != nil {
		return err
	}

	format := c.Format
	if format == "" {
		format = d.exportFormat
	}

	data, err := report.Export(p.String(), engine.Strings(matches), format, d.clock.Now())
	if err != nil {
		return err
	}
	if err := report.WriteFile(c.Output, data); err != nil {
		return err
	}

	d.printer.OK("Exported %d match(es) to %s", len(matches), c.Output)
	return nil
}

func displayTime(stamp, layout string) string {
	t, err := store.ParseTimestamp(stamp)
	if err != nil {
		return stamp
	}
	return t.Format(layout)
}

func (d *Dispatcher) debugf(format string, args ...any) {
	if d.debug {
		d.logger.Printf("debug: "+format, args...)
	}
}
