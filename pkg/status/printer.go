// Package status writes the user-facing status lines of the command line.
package status

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Status classifies a status line
type Status int

const (
	StatusOK Status = iota
	StatusFailed
)

const (
	ruleWidth  = 70
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// prefix returns the marker printed in front of a status line
func (s Status) prefix(color bool) string {
	var marker, code string
	switch s {
	case StatusOK:
		marker, code = "[OK]", colorGreen
	default:
		marker, code = "[X]", colorRed
	}
	if !color {
		return marker
	}
	return code + marker + colorReset
}

// Printer writes status and plain lines to a writer. Write errors are
// ignored; there is nowhere better to report them.
type Printer struct {
	writer io.Writer
	color  bool
}

// NewPrinter creates a printer; color enables ANSI colored status markers
func NewPrinter(writer io.Writer, color bool) *Printer {
	return &Printer{
		writer: writer,
		color:  color,
	}
}

// Writer returns the underlying writer for block output
func (p *Printer) Writer() io.Writer {
	return p.writer
}

// Status writes a single status line
func (p *Printer) Status(s Status, format string, args ...any) {
	_, _ = fmt.Fprintf(p.writer, "%s %s\n", s.prefix(p.color), fmt.Sprintf(format, args...))
}

// OK writes a success line
func (p *Printer) OK(format string, args ...any) {
	p.Status(StatusOK, format, args...)
}

// Fail writes a failure line
func (p *Printer) Fail(format string, args ...any) {
	p.Status(StatusFailed, format, args...)
}

// Printf writes unprefixed output
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.writer, format, args...)
}

// Blank writes an empty line
func (p *Printer) Blank() {
	_, _ = fmt.Fprintln(p.writer)
}

// Rule writes a horizontal separator
func (p *Printer) Rule() {
	_, _ = fmt.Fprintln(p.writer, strings.Repeat("-", ruleWidth))
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty(f)
}

// ColorEnabled resolves a color mode ("auto", "always", "never") for output
// written to f
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return IsTerminal(f)
	}
}
