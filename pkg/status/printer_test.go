package status

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/creack/pty"
)

func TestPrinterPlain(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinter(buf, false)

	p.OK("Found %d match(es)", 2)
	p.Fail("Invalid regex pattern: %s", "missing )")
	p.Printf("  %d. %s\n", 1, "abc")
	p.Blank()
	p.Rule()

	want := "[OK] Found 2 match(es)\n" +
		"[X] Invalid regex pattern: missing )\n" +
		"  1. abc\n" +
		"\n" +
		strings.Repeat("-", 70) + "\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrinterColor(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinter(buf, true)

	p.OK("done")
	p.Fail("broken")

	out := buf.String()
	if !strings.Contains(out, colorGreen+"[OK]"+colorReset+" done") {
		t.Errorf("expected green OK marker, got %q", out)
	}
	if !strings.Contains(out, colorRed+"[X]"+colorReset+" broken") {
		t.Errorf("expected red X marker, got %q", out)
	}
}

func TestPrinterWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	if NewPrinter(buf, false).Writer() != buf {
		t.Error("expected Writer to return the underlying writer")
	}
}

func TestIsTerminal(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("terminal detection is only implemented on linux")
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	defer func() { _ = ptmx.Close() }()
	defer func() { _ = tty.Close() }()

	if !IsTerminal(tty) {
		t.Error("expected pty to be detected as a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if IsTerminal(f) {
		t.Error("expected regular file not to be a terminal")
	}
	if IsTerminal(nil) {
		t.Error("expected nil file not to be a terminal")
	}
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer func() { _ = f.Close() }()

	t.Setenv("NO_COLOR", "")

	if !ColorEnabled("always", f) {
		t.Error("expected always to enable color")
	}
	if ColorEnabled("never", f) {
		t.Error("expected never to disable color")
	}
	if ColorEnabled("auto", f) {
		t.Error("expected auto to disable color for a regular file")
	}

	if runtime.GOOS == "linux" {
		ptmx, tty, err := pty.Open()
		if err != nil {
			t.Skipf("pty not available: %v", err)
		}
		defer func() { _ = ptmx.Close() }()
		defer func() { _ = tty.Close() }()

		if !ColorEnabled("auto", tty) {
			t.Error("expected auto to enable color on a terminal")
		}

		t.Setenv("NO_COLOR", "1")
		if ColorEnabled("auto", tty) {
			t.Error("expected NO_COLOR to disable color")
		}
	}
}
