package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var exportTime = time.Date(2026, 10, 19, 14, 30, 5, 123456000, time.UTC)

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"json", "csv", "txt", "JSON"} {
		if _, err := ParseFormat(f); err != nil {
			t.Errorf("ParseFormat(%q) returned error: %v", f, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestExportJSON(t *testing.T) {
	data, err := Export(`\d+`, []string{"123", "456"}, FormatJSON, exportTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if raw["pattern"] != `\d+` {
		t.Errorf("expected pattern to round-trip, got %v", raw["pattern"])
	}
	if raw["match_count"] != float64(2) {
		t.Errorf("expected match_count 2, got %v", raw["match_count"])
	}
	if raw["exported"] != "2026-10-19T14:30:05.123456" {
		t.Errorf("unexpected timestamp %v", raw["exported"])
	}
	if !strings.Contains(string(data), `"pattern": "\\d+"`) {
		t.Errorf("expected escaped backslash in document:\n%s", data)
	}
}

func TestExportJSONNoMatches(t *testing.T) {
	data, err := Export(`x`, nil, FormatJSON, exportTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"matches": []`) {
		t.Errorf("expected empty matches array, got:\n%s", data)
	}
}

func TestExportCSV(t *testing.T) {
	data, err := Export(`.`, []string{"a,b", `say "hi"`}, FormatCSV, exportTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "match\n\"a,b\"\n\"say \"\"hi\"\"\"\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}
}

func TestExportTXT(t *testing.T) {
	data, err := Export(`.`, []string{"one", "two"}, FormatTXT, exportTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("unexpected txt export %q", data)
	}
}

func TestExportRoundTrip(t *testing.T) {
	inputs := [][]string{
		{"123", "456"},
		{"with,comma", `with "quote"`, `back\slash`},
		{"", "x", ""},
		{},
	}

	for _, format := range Formats {
		for _, matches := range inputs {
			data, err := Export(`p`, matches, format, exportTime)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", format, err)
			}
			got, err := ParseExport(data, format)
			if err != nil {
				t.Fatalf("%s: unexpected parse error: %v", format, err)
			}
			if diff := cmp.Diff(matches, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("%s round trip mismatch (-want +got):\n%s", format, diff)
			}
		}
	}
}

func TestExportRoundTripLineBreaks(t *testing.T) {
	matches := []string{"a\nb", "c\r\nd"}

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatJSON, []string{"a\nb", "c\r\nd"}},
		// Quoted CSV fields keep line breaks but normalize \r\n to \n.
		{FormatCSV, []string{"a\nb", "c\nd"}},
		// One match per line cannot represent a line break inside a match.
		{FormatTXT, []string{"a", "b", "c\r", "d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			data, err := Export(`(?s).+`, matches, tt.format, exportTime)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := ParseExport(data, tt.format)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.txt")

	if err := WriteFile(path, []byte("a\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if string(data) != "a\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriteFileInvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist.json")

	err := WriteFile(path, []byte("{}"))
	var ioErr *ExportIOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *ExportIOError, got %v", err)
	}
	if ioErr.Path != path {
		t.Errorf("expected path %s, got %s", path, ioErr.Path)
	}
}
