package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/regexlab/pkg/fsutil"
	"github.com/Veraticus/regexlab/pkg/types"
)

// Format is an export document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatTXT}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV, FormatTXT:
		return f, nil
	default:
		return "", fmt.Errorf("invalid export format %q (use json, csv or txt)", s)
	}
}

// ExportIOError reports a filesystem failure while writing an export.
type ExportIOError struct {
	Path string
	Err  error
}

func (e *ExportIOError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *ExportIOError) Unwrap() error {
	return e.Err
}

// Document is the JSON export layout.
type Document struct {
	Pattern    string   `json:"pattern"`
	MatchCount int      `json:"match_count"`
	Matches    []string `json:"matches"`
	Exported   string   `json:"exported"`
}

// Export serializes matched strings in the given format.
func Export(pattern string, matches []string, format Format, now time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return exportJSON(pattern, matches, now)
	case FormatCSV:
		return exportCSV(matches)
	case FormatTXT:
		return exportTXT(matches), nil
	default:
		return nil, fmt.Errorf("invalid export format %q", format)
	}
}

func exportJSON(pattern string, matches []string, now time.Time) ([]byte, error) {
	if matches == nil {
		matches = []string{}
	}
	doc := Document{
		Pattern:    pattern,
		MatchCount: len(matches),
		Matches:    matches,
		Exported:   now.Format(types.TimestampLayout),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(matches []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"match"}); err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m == "" {
			// A bare empty line would be skipped by CSV readers.
			w.Flush()
			buf.WriteString("\"\"\n")
			continue
		}
		if err := w.Write([]string{m}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	return buf.Bytes(), nil
}

func exportTXT(matches []string) []byte {
	if len(matches) == 0 {
		return nil
	}
	return []byte(strings.Join(matches, "\n") + "\n")
}

// ParseExport reads the matched strings back out of an export document.
func ParseExport(data []byte, format Format) ([]string, error) {
	switch format {
	case FormatJSON:
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json export: %w", err)
		}
		return doc.Matches, nil
	case FormatCSV:
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv export: %w", err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("csv export has no header")
		}
		matches := make([]string, 0, len(records)-1)
		for _, rec := range records[1:] {
			matches = append(matches, rec[0])
		}
		return matches, nil
	case FormatTXT:
		if len(data) == 0 {
			return []string{}, nil
		}
		return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
	default:
		return nil, fmt.Errorf("invalid export format %q", format)
	}
}

// WriteFile writes an export document to path without ever leaving a
// partial file behind.
func WriteFile(path string, data []byte) error {
	if err := fsutil.WriteAtomic(path, data, 0o644); err != nil {
		return &ExportIOError{Path: path, Err: err}
	}
	return nil
}
