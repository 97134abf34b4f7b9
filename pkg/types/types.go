// Package types contains shared data structures used across the application.
package types

// TimestampLayout is the ISO-8601 layout, with microseconds, used for every
// timestamp the tool writes.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// PatternRecord is a named entry of the built-in pattern library
type PatternRecord struct {
	Name        string
	Pattern     string
	Description string
	Example     string
}

// HistoryEntry records one successful pattern test
type HistoryEntry struct {
	Pattern    string `json:"pattern"`
	TestString string `json:"test_string"`
	Flags      int    `json:"flags"` // engine.Flags bits
	Timestamp  string `json:"timestamp"`
}

// FavoriteEntry is the stored value of a favorite pattern
type FavoriteEntry struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

// Favorite pairs a favorite with its name for listing
type Favorite struct {
	Name string
	FavoriteEntry
}
