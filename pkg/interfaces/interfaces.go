// Package interfaces defines the core interfaces used throughout the application.
package interfaces

import (
	"time"

	"github.com/Veraticus/regexlab/pkg/types"
)

// HistoryStore persists the bounded log of tested patterns.
type HistoryStore interface {
	LoadHistory() ([]types.HistoryEntry, error)
	AppendHistory(entry types.HistoryEntry) error
}

// FavoriteStore persists user-named patterns.
type FavoriteStore interface {
	AddFavorite(name, pattern, description string) error
	ListFavorites() ([]types.Favorite, error)
	Favorite(name string) (types.FavoriteEntry, bool, error)
}

// Store is the full persistence surface used by the command dispatcher.
type Store interface {
	HistoryStore
	FavoriteStore
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
