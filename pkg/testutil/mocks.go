package testutil

import (
	"sort"
	"sync"

	"github.com/Veraticus/regexlab/pkg/types"
)

// MockStore is a thread-safe in-memory implementation of interfaces.Store for testing
type MockStore struct {
	mu          sync.Mutex
	history     []types.HistoryEntry
	favorites   map[string]types.FavoriteEntry
	order       []string
	loadErr     error
	appendErr   error
	favoriteErr error
	appendCount int
}

// NewMockStore creates a new empty mock store
func NewMockStore() *MockStore {
	return &MockStore{
		favorites: make(map[string]types.FavoriteEntry),
	}
}

// LoadHistory implements the HistoryStore interface
func (m *MockStore) LoadHistory() ([]types.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	result := make([]types.HistoryEntry, len(m.history))
	copy(result, m.history)
	return result, nil
}

// AppendHistory implements the HistoryStore interface
func (m *MockStore) AppendHistory(entry types.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appendCount++
	if m.appendErr != nil {
		return m.appendErr
	}
	m.history = append(m.history, entry)
	return nil
}

// AddFavorite implements the FavoriteStore interface
func (m *MockStore) AddFavorite(name, pattern, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.favoriteErr != nil {
		return m.favoriteErr
	}
	if _, exists := m.favorites[name]; !exists {
		m.order = append(m.order, name)
	}
	m.favorites[name] = types.FavoriteEntry{
		Pattern:     pattern,
		Description: description,
		Created:     "2026-01-01T00:00:00.000000",
	}
	return nil
}

// ListFavorites implements the FavoriteStore interface, in insertion order
func (m *MockStore) ListFavorites() ([]types.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.favoriteErr != nil {
		return nil, m.favoriteErr
	}
	result := make([]types.Favorite, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, types.Favorite{Name: name, FavoriteEntry: m.favorites[name]})
	}
	return result, nil
}

// Favorite implements the FavoriteStore interface
func (m *MockStore) Favorite(name string) (types.FavoriteEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.favoriteErr != nil {
		return types.FavoriteEntry{}, false, m.favoriteErr
	}
	entry, ok := m.favorites[name]
	return entry, ok, nil
}

// SetHistory replaces the stored history
func (m *MockStore) SetHistory(history []types.HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append([]types.HistoryEntry(nil), history...)
}

// SetLoadError sets the error returned by LoadHistory
func (m *MockStore) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetAppendError sets the error returned by AppendHistory
func (m *MockStore) SetAppendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendErr = err
}

// SetFavoriteError sets the error returned by the favorite methods
func (m *MockStore) SetFavoriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favoriteErr = err
}

// GetHistory returns a copy of the recorded history
func (m *MockStore) GetHistory() []types.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]types.HistoryEntry, len(m.history))
	copy(result, m.history)
	return result
}

// GetAppendCount returns how many times AppendHistory was called
func (m *MockStore) GetAppendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendCount
}

// GetFavoriteNames returns the stored favorite names, sorted
func (m *MockStore) GetFavoriteNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.favorites))
	for name := range m.favorites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
