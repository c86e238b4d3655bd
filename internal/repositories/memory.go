package repositories

import (
	"sync"

	"github.com/desertthunder/medley/internal/models"
)

// MemoryStore is an in-memory implementation of [AccountStore].
//
// Records are copied on the way in and out so callers can't alias the stored slice.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts []models.Account
}

// NewMemoryStore creates a new [MemoryStore] seeded with accounts.
func NewMemoryStore(accounts ...models.Account) *MemoryStore {
	return &MemoryStore{accounts: append([]models.Account{}, accounts...)}
}

// Load returns a copy of the stored records.
func (s *MemoryStore) Load() ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Account{}, s.accounts...), nil
}

// Save replaces the stored records with a copy of accounts.
func (s *MemoryStore) Save(accounts []models.Account) error {
	if err := validateAll(accounts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make([]models.Account, len(accounts))
	for i, a := range accounts {
		a.Collection = orEmpty(a.Collection)
		a.Playlists = orEmpty(a.Playlists)
		a.Favorites = orEmpty(a.Favorites)
		s.accounts[i] = a
	}
	return nil
}
