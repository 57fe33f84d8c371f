package account

import (
	"context"
	"sync"
)

// memoryRepository implements Repository using in-memory storage.
type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryRepository creates a new in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		accounts: make(map[string]Account),
	}
}

func (r *memoryRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, exists := r.accounts[email]
	if !exists {
		return nil, ErrNotFound
	}
	return &acct, nil
}

func (r *memoryRepository) Create(ctx context.Context, acct *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[acct.Email]; exists {
		return ErrEmailTaken
	}
	r.accounts[acct.Email] = *acct
	return nil
}
