package memoryrepo

import (
	"context"
	"strings"
	"sync"
	"time"

	"dashboard-client/internal/domain"
)

type accountRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]string
}

func NewAccountRepository() domain.AccountRepository {
	return &accountRepository{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]string),
	}
}

// --- Helpers ---

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// copyAccount hands out values so callers never share the stored row.
func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

// --- Methods ---

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(account.Profile.Email)
	if owner, ok := r.byEmail[key]; ok && owner != account.ID {
		return domain.ErrEmailTaken
	}
	if old, ok := r.byID[account.ID]; ok {
		delete(r.byEmail, emailKey(old.Profile.Email))
	}

	stored := copyAccount(account)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}
	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return copyAccount(r.byID[id]), nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return copyAccount(a), nil
}

// UpdateProfile replaces the whole record. The photo is owned by UpdatePhoto
// and survives a profile update that omits it.
func (r *accountRepository) UpdateProfile(ctx context.Context, id string, profile domain.ProfileRecord) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	newKey := emailKey(profile.Email)
	oldKey := emailKey(a.Profile.Email)
	if newKey != oldKey {
		if owner, taken := r.byEmail[newKey]; taken && owner != id {
			return nil, domain.ErrEmailTaken
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = id
	}

	if profile.Photo == "" {
		profile.Photo = a.Profile.Photo
	}
	a.Profile = profile
	a.UpdatedAt = time.Now()
	return copyAccount(a), nil
}

func (r *accountRepository) UpdatePhoto(ctx context.Context, id, photoURL string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Profile.Photo = photoURL
	a.UpdatedAt = time.Now()
	return copyAccount(a), nil
}
