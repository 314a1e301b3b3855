package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating a user with a registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Directory is the process-local store of shopper accounts.
type Directory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewDirectory builds an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

// Create adds a user and returns a copy of the stored record.
func (d *Directory) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user := dto.toUser(uuid.New(), d.now().UTC())

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, taken := d.byEmail[user.Email]; taken {
		return nil, ErrEmailTaken
	}
	d.byID[user.ID] = user
	d.byEmail[user.Email] = user.ID
	out := *user
	return &out, nil
}

// FindByEmail retrieves the user registered under the email.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *d.byID[id]
	return &out, nil
}

// FindByID loads a user by id.
func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *user
	return &out, nil
}

// UpdateLastLogin stamps the user's last successful sign-in.
func (d *Directory) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.byID[id]
	if !ok {
		return ErrNotFound
	}
	stamp := at.UTC()
	user.LastLoginAt = &stamp
	return nil
}

// Len returns the number of registered users.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
