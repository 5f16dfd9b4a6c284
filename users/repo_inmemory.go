package users

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no user matches the lookup key.
var ErrNotFound = errors.New("user not found")

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the static user directory used in this mock-data
// deployment. A production system would replace it with a remote
// identity service behind the same Repo interface.
type InMemoryRepo struct {
	mu       sync.RWMutex
	users    map[string]*User
	emailIDs map[string]string // email -> user ID
}

// NewInMemoryRepo creates an empty in-memory user directory.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		users:    make(map[string]*User),
		emailIDs: make(map[string]string),
	}
}

func (r *InMemoryRepo) Upsert(ctx context.Context, user *User) error {
	if user.Email == "" {
		return errors.New("[InMemoryRepo.Upsert] user email is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	clone := *user
	r.users[user.ID] = &clone
	r.emailIDs[user.Email] = user.ID
	return nil
}

func (r *InMemoryRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.emailIDs[email]
	if !ok {
		return ErrNotFound
	}
	delete(r.emailIDs, email)
	delete(r.users, id)
	return nil
}

func (r *InMemoryRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIDs[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

func (r *InMemoryRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryRepo) List(ctx context.Context, offset, limit int) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}
