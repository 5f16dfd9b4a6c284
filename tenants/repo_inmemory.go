package tenants

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no tenant matches the given ID.
var ErrNotFound = errors.New("tenant not found")

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the static tenant directory used in this mock-data
// deployment. A production system would replace it with a remote
// tenant service behind the same Repo interface.
type InMemoryRepo struct {
	mu      sync.RWMutex
	tenants map[string]*Tenant
}

// NewInMemoryRepo creates an empty in-memory tenant directory.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{tenants: make(map[string]*Tenant)}
}

func (r *InMemoryRepo) Upsert(ctx context.Context, tenant *Tenant) error {
	if tenant.ID == "" {
		return errors.New("[InMemoryRepo.Upsert] tenant ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *tenant
	clone.Branches = append([]Branch(nil), tenant.Branches...)
	r.tenants[tenant.ID] = &clone
	return nil
}

func (r *InMemoryRepo) Delete(ctx context.Context, tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tenants, tenantID)
	return nil
}

func (r *InMemoryRepo) Get(ctx context.Context, tenantID string) (*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tenant, ok := r.tenants[tenantID]
	if !ok {
		return nil, ErrNotFound
	}

	clone := *tenant
	clone.Branches = append([]Branch(nil), tenant.Branches...)
	return &clone, nil
}

func (r *InMemoryRepo) List(ctx context.Context, offset, limit int) ([]*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		clone := *t
		clone.Branches = append([]Branch(nil), t.Branches...)
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
