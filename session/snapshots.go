package session

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/carebridge/go-hospital-admin/kv"
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/users"
)

// Snapshot keys in the session's scoped key-value store.
const (
	KeyUser   = "auth_user"
	KeyTenant = "auth_tenant"
	KeyBranch = "selected_branch"
)

// Snapshots persists the session aggregate as three independent JSON
// entries, mirroring the persisted layout the dashboard shell relies
// on.
type Snapshots struct {
	store kv.Store
}

// NewSnapshots wraps a (typically scoped) key-value store.
func NewSnapshots(store kv.Store) *Snapshots {
	return &Snapshots{store: store}
}

// SaveUser writes the auth_user entry.
func (s *Snapshots) SaveUser(ctx context.Context, user *users.User) error {
	return s.save(ctx, KeyUser, user)
}

// SaveTenant writes the auth_tenant entry.
func (s *Snapshots) SaveTenant(ctx context.Context, tenant *tenants.Tenant) error {
	return s.save(ctx, KeyTenant, tenant)
}

// SaveBranch writes the selected_branch entry.
func (s *Snapshots) SaveBranch(ctx context.Context, branch *tenants.Branch) error {
	return s.save(ctx, KeyBranch, branch)
}

// LoadUser reads the auth_user entry. Returns kv.ErrNotFound when no
// snapshot exists.
func (s *Snapshots) LoadUser(ctx context.Context) (*users.User, error) {
	var user users.User
	if err := s.load(ctx, KeyUser, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LoadTenant reads the auth_tenant entry.
func (s *Snapshots) LoadTenant(ctx context.Context) (*tenants.Tenant, error) {
	var tenant tenants.Tenant
	if err := s.load(ctx, KeyTenant, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// LoadBranch reads the selected_branch entry.
func (s *Snapshots) LoadBranch(ctx context.Context) (*tenants.Branch, error) {
	var branch tenants.Branch
	if err := s.load(ctx, KeyBranch, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

// Clear removes all three entries. Deletion continues past individual
// failures so logout always removes as much as it can.
func (s *Snapshots) Clear(ctx context.Context) error {
	var firstErr error
	for _, key := range []string{KeyUser, KeyTenant, KeyBranch} {
		if err := s.store.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "[Snapshots.Clear] delete %q", key)
		}
	}
	return firstErr
}

func (s *Snapshots) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "[Snapshots.save] marshal %q", key)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return errors.Wrapf(err, "[Snapshots.save] set %q", key)
	}
	return nil
}

func (s *Snapshots) load(ctx context.Context, key string, v any) error {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "[Snapshots.load] unmarshal %q", key)
	}
	return nil
}
