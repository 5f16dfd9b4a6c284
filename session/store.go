// Package session implements the tenant-scoped session store: the
// single source of truth for who is logged in, into which tenant, at
// which branch, under which visual theme. All mutations flow through
// the operations defined here; the presentation layer only reads the
// resulting state.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/carebridge/go-hospital-admin/kv"
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/theming"
	"github.com/carebridge/go-hospital-admin/users"
)

// Directory bundles the two lookup operations the store consumes. In
// this deployment both are static in-memory lists; a real system would
// back them with a remote identity/tenant service.
type Directory struct {
	Users   users.Repo
	Tenants tenants.Repo
}

// Store owns one dashboard session's authentication state, branch
// selection, and theme application. A mutex serialises every
// transition, so each operation is atomic from the caller's
// perspective.
type Store struct {
	mu      sync.Mutex
	status  Status
	state   State
	dir     Directory
	snaps   *Snapshots
	applier theming.Applier
	log     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithApplier sets the theme side-effect target. Defaults to a no-op.
func WithApplier(applier theming.Applier) Option {
	return func(s *Store) { s.applier = applier }
}

// WithLogger sets the store's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a store in the Anonymous state.
func NewStore(dir Directory, snapshots kv.Store, options ...Option) (*Store, error) {
	if dir.Users == nil {
		return nil, errors.New("[NewStore] Users repo is required")
	}
	if dir.Tenants == nil {
		return nil, errors.New("[NewStore] Tenants repo is required")
	}
	if snapshots == nil {
		return nil, errors.New("[NewStore] snapshot store is required")
	}

	s := &Store{
		status:  StatusAnonymous,
		dir:     dir,
		snaps:   NewSnapshots(snapshots),
		applier: theming.Noop{},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login authenticates a user by email and password. On success the
// store is Authenticated with the resolved user, tenant, and default
// branch, and the user/tenant snapshots are persisted. On failure the
// store reverts to its pre-call state and one of the credential
// failure kinds is returned. A second login while one is pending is
// rejected with ErrLoginInProgress.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	if s.status == StatusAuthenticating {
		s.mu.Unlock()
		return ErrLoginInProgress
	}
	previous := s.status
	s.status = StatusAuthenticating
	s.state.IsLoading = true
	s.mu.Unlock()

	user, tenant, err := s.resolve(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.status = previous
		s.log.Debug().Str("email", email).Err(err).Msg("login failed")
		return err
	}

	branch := tenant.DefaultBranch(user.BranchID)
	if branch == nil {
		s.status = previous
		return ErrTenantNoBranches
	}
	selected := *branch

	s.state.User = user
	s.state.Tenant = tenant
	s.state.SelectedBranch = &selected
	s.state.IsAuthenticated = true
	s.status = StatusAuthenticated

	// Snapshot faults are logged, never surfaced: the session itself
	// succeeded.
	if err := s.snaps.SaveUser(ctx, user); err != nil {
		s.log.Warn().Err(err).Msg("persist user snapshot")
	}
	if err := s.snaps.SaveTenant(ctx, tenant); err != nil {
		s.log.Warn().Err(err).Msg("persist tenant snapshot")
	}

	s.applier.Apply(tenant.Theme)
	s.log.Info().
		Str("user", user.ID).
		Str("tenant", tenant.ID).
		Str("branch", selected.ID).
		Msg("session authenticated")
	return nil
}

// resolve performs the directory round trip outside the state lock.
func (s *Store) resolve(ctx context.Context, email, password string) (*users.User, *tenants.Tenant, error) {
	user, err := s.dir.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	tenant, err := s.dir.Tenants.Get(ctx, user.TenantID)
	if err != nil {
		return nil, nil, ErrTenantNotFound
	}
	return user, tenant, nil
}

// Logout unconditionally resets the store to Anonymous, removes all
// three persisted snapshots, and reverts the applied theme side
// effects. Calling it on an already anonymous store is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state = State{}
	s.status = StatusAnonymous
	s.mu.Unlock()

	if err := s.snaps.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear session snapshots")
	}
	s.applier.Reset()
}

// SelectBranch replaces the selected branch. The branch must belong to
// the active tenant; foreign branch references are rejected rather
// than accepted silently.
func (s *Store) SelectBranch(ctx context.Context, branch tenants.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAuthenticated {
		return ErrNotAuthenticated
	}
	member := s.state.Tenant.FindBranch(branch.ID)
	if member == nil {
		return ErrForeignBranch
	}

	// Store the tenant's canonical copy, not the caller's payload.
	selected := *member
	s.state.SelectedBranch = &selected

	if err := s.snaps.SaveBranch(ctx, &selected); err != nil {
		s.log.Warn().Err(err).Msg("persist branch snapshot")
	}
	return nil
}

// UpdateTheme shallow-merges the patch into the active tenant's theme
// and re-applies the side effects. A no-op when no tenant is active.
// The tenant value is replaced copy-on-write, so previously returned
// State snapshots never observe the change.
func (s *Store) UpdateTheme(patch ThemePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Tenant == nil {
		return
	}

	updated := *s.state.Tenant
	patch.applyTo(&updated.Theme)
	s.state.Tenant = &updated

	s.applier.Apply(updated.Theme)
}

// Restore rebuilds the session from persisted snapshots, bypassing the
// directory entirely: the snapshot is trusted as written. Missing or
// malformed snapshots fall back silently to Anonymous. Reports whether
// a session was restored.
func (s *Store) Restore(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.snaps.LoadUser(ctx)
	if err != nil {
		s.logRestoreMiss(KeyUser, err)
		return false
	}
	tenant, err := s.snaps.LoadTenant(ctx)
	if err != nil {
		s.logRestoreMiss(KeyTenant, err)
		return false
	}
	branch := tenant.DefaultBranch(user.BranchID)
	if branch == nil {
		s.log.Warn().Str("tenant", tenant.ID).Msg("restored tenant has no branches; discarding snapshot")
		return false
	}
	selected := *branch

	// A branch snapshot overrides the recomputed default. It is applied
	// as written, like the rest of the snapshot.
	if saved, err := s.snaps.LoadBranch(ctx); err == nil {
		selected = *saved
	} else if !errors.Is(err, kv.ErrNotFound) {
		s.log.Debug().Err(err).Msg("branch snapshot unreadable; keeping default branch")
	}

	s.state = State{
		User:            user,
		Tenant:          tenant,
		SelectedBranch:  &selected,
		IsAuthenticated: true,
	}
	s.status = StatusAuthenticated

	s.applier.Apply(tenant.Theme)
	s.log.Info().Str("user", user.ID).Str("tenant", tenant.ID).Msg("session restored from snapshot")
	return true
}

func (s *Store) logRestoreMiss(key string, err error) {
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	s.log.Debug().Str("key", key).Err(err).Msg("snapshot unreadable; starting anonymous")
}

// State returns a snapshot of the session aggregate.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the store's lifecycle status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
