package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carebridge/go-hospital-admin/kv"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/users"
)

type managerFixture struct {
	dir     session.Directory
	backend *kv.Memory
	manager *session.Manager
}

func setupManagerFixture(t *testing.T, options ...session.ManagerOption) *managerFixture {
	t.Helper()

	f := setupTestFixture(t)
	backend := kv.NewMemory()
	manager := session.NewManager(session.Directory{Users: f.userRepo, Tenants: f.tenantRepo}, backend, options...)
	t.Cleanup(manager.Close)

	return &managerFixture{
		dir:     session.Directory{Users: f.userRepo, Tenants: f.tenantRepo},
		backend: backend,
		manager: manager,
	}
}

func TestManagerGetReturnsSameHandle(t *testing.T) {
	f := setupManagerFixture(t)
	ctx := context.Background()

	first, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)
	second, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, f.manager.Len())
}

func TestManagerIsolatesSessions(t *testing.T) {
	f := setupManagerFixture(t)
	ctx := context.Background()

	a, err := f.manager.Get(ctx, "sid-a")
	require.NoError(t, err)
	b, err := f.manager.Get(ctx, "sid-b")
	require.NoError(t, err)

	require.NoError(t, a.Store.Login(ctx, testUserEmail, testUserPassword))

	require.True(t, a.Store.State().IsAuthenticated)
	require.False(t, b.Store.State().IsAuthenticated, "login in one session must not leak into another")
	require.Equal(t, 2, f.manager.Len())
}

func TestManagerRebuildsDroppedSessionFromSnapshots(t *testing.T) {
	restores := 0
	f := setupManagerFixture(t, session.WithRestoreHook(func() { restores++ }))
	ctx := context.Background()

	handle, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, handle.Store.Login(ctx, testUserEmail, testUserPassword))

	f.manager.Drop("sid-1")
	require.Equal(t, 0, f.manager.Len())

	rebuilt, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotSame(t, handle, rebuilt)
	require.True(t, rebuilt.Store.State().IsAuthenticated)
	require.Equal(t, testUserEmail, rebuilt.Store.State().User.Email)
	require.Equal(t, 1, restores)
}

func TestManagerDropAfterLogoutStaysAnonymous(t *testing.T) {
	f := setupManagerFixture(t)
	ctx := context.Background()

	handle, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, handle.Store.Login(ctx, testUserEmail, testUserPassword))
	handle.Store.Logout(ctx)
	f.manager.Drop("sid-1")

	rebuilt, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, rebuilt.Store.State().IsAuthenticated)
	require.Equal(t, session.StatusAnonymous, rebuilt.Store.Status())
}

func TestManagerScopesSnapshotNamespaces(t *testing.T) {
	f := setupManagerFixture(t)
	ctx := context.Background()

	handle, err := f.manager.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, handle.Store.Login(ctx, testUserEmail, testUserPassword))

	_, err = f.backend.Get(ctx, "session:sid-1:"+session.KeyUser)
	require.NoError(t, err, "snapshots must live under the session namespace")
	_, err = f.backend.Get(ctx, session.KeyUser)
	require.ErrorIs(t, err, kv.ErrNotFound)
}

// Guard against the fixture types drifting away from the repo
// interfaces the manager depends on.
var (
	_ users.Repo   = (*countingUserRepo)(nil)
	_ tenants.Repo = tenants.NewInMemoryRepo()
)
