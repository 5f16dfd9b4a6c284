package tenants_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carebridge/go-hospital-admin/tenants"
)

func testTenant() *tenants.Tenant {
	return &tenants.Tenant{
		ID:   "tenant-1",
		Name: "Jindal IVF Centre",
		Branches: []tenants.Branch{
			{ID: "B1", Name: "Delhi"},
			{ID: "B2", Name: "Gurgaon", IsMainBranch: true},
			{ID: "B3", Name: "Noida"},
		},
	}
}

func TestFindBranch(t *testing.T) {
	tenant := testTenant()

	require.Equal(t, "Gurgaon", tenant.FindBranch("B2").Name)
	require.Nil(t, tenant.FindBranch("B9"))
}

func TestDefaultBranchPrefersHome(t *testing.T) {
	tenant := testTenant()

	require.Equal(t, "B3", tenant.DefaultBranch("B3").ID)
}

func TestDefaultBranchFallsBackToFirst(t *testing.T) {
	tenant := testTenant()

	require.Equal(t, "B1", tenant.DefaultBranch("").ID)
	require.Equal(t, "B1", tenant.DefaultBranch("not-a-branch").ID)
}

func TestDefaultBranchEmptyTenant(t *testing.T) {
	tenant := &tenants.Tenant{ID: "empty"}

	require.Nil(t, tenant.DefaultBranch("B1"))
	require.Nil(t, tenant.DefaultBranch(""))
}

func TestMainBranch(t *testing.T) {
	tenant := testTenant()
	require.Equal(t, "B2", tenant.MainBranch().ID)

	unflagged := &tenants.Tenant{Branches: []tenants.Branch{{ID: "B1"}, {ID: "B2"}}}
	require.Equal(t, "B1", unflagged.MainBranch().ID)

	require.Nil(t, (&tenants.Tenant{}).MainBranch())
}

func TestInMemoryRepoReturnsCopies(t *testing.T) {
	repo := tenants.NewInMemoryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testTenant()))

	first, err := repo.Get(ctx, "tenant-1")
	require.NoError(t, err)
	first.Name = "Mutated"
	first.Branches[0].Name = "Mutated"

	second, err := repo.Get(ctx, "tenant-1")
	require.NoError(t, err)
	require.Equal(t, "Jindal IVF Centre", second.Name)
	require.Equal(t, "Delhi", second.Branches[0].Name)
}

func TestInMemoryRepoMissingTenant(t *testing.T) {
	repo := tenants.NewInMemoryRepo()

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, tenants.ErrNotFound)
}

func TestInMemoryRepoList(t *testing.T) {
	repo := tenants.NewInMemoryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testTenant()))
	require.NoError(t, repo.Upsert(ctx, &tenants.Tenant{ID: "tenant-2", Name: "CityCare"}))

	list, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
