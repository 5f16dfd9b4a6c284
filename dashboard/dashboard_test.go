package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carebridge/go-hospital-admin/dashboard"
	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/tenants"
)

func TestOverview(t *testing.T) {
	fixed := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	svc := dashboard.NewService(masters.NewRegistry(), dashboard.WithNowTime(func() time.Time { return fixed }))

	overview, err := svc.Overview(context.Background(), &tenants.Branch{ID: "B1", Name: "Main"})
	require.NoError(t, err)
	require.Equal(t, "B1", overview.BranchID)
	require.Equal(t, "Main", overview.BranchName)
	require.NotEmpty(t, overview.Stats)
	require.NotEmpty(t, overview.Activity)

	for _, a := range overview.Activity {
		require.True(t, a.OccurredAt.Before(fixed), "activity must predate the clock")
	}
}

func TestOverviewWithoutBranch(t *testing.T) {
	svc := dashboard.NewService(masters.NewRegistry())

	_, err := svc.Overview(context.Background(), nil)
	require.ErrorIs(t, err, masters.ErrNotFound)
}
