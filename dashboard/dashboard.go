// Package dashboard assembles the overview widgets shown after login:
// headline stats and the recent-activity feed, scoped to the selected
// branch.
package dashboard

import (
	"context"
	"time"

	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/tenants"
)

// Trend describes the change of a stat against the previous period.
type Trend struct {
	Value      int  `json:"value"`
	IsPositive bool `json:"isPositive"`
}

// Stat is one headline card on the overview.
type Stat struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Trend Trend  `json:"trend"`
}

// Activity is one row of the recent-activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Overview is the dashboard payload for one branch.
type Overview struct {
	BranchID   string     `json:"branchId"`
	BranchName string     `json:"branchName"`
	Stats      []Stat     `json:"stats"`
	Activity   []Activity `json:"activity"`
}

// Service computes overview payloads. Figures are mock data in this
// deployment; the masters registry contributes the only live counts.
type Service struct {
	registry *masters.Registry
	nowTime  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNowTime overrides the service clock.
func WithNowTime(now func() time.Time) Option {
	return func(s *Service) { s.nowTime = now }
}

// NewService creates a dashboard service over the masters registry.
func NewService(registry *masters.Registry, options ...Option) *Service {
	s := &Service{registry: registry, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Overview returns the stats and activity for the given branch.
func (s *Service) Overview(ctx context.Context, branch *tenants.Branch) (*Overview, error) {
	if branch == nil {
		return nil, masters.ErrNotFound
	}

	now := s.nowTime()
	return &Overview{
		BranchID:   branch.ID,
		BranchName: branch.Name,
		Stats: []Stat{
			{Title: "Total Patients", Value: "1,247", Trend: Trend{Value: 12, IsPositive: true}},
			{Title: "Today's Appointments", Value: "23", Trend: Trend{Value: 8, IsPositive: true}},
			{Title: "Active IVF Cycles", Value: "45", Trend: Trend{Value: 5, IsPositive: true}},
			{Title: "Success Rate", Value: "68%", Trend: Trend{Value: 3, IsPositive: true}},
		},
		Activity: []Activity{
			{ID: "1", Kind: "appointment", Description: "New appointment scheduled", Actor: "Reception", OccurredAt: now.Add(-15 * time.Minute)},
			{ID: "2", Kind: "lab", Description: "Lab report uploaded", Actor: "Lab", OccurredAt: now.Add(-42 * time.Minute)},
			{ID: "3", Kind: "billing", Description: "Invoice settled", Actor: "Accounts", OccurredAt: now.Add(-2 * time.Hour)},
			{ID: "4", Kind: "staff", Description: "Duty roster updated", Actor: "Admin", OccurredAt: now.Add(-3 * time.Hour)},
		},
	}, nil
}
