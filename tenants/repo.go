package tenants

import "context"

// Repo is the tenant half of the directory service consumed by the
// session store and the bootstrap seeding.
type Repo interface {
	Upsert(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, tenantID string) error
	Get(ctx context.Context, tenantID string) (*Tenant, error)
	List(ctx context.Context, offset, limit int) ([]*Tenant, error)
}
