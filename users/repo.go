package users

import "context"

// Repo is the user half of the directory service. The session store
// depends only on GetByEmail; the rest serves bootstrap seeding and
// administration.
type Repo interface {
	Upsert(ctx context.Context, user *User) error
	Delete(ctx context.Context, email string) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
}
