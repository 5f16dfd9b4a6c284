package session

import "errors"

// Failure kinds surfaced by the store. The HTTP layer collapses the
// credential-resolution kinds into one generic message so a caller
// cannot tell which part of the lookup failed.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrTenantNoBranches   = errors.New("tenant has no branches")
	ErrLoginInProgress    = errors.New("login already in progress")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForeignBranch      = errors.New("branch does not belong to the active tenant")
)
