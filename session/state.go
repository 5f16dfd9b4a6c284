package session

import (
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/users"
)

// Status is the store's position in the session lifecycle. The machine
// cycles between Anonymous and Authenticated for the life of the
// process; Authenticating exists only while a login is pending.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
)

// State is the session aggregate: who is logged in, into which tenant,
// at which branch. IsAuthenticated is true iff User and Tenant are both
// set; SelectedBranch, when set by a live transition, belongs to the
// tenant's branches.
//
// State values returned by the store are snapshots; callers must treat
// the pointed-to entities as read-only.
type State struct {
	User            *users.User     `json:"user"`
	Tenant          *tenants.Tenant `json:"tenant"`
	SelectedBranch  *tenants.Branch `json:"selectedBranch"`
	IsAuthenticated bool            `json:"isAuthenticated"`
	IsLoading       bool            `json:"isLoading"`
}

// ThemePatch is a partial theme update. Nil fields leave the current
// value untouched.
type ThemePatch struct {
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	AccentColor    *string `json:"accentColor"`
	Logo           *string `json:"logo"`
	Favicon        *string `json:"favicon"`
	BrandName      *string `json:"brandName"`
	BrandSlogan    *string `json:"brandSlogan"`
	CustomCSS      *string `json:"customCss"`
}

// applyTo shallow-merges the patch's populated fields into theme.
func (p ThemePatch) applyTo(theme *tenants.Theme) {
	if p.PrimaryColor != nil {
		theme.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		theme.SecondaryColor = *p.SecondaryColor
	}
	if p.AccentColor != nil {
		theme.AccentColor = *p.AccentColor
	}
	if p.Logo != nil {
		theme.Logo = *p.Logo
	}
	if p.Favicon != nil {
		theme.Favicon = *p.Favicon
	}
	if p.BrandName != nil {
		theme.BrandName = *p.BrandName
	}
	if p.BrandSlogan != nil {
		theme.BrandSlogan = *p.BrandSlogan
	}
	if p.CustomCSS != nil {
		theme.CustomCSS = *p.CustomCSS
	}
}
