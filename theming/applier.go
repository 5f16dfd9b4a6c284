// Package theming applies a tenant's visual identity to the
// presentation document: named colour variables, the window title, and
// the favicon. The session store writes these signals and never reads
// them back.
package theming

import "github.com/carebridge/go-hospital-admin/tenants"

// DefaultTitle is the window title shown outside any tenant branding.
const DefaultTitle = "Hospital Management System"

// DefaultFavicon is the compiled-in favicon resource.
const DefaultFavicon = "/favicon.ico"

// Colour variable names exposed to the presentation layer.
const (
	VarPrimary   = "--primary"
	VarSecondary = "--secondary"
	VarAccent    = "--accent"
)

// Applier receives theme side effects from the session store.
type Applier interface {
	// Apply overlays the theme's populated fields onto the document.
	// Empty fields leave the current values untouched.
	Apply(theme tenants.Theme)
	// Reset reverts every applied side effect to the platform defaults.
	Reset()
}

// Noop discards all theme side effects. Used where no presentation
// document exists, such as background tooling.
type Noop struct{}

func (Noop) Apply(tenants.Theme) {}
func (Noop) Reset()              {}
