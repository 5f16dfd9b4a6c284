package theming

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/carebridge/go-hospital-admin/tenants"
)

var _ Applier = (*Document)(nil)

// Document models the presentation document of a dashboard session.
// The HTTP layer renders its state as a stylesheet and a branding
// payload for the single-page application.
type Document struct {
	mu        sync.RWMutex
	vars      map[string]string
	title     string
	favicon   string
	brand     string
	slogan    string
	logo      string
	customCSS string
}

// NewDocument creates a document carrying the platform defaults.
func NewDocument() *Document {
	return &Document{
		vars:    make(map[string]string),
		title:   DefaultTitle,
		favicon: DefaultFavicon,
	}
}

// Apply overlays the theme's populated fields. Colour variables and the
// title are only touched when the corresponding theme field is set, so
// partial themes keep earlier values in place.
func (d *Document) Apply(theme tenants.Theme) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if theme.PrimaryColor != "" {
		d.vars[VarPrimary] = theme.PrimaryColor
	}
	if theme.SecondaryColor != "" {
		d.vars[VarSecondary] = theme.SecondaryColor
	}
	if theme.AccentColor != "" {
		d.vars[VarAccent] = theme.AccentColor
	}
	if theme.BrandName != "" {
		d.title = fmt.Sprintf("%s - Hospital Management System", theme.BrandName)
		d.brand = theme.BrandName
	}
	if theme.Favicon != "" {
		d.favicon = theme.Favicon
	}
	if theme.BrandSlogan != "" {
		d.slogan = theme.BrandSlogan
	}
	if theme.Logo != "" {
		d.logo = theme.Logo
	}
	d.customCSS = theme.CustomCSS
}

// Reset clears the colour variables and reverts the title and favicon
// to the platform defaults.
func (d *Document) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.vars = make(map[string]string)
	d.title = DefaultTitle
	d.favicon = DefaultFavicon
	d.brand = ""
	d.slogan = ""
	d.logo = ""
	d.customCSS = ""
}

// Title returns the current document title.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// Favicon returns the current favicon resource reference.
func (d *Document) Favicon() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.favicon
}

// Var returns the value of a colour variable, or "" when unset.
func (d *Document) Var(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.vars[name]
}

// Stylesheet renders the document as CSS consumed by the dashboard
// shell. Unset variables are omitted so compiled-in defaults apply.
func (d *Document) Stylesheet() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	b.WriteString(":root {\n")

	names := make([]string, 0, len(d.vars))
	for name := range d.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, d.vars[name])
	}
	b.WriteString("}\n")

	if d.customCSS != "" {
		b.WriteString(d.customCSS)
		if !strings.HasSuffix(d.customCSS, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Branding is the identity payload served to the dashboard shell.
type Branding struct {
	Title       string `json:"title"`
	BrandName   string `json:"brandName,omitempty"`
	BrandSlogan string `json:"brandSlogan,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Favicon     string `json:"favicon"`
}

// Branding returns the current identity payload.
func (d *Document) Branding() Branding {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return Branding{
		Title:       d.title,
		BrandName:   d.brand,
		BrandSlogan: d.slogan,
		Logo:        d.logo,
		Favicon:     d.favicon,
	}
}
