package tenants

// Tenant represents a hospital organisation with its own branding,
// subscription plan, and branches. Each tenant is visually and
// operationally isolated from the others.
type Tenant struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Domain       string           `json:"domain"`
	Logo         string           `json:"logo,omitempty"`
	Theme        Theme            `json:"theme"`
	Subscription SubscriptionPlan `json:"subscription"`
	Branches     []Branch         `json:"branches"` // ordered; first entry is the fallback default
	Settings     Settings         `json:"settings"`
}

// Theme holds the tenant's visual identity. Colour fields are CSS colour
// values; empty fields leave the platform defaults in place.
type Theme struct {
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	AccentColor    string `json:"accentColor,omitempty"`
	Logo           string `json:"logo,omitempty"`
	Favicon        string `json:"favicon,omitempty"`
	BrandName      string `json:"brandName,omitempty"`
	BrandSlogan    string `json:"brandSlogan,omitempty"`
	CustomCSS      string `json:"customCss,omitempty"`
}

// SubscriptionPlan captures the tenant's feature entitlements and limits.
type SubscriptionPlan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Features    []string `json:"features"`
	MaxBranches int      `json:"maxBranches"`
	MaxUsers    int      `json:"maxUsers"`
	IsActive    bool     `json:"isActive"`
	ExpiresAt   string   `json:"expiresAt"`
}

// Settings holds tenant-wide preferences and per-feature toggles.
type Settings struct {
	Timezone   string         `json:"timezone"`
	DateFormat string         `json:"dateFormat"`
	Currency   string         `json:"currency"`
	Language   string         `json:"language"`
	Features   FeatureToggles `json:"features"`
}

// FeatureToggles enables or disables dashboard modules per tenant.
type FeatureToggles struct {
	Appointments bool `json:"appointments"`
	IVFTracking  bool `json:"ivfTracking"`
	Billing      bool `json:"billing"`
	Inventory    bool `json:"inventory"`
	Reports      bool `json:"reports"`
	Telemedicine bool `json:"telemedicine"`
}

// Branch is a physical hospital location belonging to a tenant. The
// TenantID is a back-reference only; the tenant owns its branches.
type Branch struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenantId"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	IsMainBranch bool           `json:"isMainBranch"` // expected on exactly one branch per tenant
	Settings     BranchSettings `json:"settings"`
}

// BranchSettings holds branch-local configuration.
type BranchSettings struct {
	OperatingHours map[string]DayHours `json:"operatingHours"` // keyed by weekday, e.g. "monday"
	Departments    []string            `json:"departments"`
	Services       []string            `json:"services"`
}

// DayHours describes opening times for a single weekday.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen bool   `json:"isOpen"`
}

// FindBranch returns the branch with the given ID, or nil when the
// tenant has no such branch.
func (t *Tenant) FindBranch(branchID string) *Branch {
	for i := range t.Branches {
		if t.Branches[i].ID == branchID {
			return &t.Branches[i]
		}
	}
	return nil
}

// DefaultBranch resolves the branch a user lands on after login: the
// user's home branch when it exists among the tenant's branches,
// otherwise the tenant's first branch. Returns nil when the tenant has
// no branches at all.
func (t *Tenant) DefaultBranch(homeBranchID string) *Branch {
	if len(t.Branches) == 0 {
		return nil
	}
	if homeBranchID != "" {
		if b := t.FindBranch(homeBranchID); b != nil {
			return b
		}
	}
	return &t.Branches[0]
}

// MainBranch returns the branch flagged as the tenant's main branch,
// falling back to the first branch when the flag is missing.
func (t *Tenant) MainBranch() *Branch {
	for i := range t.Branches {
		if t.Branches[i].IsMainBranch {
			return &t.Branches[i]
		}
	}
	if len(t.Branches) == 0 {
		return nil
	}
	return &t.Branches[0]
}
