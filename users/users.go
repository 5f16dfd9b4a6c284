package users

import (
	"golang.org/x/crypto/bcrypt"
)

// Role is a user's function within the platform or a hospital tenant.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"  // Platform admin
	RoleTenantAdmin   Role = "tenant_admin" // Hospital admin
	RoleBranchAdmin   Role = "branch_admin"
	RoleDoctor        Role = "doctor"
	RoleNurse         Role = "nurse"
	RoleReceptionist  Role = "receptionist"
	RoleLabTechnician Role = "lab_technician"
	RolePharmacist    Role = "pharmacist"
	RoleAccountant    Role = "accountant"
)

// Roles lists every valid role.
var Roles = []Role{
	RoleSuperAdmin, RoleTenantAdmin, RoleBranchAdmin, RoleDoctor,
	RoleNurse, RoleReceptionist, RoleLabTechnician, RolePharmacist,
	RoleAccountant,
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Action is a CRUD operation a permission may grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission grants a subset of actions on a dashboard module.
type Permission struct {
	Module  string   `json:"module"`
	Actions []Action `json:"actions"`
}

// User is a dashboard account. Email is the unique login key; TenantID
// is a back-reference to the owning tenant.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"` // never serialized
	Role         Role         `json:"role"`
	TenantID     string       `json:"tenantId"`
	BranchID     string       `json:"branchId,omitempty"` // optional home branch
	IsActive     bool         `json:"isActive"`
	Permissions  []Permission `json:"permissions"`
}

// HasPermission reports whether the user may perform action on module.
// Super admins are allowed everything.
func (u *User) HasPermission(module string, action Action) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p.Module != module && p.Module != "*" {
			continue
		}
		for _, a := range p.Actions {
			if a == action {
				return true
			}
		}
	}
	return false
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a plaintext password against a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
