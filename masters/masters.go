// Package masters holds the dashboard's master-data records: companies,
// buildings, branch offices, navigation menus, roles, and staff types.
// All data is in-memory mock data maintained through the settings
// screens.
package masters

// Company is a registered hospital operating company.
type Company struct {
	ID                 string `json:"id"`
	Name               string `json:"name" validate:"required"`
	RegistrationNumber string `json:"registrationNumber"`
	GSTNumber          string `json:"gstNumber"`
	PANNumber          string `json:"panNumber"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	Pincode            string `json:"pincode"`
	Phone              string `json:"phone"`
	Email              string `json:"email" validate:"omitempty,email"`
	Website            string `json:"website"`
	Logo               string `json:"logo,omitempty"`
	IsActive           bool   `json:"isActive"`
}

// Building is a physical structure branches operate from.
type Building struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	Code         string   `json:"code" validate:"required"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	TotalFloors  int      `json:"totalFloors" validate:"gte=0"`
	BuiltUpArea  string   `json:"builtUpArea"`
	BuildingType string   `json:"buildingType"`
	YearBuilt    string   `json:"yearBuilt"`
	Facilities   []string `json:"facilities"`
	IsActive     bool     `json:"isActive"`
}

// Branch is a branch office record linking a company and a building.
// Distinct from tenants.Branch, which is the session-level location a
// user operates at.
type Branch struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" validate:"required"`
	Code           string   `json:"code" validate:"required"`
	CompanyID      string   `json:"companyId" validate:"required"`
	BuildingID     string   `json:"buildingId"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Pincode        string   `json:"pincode"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email" validate:"omitempty,email"`
	ManagerName    string   `json:"managerName"`
	ManagerPhone   string   `json:"managerPhone"`
	OperatingHours string   `json:"operatingHours"`
	Services       []string `json:"services"`
	IsMainBranch   bool     `json:"isMainBranch"`
	IsActive       bool     `json:"isActive"`
}

// MenuItem is a navigation entry in the dashboard sidebar. Items form
// a tree via ParentID and are filtered by role visibility.
type MenuItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required"`
	Path     string   `json:"path"`
	Icon     string   `json:"icon"`
	ParentID string   `json:"parentId,omitempty"`
	Order    int      `json:"order"`
	IsActive bool     `json:"isActive"`
	Roles    []string `json:"roles"`
}

// ModulePermission is one row of a role's permission matrix.
type ModulePermission struct {
	Module string `json:"module"`
	Create bool   `json:"create"`
	Read   bool   `json:"read"`
	Update bool   `json:"update"`
	Delete bool   `json:"delete"`
}

// Role is a named permission matrix over the dashboard modules.
type Role struct {
	ID           string             `json:"id"`
	Name         string             `json:"name" validate:"required"`
	Code         string             `json:"code" validate:"required"`
	Description  string             `json:"description"`
	Permissions  []ModulePermission `json:"permissions"`
	IsSystemRole bool               `json:"isSystemRole"`
	IsActive     bool               `json:"isActive"`
	UserCount    int                `json:"userCount"`
}

// SalaryRange is a staff type's pay band.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StaffType classifies staff for hiring and reporting.
type StaffType struct {
	ID                    string      `json:"id"`
	Name                  string      `json:"name" validate:"required"`
	Code                  string      `json:"code" validate:"required"`
	Description           string      `json:"description"`
	Category              string      `json:"category"`
	QualificationRequired []string    `json:"qualificationRequired"`
	Responsibilities      []string    `json:"responsibilities"`
	ReportingTo           string      `json:"reportingTo,omitempty"`
	SalaryRange           SalaryRange `json:"salaryRange"`
	IsActive              bool        `json:"isActive"`
	StaffCount            int         `json:"staffCount"`
}
