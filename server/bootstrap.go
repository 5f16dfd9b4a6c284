package server

import (
	"context"

	"github.com/pkg/errors"

	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/users"
)

// Demo credentials for the mock directory. Real deployments replace
// the in-memory directory entirely, so these never reach production.
const (
	SeedAdminEmail    = "admin@jindalivf.com"
	SeedAdminPassword = "Admin@123"
)

// Bootstrap seeds the mock directory and master-data registry. The
// directory is static for the life of the process; every login
// resolves against the records created here.
func Bootstrap(ctx context.Context, dir session.Directory, registry *masters.Registry) error {
	if err := seedTenants(ctx, dir.Tenants); err != nil {
		return errors.Wrap(err, "[Bootstrap] seed tenants")
	}
	if err := seedUsers(ctx, dir.Users); err != nil {
		return errors.Wrap(err, "[Bootstrap] seed users")
	}
	if err := seedMasters(ctx, registry); err != nil {
		return errors.Wrap(err, "[Bootstrap] seed masters")
	}
	return nil
}

func weekdayHours() map[string]tenants.DayHours {
	hours := map[string]tenants.DayHours{
		"sunday": {IsOpen: false},
	}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		hours[day] = tenants.DayHours{Open: "09:00", Close: "18:00", IsOpen: true}
	}
	return hours
}

func seedTenants(ctx context.Context, repo tenants.Repo) error {
	jindal := &tenants.Tenant{
		ID:     "jindal-ivf",
		Name:   "Jindal IVF Centre",
		Domain: "jindalivf.com",
		Theme: tenants.Theme{
			PrimaryColor:   "#0f6e63",
			SecondaryColor: "#f4a950",
			AccentColor:    "#1d4ed8",
			BrandName:      "Jindal IVF",
			BrandSlogan:    "Caring for new beginnings",
			Favicon:        "/tenants/jindal-ivf/favicon.ico",
			Logo:           "/tenants/jindal-ivf/logo.svg",
		},
		Subscription: tenants.SubscriptionPlan{
			ID:          "plan-enterprise",
			Name:        "Enterprise",
			Features:    []string{"appointments", "ivf_tracking", "billing", "reports"},
			MaxBranches: 10,
			MaxUsers:    250,
			IsActive:    true,
			ExpiresAt:   "2027-03-31",
		},
		Branches: []tenants.Branch{
			{
				ID:           "branch-delhi-main",
				TenantID:     "jindal-ivf",
				Name:         "Jindal IVF Main Branch",
				Address:      "123 Medical Plaza, Health Sector, Delhi",
				Phone:        "+91-11-12345678",
				Email:        "main@jindalivf.com",
				IsMainBranch: true,
				Settings: tenants.BranchSettings{
					OperatingHours: weekdayHours(),
					Departments:    []string{"IVF", "Gynaecology", "Pathology"},
					Services:       []string{"IVF Treatment", "Consultation", "Lab Tests", "Surgery"},
				},
			},
			{
				ID:       "branch-gurgaon",
				TenantID: "jindal-ivf",
				Name:     "Jindal IVF Gurgaon",
				Address:  "45 Cyber Park, Gurgaon",
				Phone:    "+91-124-5550199",
				Email:    "gurgaon@jindalivf.com",
				Settings: tenants.BranchSettings{
					OperatingHours: weekdayHours(),
					Departments:    []string{"IVF", "Gynaecology"},
					Services:       []string{"IVF Treatment", "Consultation"},
				},
			},
			{
				ID:       "branch-noida",
				TenantID: "jindal-ivf",
				Name:     "Jindal IVF Noida",
				Address:  "8 Sector 62, Noida",
				Phone:    "+91-120-5550242",
				Email:    "noida@jindalivf.com",
				Settings: tenants.BranchSettings{
					OperatingHours: weekdayHours(),
					Departments:    []string{"Gynaecology"},
					Services:       []string{"Consultation", "Lab Tests"},
				},
			},
		},
		Settings: tenants.Settings{
			Timezone:   "Asia/Kolkata",
			DateFormat: "DD/MM/YYYY",
			Currency:   "INR",
			Language:   "en",
			Features: tenants.FeatureToggles{
				Appointments: true,
				IVFTracking:  true,
				Billing:      true,
				Inventory:    false,
				Reports:      true,
				Telemedicine: false,
			},
		},
	}

	citycare := &tenants.Tenant{
		ID:     "citycare",
		Name:   "CityCare Hospital",
		Domain: "citycare.example",
		Theme: tenants.Theme{
			PrimaryColor:   "#7c3aed",
			SecondaryColor: "#e11d48",
			BrandName:      "CityCare",
		},
		Subscription: tenants.SubscriptionPlan{
			ID:          "plan-standard",
			Name:        "Standard",
			Features:    []string{"appointments", "billing"},
			MaxBranches: 3,
			MaxUsers:    50,
			IsActive:    true,
			ExpiresAt:   "2026-12-31",
		},
		Branches: []tenants.Branch{
			{
				ID:           "branch-citycare-central",
				TenantID:     "citycare",
				Name:         "CityCare Central",
				Address:      "1 Hospital Road, Mumbai",
				Phone:        "+91-22-5550100",
				Email:        "central@citycare.example",
				IsMainBranch: true,
				Settings: tenants.BranchSettings{
					OperatingHours: weekdayHours(),
					Departments:    []string{"General Medicine", "Paediatrics"},
					Services:       []string{"Consultation", "Lab Tests"},
				},
			},
		},
		Settings: tenants.Settings{
			Timezone:   "Asia/Kolkata",
			DateFormat: "DD/MM/YYYY",
			Currency:   "INR",
			Language:   "en",
			Features: tenants.FeatureToggles{
				Appointments: true,
				Billing:      true,
			},
		},
	}

	for _, tenant := range []*tenants.Tenant{jindal, citycare} {
		if err := repo.Upsert(ctx, tenant); err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(ctx context.Context, repo users.Repo) error {
	fullAccess := []users.Permission{{
		Module:  "*",
		Actions: []users.Action{users.ActionCreate, users.ActionRead, users.ActionUpdate, users.ActionDelete},
	}}
	readOnly := func(modules ...string) []users.Permission {
		perms := make([]users.Permission, 0, len(modules))
		for _, m := range modules {
			perms = append(perms, users.Permission{Module: m, Actions: []users.Action{users.ActionRead}})
		}
		return perms
	}

	seeds := []struct {
		user     users.User
		password string
	}{
		{
			user: users.User{
				ID: "user-super", Email: "super@carebridge.health", Name: "Platform Admin",
				Role: users.RoleSuperAdmin, TenantID: "jindal-ivf", IsActive: true,
			},
			password: "Super@123",
		},
		{
			user: users.User{
				ID: "user-jindal-admin", Email: SeedAdminEmail, Name: "Rajesh Kumar",
				Role: users.RoleTenantAdmin, TenantID: "jindal-ivf", IsActive: true,
				Permissions: fullAccess,
			},
			password: SeedAdminPassword,
		},
		{
			user: users.User{
				ID: "user-jindal-doctor", Email: "dr.mehta@jindalivf.com", Name: "Anita Mehta",
				Role: users.RoleDoctor, TenantID: "jindal-ivf", BranchID: "branch-gurgaon", IsActive: true,
				Permissions: readOnly("dashboard", "appointments", "patients"),
			},
			password: "Doctor@123",
		},
		{
			user: users.User{
				ID: "user-jindal-reception", Email: "reception@jindalivf.com", Name: "Priya Sharma",
				Role: users.RoleReceptionist, TenantID: "jindal-ivf", BranchID: "branch-delhi-main", IsActive: true,
				Permissions: readOnly("dashboard", "appointments"),
			},
			password: "Front@123",
		},
		{
			user: users.User{
				ID: "user-citycare-admin", Email: "admin@citycare.example", Name: "Vikram Rao",
				Role: users.RoleTenantAdmin, TenantID: "citycare", IsActive: true,
				Permissions: fullAccess,
			},
			password: "Admin@123",
		},
	}

	for _, seed := range seeds {
		hash, err := users.HashPassword(seed.password)
		if err != nil {
			return err
		}
		seed.user.PasswordHash = hash
		if err := repo.Upsert(ctx, &seed.user); err != nil {
			return err
		}
	}
	return nil
}

func seedMasters(ctx context.Context, registry *masters.Registry) error {
	_, err := registry.Companies.Create(ctx, masters.Company{
		ID: "company-jindal", Name: "Jindal IVF Centre",
		RegistrationNumber: "CIN12345678901234", GSTNumber: "12ABCDE1234F1Z5", PANNumber: "ABCDE1234F",
		Address: "123 Medical Plaza, Health Sector", City: "Delhi", State: "Delhi", Pincode: "110001",
		Phone: "+91-11-12345678", Email: "info@jindalivf.com", Website: "www.jindalivf.com", IsActive: true,
	})
	if err != nil {
		return err
	}

	if _, err := registry.Buildings.Create(ctx, masters.Building{
		ID: "building-main", Name: "Main Medical Building", Code: "MMB001",
		Address: "123 Medical Plaza, Health Sector", City: "Delhi", State: "Delhi", Pincode: "110001",
		TotalFloors: 5, BuiltUpArea: "50000 sq ft", BuildingType: "Medical Complex", YearBuilt: "2015",
		Facilities: []string{"Parking", "Cafeteria", "Pharmacy"}, IsActive: true,
	}); err != nil {
		return err
	}

	branchSeeds := []masters.Branch{
		{
			ID: "office-delhi", Name: "Jindal IVF Main Branch", Code: "JIM001",
			CompanyID: "company-jindal", BuildingID: "building-main",
			Address: "123 Medical Plaza, Health Sector", City: "Delhi", State: "Delhi", Pincode: "110001",
			Phone: "+91-11-12345678", Email: "main@jindalivf.com",
			ManagerName: "Dr. Rajesh Kumar", ManagerPhone: "+91-9876543210",
			OperatingHours: "Mon-Sat: 9:00 AM - 6:00 PM",
			Services:       []string{"IVF Treatment", "Consultation", "Lab Tests", "Surgery"},
			IsMainBranch:   true, IsActive: true,
		},
		{
			ID: "office-gurgaon", Name: "Jindal IVF Satellite Centre", Code: "JIS001",
			CompanyID: "company-jindal", Address: "45 Cyber Park", City: "Gurgaon", State: "Haryana",
			Phone: "+91-124-5550199", Email: "gurgaon@jindalivf.com",
			OperatingHours: "Mon-Sat: 9:00 AM - 5:00 PM",
			Services:       []string{"IVF Treatment", "Consultation"}, IsActive: true,
		},
	}
	for _, b := range branchSeeds {
		if _, err := registry.Branches.Create(ctx, b); err != nil {
			return err
		}
	}

	menuSeeds := []masters.MenuItem{
		{ID: "menu-dashboard", Name: "Dashboard", Path: "/", Icon: "BarChart3", Order: 1, IsActive: true, Roles: []string{"tenant_admin", "doctor", "nurse"}},
		{ID: "menu-patient-care", Name: "Patient Care", Icon: "Heart", Order: 2, IsActive: true, Roles: []string{"doctor", "nurse"}},
		{ID: "menu-appointments", Name: "Appointments", Path: "/appointments", Icon: "Calendar", ParentID: "menu-patient-care", Order: 1, IsActive: true, Roles: []string{"doctor", "nurse", "receptionist"}},
		{ID: "menu-settings", Name: "Settings", Path: "/settings", Icon: "Settings", Order: 9, IsActive: true, Roles: []string{"tenant_admin"}},
	}
	for _, m := range menuSeeds {
		if _, err := registry.Menus.Create(ctx, m); err != nil {
			return err
		}
	}

	if _, err := registry.Roles.Create(ctx, masters.Role{
		ID: "role-tenant-admin", Name: "Hospital Admin", Code: "TADM", Description: "Full access within the hospital",
		Permissions: []masters.ModulePermission{
			{Module: "Dashboard", Create: true, Read: true, Update: true, Delete: true},
			{Module: "Settings", Create: true, Read: true, Update: true, Delete: true},
		},
		IsSystemRole: true, IsActive: true, UserCount: 2,
	}); err != nil {
		return err
	}

	if _, err := registry.StaffTypes.Create(ctx, masters.StaffType{
		ID: "staff-senior-consultant", Name: "Senior Consultant", Code: "SCON", Category: "Medical",
		Description:           "Leads treatment planning and complex procedures",
		QualificationRequired: []string{"MBBS", "MD"},
		Responsibilities:      []string{"Patient consultation", "Treatment planning"},
		SalaryRange:           masters.SalaryRange{Min: 150000, Max: 300000},
		IsActive:              true, StaffCount: 4,
	}); err != nil {
		return err
	}

	return nil
}
