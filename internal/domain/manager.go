package domain

import "time"

// Role identifies a back-office job function.
type Role string

const (
	RoleSuperManager      Role = "super_manager"
	RoleStoreManager      Role = "store_manager"
	RoleOperationsManager Role = "operations_manager"
	RoleMarketingManager  Role = "marketing_manager"
	RoleFinanceManager    Role = "finance_manager"
	RoleContentManager    Role = "content_manager"
)

func (r Role) String() string {
	return string(r)
}

// Permission identifies a single capability gating a console page or action.
type Permission string

const (
	PermissionReadDashboard   Permission = "read_dashboard"
	PermissionManageProducts  Permission = "manage_products"
	PermissionManageOrders    Permission = "manage_orders"
	PermissionManageCustomers Permission = "manage_customers"
	PermissionManageInventory Permission = "manage_inventory"
	PermissionManageMarketing Permission = "manage_marketing"
	PermissionManageContent   Permission = "manage_content"
	PermissionManageFinances  Permission = "manage_finances"
	PermissionViewAnalytics   Permission = "view_analytics"
	PermissionViewReports     Permission = "view_reports"
	PermissionManageStaff     Permission = "manage_staff"
	PermissionSystemSettings  Permission = "system_settings"
)

func (p Permission) String() string {
	return string(p)
}

// ManagerUser is an authenticated back-office principal.
// Permissions is always derived from Role and is never persisted.
type ManagerUser struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	RoleLabel   string       `json:"roleLabel"`
	Department  string       `json:"department"`
	Phone       string       `json:"phone"`
	Avatar      string       `json:"avatar,omitempty"`
	JoinDate    time.Time    `json:"joinDate"`
	IsActive    bool         `json:"isActive"`
	LastLogin   *time.Time   `json:"lastLogin,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// Clone returns a deep copy so callers cannot mutate session state through shared slices.
func (u *ManagerUser) Clone() *ManagerUser {
	if u == nil {
		return nil
	}
	out := *u
	if u.LastLogin != nil {
		ts := *u.LastLogin
		out.LastLogin = &ts
	}
	out.Permissions = append([]Permission(nil), u.Permissions...)
	return &out
}

// HasPermission reports whether the derived permission set contains p.
func (u *ManagerUser) HasPermission(p Permission) bool {
	if u == nil {
		return false
	}
	for _, granted := range u.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
