package auth

import "github.com/noorskin/storefront/internal/domain"

// rolePermissions is the authorization table. Every role is listed in full;
// no role inherits from another.
var rolePermissions = map[domain.Role][]domain.Permission{
	domain.RoleSuperManager: {
		domain.PermissionReadDashboard,
		domain.PermissionManageProducts,
		domain.PermissionManageOrders,
		domain.PermissionManageCustomers,
		domain.PermissionManageInventory,
		domain.PermissionManageMarketing,
		domain.PermissionManageContent,
		domain.PermissionManageFinances,
		domain.PermissionViewAnalytics,
		domain.PermissionViewReports,
		domain.PermissionManageStaff,
		domain.PermissionSystemSettings,
	},
	domain.RoleStoreManager: {
		domain.PermissionReadDashboard,
		domain.PermissionManageProducts,
		domain.PermissionManageOrders,
		domain.PermissionManageCustomers,
		domain.PermissionManageInventory,
		domain.PermissionViewAnalytics,
		domain.PermissionViewReports,
		domain.PermissionManageStaff,
	},
	domain.RoleOperationsManager: {
		domain.PermissionReadDashboard,
		domain.PermissionManageOrders,
		domain.PermissionManageInventory,
		domain.PermissionManageCustomers,
		domain.PermissionViewReports,
	},
	domain.RoleMarketingManager: {
		domain.PermissionReadDashboard,
		domain.PermissionManageMarketing,
		domain.PermissionManageContent,
		domain.PermissionManageCustomers,
		domain.PermissionViewAnalytics,
	},
	domain.RoleFinanceManager: {
		domain.PermissionReadDashboard,
		domain.PermissionManageFinances,
		domain.PermissionViewReports,
		domain.PermissionViewAnalytics,
	},
	domain.RoleContentManager: {
		domain.PermissionReadDashboard,
		domain.PermissionManageContent,
		domain.PermissionManageProducts,
	},
}

var allPermissions = []domain.Permission{
	domain.PermissionReadDashboard,
	domain.PermissionManageProducts,
	domain.PermissionManageOrders,
	domain.PermissionManageCustomers,
	domain.PermissionManageInventory,
	domain.PermissionManageMarketing,
	domain.PermissionManageContent,
	domain.PermissionManageFinances,
	domain.PermissionViewAnalytics,
	domain.PermissionViewReports,
	domain.PermissionManageStaff,
	domain.PermissionSystemSettings,
}

// PermissionsFor returns a copy of the permission set granted to role.
// Unknown roles resolve to an empty set.
func PermissionsFor(role domain.Role) []domain.Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return []domain.Permission{}
	}
	return append([]domain.Permission(nil), perms...)
}

// HasRolePermission reports whether role grants permission.
func HasRolePermission(role domain.Role, permission domain.Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// Permissions returns every declared permission in stable order.
func Permissions() []domain.Permission {
	return append([]domain.Permission(nil), allPermissions...)
}
