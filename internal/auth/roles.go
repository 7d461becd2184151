package auth

import "github.com/noorskin/storefront/internal/domain"

var roleOrder = []domain.Role{
	domain.RoleSuperManager,
	domain.RoleStoreManager,
	domain.RoleOperationsManager,
	domain.RoleMarketingManager,
	domain.RoleFinanceManager,
	domain.RoleContentManager,
}

var roleLabels = map[domain.Role]string{
	domain.RoleSuperManager:      "المدير العام",
	domain.RoleStoreManager:      "مدير المتجر",
	domain.RoleOperationsManager: "مدير العمليات",
	domain.RoleMarketingManager:  "مدير التسويق",
	domain.RoleFinanceManager:    "المدير المالي",
	domain.RoleContentManager:    "مدير المحتوى",
}

// Roles returns the known roles in stable order.
func Roles() []domain.Role {
	return append([]domain.Role(nil), roleOrder...)
}

// ValidRole reports whether role is declared in the registry.
func ValidRole(role domain.Role) bool {
	_, ok := rolePermissions[role]
	return ok
}

// RoleLabel returns the Arabic display name for role, or the raw tag when unknown.
func RoleLabel(role domain.Role) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return string(role)
}
