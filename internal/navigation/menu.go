package navigation

import (
	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
)

// Item is one entry of the manager console sidebar.
type Item struct {
	Key      string             `json:"key"`
	Title    string             `json:"title"`
	Href     string             `json:"href"`
	Required *domain.Permission `json:"requiredPermission,omitempty"`
}

func requires(p domain.Permission) *domain.Permission { return &p }

var managerMenu = []Item{
	{Key: "dashboard", Title: "لوحة التحكم", Href: "/manager", Required: requires(domain.PermissionReadDashboard)},
	{Key: "products", Title: "المنتجات", Href: "/manager/products", Required: requires(domain.PermissionManageProducts)},
	{Key: "orders", Title: "الطلبات", Href: "/manager/orders", Required: requires(domain.PermissionManageOrders)},
	{Key: "customers", Title: "العملاء", Href: "/manager/customers", Required: requires(domain.PermissionManageCustomers)},
	{Key: "inventory", Title: "المخزون", Href: "/manager/inventory", Required: requires(domain.PermissionManageInventory)},
	{Key: "marketing", Title: "التسويق", Href: "/manager/marketing", Required: requires(domain.PermissionManageMarketing)},
	{Key: "content", Title: "المحتوى", Href: "/manager/content", Required: requires(domain.PermissionManageContent)},
	{Key: "finances", Title: "المالية", Href: "/manager/finances", Required: requires(domain.PermissionManageFinances)},
	{Key: "analytics", Title: "التحليلات", Href: "/manager/analytics", Required: requires(domain.PermissionViewAnalytics)},
	{Key: "reports", Title: "التقارير", Href: "/manager/reports", Required: requires(domain.PermissionViewReports)},
	{Key: "staff", Title: "الموظفون", Href: "/manager/staff", Required: requires(domain.PermissionManageStaff)},
	{Key: "settings", Title: "إعدادات النظام", Href: "/manager/settings", Required: requires(domain.PermissionSystemSettings)},
	{Key: "profile", Title: "الملف الشخصي", Href: "/manager/profile"},
}

// Visible returns the menu items the session may open. Items the principal lacks
// a permission for are omitted rather than shown disabled.
func Visible(view auth.SessionView) []Item {
	items := make([]Item, 0, len(managerMenu))
	if view == nil || !view.IsAuthenticated() {
		return items
	}
	for _, item := range managerMenu {
		if item.Required != nil && !view.HasPermission(*item.Required) {
			continue
		}
		items = append(items, item)
	}
	return items
}
