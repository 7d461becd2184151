package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/noorskin/storefront/internal/api/dto"
	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/repository"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

// StaffHandler lists console accounts and the role table.
type StaffHandler struct {
	credentials repository.CredentialStore
	version     string
}

// NewStaffHandler constructs handler.
func NewStaffHandler(credentials repository.CredentialStore, version string) *StaffHandler {
	return &StaffHandler{credentials: credentials, version: version}
}

// List handles GET /manager/staff?role=.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	roles := auth.Roles()
	if raw := c.Query("role"); raw != "" {
		role := domain.Role(raw)
		if !auth.ValidRole(role) {
			return apperrors.NewValidationError("", map[string]any{"role": "الدور غير معروف"})
		}
		roles = []domain.Role{role}
	}

	staff := make([]domain.ManagerUser, 0)
	for _, role := range roles {
		users, err := h.credentials.ListByRole(c.UserContext(), role)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		staff = append(staff, users...)
	}
	return writeData(c, http.StatusOK, h.version, staff, nil)
}

// Roles handles GET /manager/roles.
func (h *StaffHandler) Roles(c *fiber.Ctx) error {
	roles := auth.Roles()
	table := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		table = append(table, dto.RoleResponse{
			Role:        role,
			Label:       auth.RoleLabel(role),
			Permissions: auth.PermissionsFor(role),
		})
	}
	return writeData(c, http.StatusOK, h.version, table, nil)
}
