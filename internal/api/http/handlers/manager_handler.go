package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noorskin/storefront/internal/api/dto"
	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/navigation"
	"github.com/noorskin/storefront/internal/session"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

// SessionOwnership tells whether a request carries the live session's token.
type SessionOwnership interface {
	MatchesSession(c *fiber.Ctx) bool
}

// ManagerHandler exposes the console session over HTTP.
type ManagerHandler struct {
	sessions *session.Manager
	tokens   *auth.TokenManager
	owner    SessionOwnership
	version  string
}

// NewManagerHandler constructs handler.
func NewManagerHandler(sessions *session.Manager, tokens *auth.TokenManager, owner SessionOwnership, version string) *ManagerHandler {
	return &ManagerHandler{sessions: sessions, tokens: tokens, owner: owner, version: version}
}

// Login handles POST /manager/auth/login.
func (h *ManagerHandler) Login(c *fiber.Ctx) error {
	var req dto.ManagerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("", nil)
	}
	// Blank input is a validation error; matching itself uses the username as sent.
	check := req
	check.Username = strings.TrimSpace(check.Username)
	if err := dto.Validate(check); err != nil {
		return apperrors.NewValidationError("يرجى إدخال اسم المستخدم وكلمة المرور", apperrors.ToDomainError(err).Details)
	}

	snap, ok := h.sessions.LoginSession(c.UserContext(), req.Username, req.Password)
	if !ok {
		return apperrors.NewInvalidCredentials()
	}

	token, exp, err := h.tokens.GenerateToken(snap.SessionID, snap.User)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return writeData(c, http.StatusOK, h.version, dto.ManagerLoginResponse{
		User:      snap.User,
		Token:     token,
		ExpiresAt: exp,
	}, nil)
}

// Logout handles POST /manager/auth/logout. Only the live session's token ends it;
// any other caller gets the same 200 without touching the session.
func (h *ManagerHandler) Logout(c *fiber.Ctx) error {
	if h.owner.MatchesSession(c) {
		h.sessions.Logout(c.UserContext())
	}
	return writeData(c, http.StatusOK, h.version, fiber.Map{"redirect": auth.LoginPath}, nil)
}

// Session handles GET /manager/session.
func (h *ManagerHandler) Session(c *fiber.Ctx) error {
	snap := h.sessions.Snapshot()
	return writeData(c, http.StatusOK, h.version, dto.SessionResponse{
		Hydrated:        snap.Hydrated,
		IsAuthenticated: snap.Authenticated,
		User:            snap.User,
	}, nil)
}

// Me handles GET /manager/me.
func (h *ManagerHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("")
	}
	return writeData(c, http.StatusOK, h.version, user, nil)
}

// UpdateProfile handles PATCH /manager/profile.
func (h *ManagerHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	applied := h.sessions.UpdateProfile(c.UserContext(), session.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if !applied {
		return apperrors.WithRedirect(apperrors.NewUnauthorized(""), auth.LoginPath)
	}
	return writeData(c, http.StatusOK, h.version, h.sessions.CurrentUser(), nil)
}

// Navigation handles GET /manager/navigation.
func (h *ManagerHandler) Navigation(c *fiber.Ctx) error {
	return writeData(c, http.StatusOK, h.version, navigation.Visible(h.sessions), nil)
}
