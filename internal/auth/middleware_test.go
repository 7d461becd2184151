package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/events"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

type stubSession struct {
	hydrated  bool
	user      *domain.ManagerUser
	sessionID string
}

func (s *stubSession) IsHydrated() bool      { return s.hydrated }
func (s *stubSession) IsAuthenticated() bool { return s.user != nil }
func (s *stubSession) HasPermission(p domain.Permission) bool {
	return s.user.HasPermission(p)
}
func (s *stubSession) SessionID() string                { return s.sessionID }
func (s *stubSession) CurrentUser() *domain.ManagerUser { return s.user.Clone() }

func signedIn(role domain.Role) *stubSession {
	return &stubSession{
		hydrated:  true,
		sessionID: "sid-live",
		user:      &domain.ManagerUser{ID: "9", Username: string(role), Role: role, Permissions: PermissionsFor(role)},
	}
}

func newGuardApp(t *testing.T, sessions ConsoleSession, dispatcher events.Dispatcher, required ...domain.Permission) (*fiber.App, *TokenManager) {
	t.Helper()
	tokens := NewTokenManager("test-secret", 10)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "details": de.Details})
		},
	})
	guard := NewGuard(sessions, tokens, dispatcher)
	app.Get("/protected", guard.Require(required...), func(c *fiber.Ctx) error {
		user, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(user.Username)
	})
	return app, tokens
}

func bearer(t *testing.T, tokens *TokenManager, sid string) string {
	t.Helper()
	token, _, err := tokens.GenerateToken(sid, &domain.ManagerUser{ID: "9", Username: "x"})
	require.NoError(t, err)
	return "Bearer " + token
}

type errorBody struct {
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, errorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body errorBody
	if resp.StatusCode >= 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp, body
}

func TestGuard_CheckingWhileNotHydrated(t *testing.T) {
	app, tokens := newGuardApp(t, &stubSession{}, nil)
	resp, body := doRequest(t, app, bearer(t, tokens, "sid-live"))

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, apperrors.CodeSessionLoading, body.Code)
	assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Empty(t, resp.Header.Get(fiber.HeaderLocation))
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	app, _ := newGuardApp(t, &stubSession{hydrated: true}, nil)
	resp, body := doRequest(t, app, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeUnauthorized, body.Code)
	assert.Equal(t, LoginPath, resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, LoginPath, body.Details["redirect"])
}

func TestGuard_StaleTokenIsRejected(t *testing.T) {
	app, tokens := newGuardApp(t, signedIn(domain.RoleSuperManager), nil)
	resp, body := doRequest(t, app, bearer(t, tokens, "sid-previous"))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeUnauthorized, body.Code)
}

func TestGuard_MalformedHeaderIsRejected(t *testing.T) {
	app, _ := newGuardApp(t, signedIn(domain.RoleSuperManager), nil)
	resp, _ := doRequest(t, app, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuard_MissingPermissionIsForbidden(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var denied []events.Event
	dispatcher.Subscribe(events.EventAccessDenied, func(_ context.Context, e events.Event) error {
		denied = append(denied, e)
		return nil
	})

	app, tokens := newGuardApp(t, signedIn(domain.RoleFinanceManager), dispatcher, domain.PermissionManageProducts)
	resp, body := doRequest(t, app, bearer(t, tokens, "sid-live"))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apperrors.CodeForbidden, body.Code)
	assert.Equal(t, LoginPath, resp.Header.Get(fiber.HeaderLocation))
	require.Len(t, denied, 1)
	assert.Equal(t, domain.RoleFinanceManager, denied[0].Actor.Role)
	payload, ok := denied[0].Payload.(events.AccessDeniedPayload)
	require.True(t, ok)
	assert.Equal(t, "/protected", payload.Path)
}

func TestGuard_AllowsHolderOfPermission(t *testing.T) {
	app, tokens := newGuardApp(t, signedIn(domain.RoleContentManager), nil, domain.PermissionManageProducts)
	resp, _ := doRequest(t, app, bearer(t, tokens, "sid-live"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuard_MatchesSession(t *testing.T) {
	sessions := signedIn(domain.RoleSuperManager)
	tokens := NewTokenManager("test-secret", 10)
	guard := NewGuard(sessions, tokens, nil)
	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		if guard.MatchesSession(c) {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.SendStatus(http.StatusOK)
	})

	cases := map[string]struct {
		header string
		want   int
	}{
		"live token":  {bearer(t, tokens, "sid-live"), http.StatusNoContent},
		"stale token": {bearer(t, tokens, "sid-old"), http.StatusOK},
		"no token":    {"", http.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestPrincipalFromContext_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := PrincipalFromContext(c)
		assert.False(t, ok)
		return c.SendStatus(http.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
