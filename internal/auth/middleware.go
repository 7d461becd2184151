package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/events"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// ConsoleSession is what the guard needs from the session manager.
type ConsoleSession interface {
	SessionView
	SessionID() string
	CurrentUser() *domain.ManagerUser
}

// Guard protects console routes with the access gate.
type Guard struct {
	sessions   ConsoleSession
	tokens     *TokenManager
	dispatcher events.Dispatcher
}

// NewGuard constructs a guard. dispatcher may be nil.
func NewGuard(sessions ConsoleSession, tokens *TokenManager, dispatcher events.Dispatcher) *Guard {
	return &Guard{sessions: sessions, tokens: tokens, dispatcher: dispatcher}
}

// Require allows the request only when the gate allows it for the live session.
// With no permissions the route needs any authenticated principal.
func (g *Guard) Require(required ...domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !g.sessions.IsHydrated() {
			c.Set(fiber.HeaderRetryAfter, "1")
			return apperrors.NewSessionLoading()
		}
		if !g.tokenMatchesSession(c) {
			return deny(c, apperrors.NewUnauthorized(""))
		}

		switch Evaluate(g.sessions, required...) {
		case DecisionChecking:
			c.Set(fiber.HeaderRetryAfter, "1")
			return apperrors.NewSessionLoading()
		case DecisionDenyRedirect:
			if !g.sessions.IsAuthenticated() {
				return deny(c, apperrors.NewUnauthorized(""))
			}
			g.publishDenied(c, required)
			return deny(c, apperrors.NewForbidden(""))
		}

		user := g.sessions.CurrentUser()
		if user == nil {
			return deny(c, apperrors.NewUnauthorized(""))
		}
		c.Locals(principalKey, user)
		return c.Next()
	}
}

// MatchesSession reports whether the request's bearer token belongs to the live session.
func (g *Guard) MatchesSession(c *fiber.Ctx) bool {
	return g.tokenMatchesSession(c)
}

func (g *Guard) tokenMatchesSession(c *fiber.Ctx) bool {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false
	}
	claims, err := g.tokens.ParseToken(parts[1])
	if err != nil {
		return false
	}
	live := g.sessions.SessionID()
	return live != "" && claims.SessionID == live
}

func (g *Guard) publishDenied(c *fiber.Ctx, required []domain.Permission) {
	if g.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccessDenied,
		SessionID: g.sessions.SessionID(),
		Timestamp: time.Now(),
		Payload:   events.AccessDeniedPayload{Path: c.Path(), Required: required},
	}
	if user := g.sessions.CurrentUser(); user != nil {
		event.Actor = events.Actor{Username: user.Username, Role: user.Role}
	}
	_ = g.dispatcher.Publish(c.UserContext(), event)
}

func deny(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderLocation, LoginPath)
	return apperrors.WithRedirect(err, LoginPath)
}

// PrincipalFromContext retrieves the manager admitted by the guard.
func PrincipalFromContext(c *fiber.Ctx) (*domain.ManagerUser, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.ManagerUser)
	return principal, ok
}
