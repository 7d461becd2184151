package auth

import "github.com/noorskin/storefront/internal/domain"

// LoginPath is where denied console requests are sent.
const LoginPath = "/manager/login"

// Decision is the outcome of evaluating a protected entry point.
type Decision int

const (
	// DecisionChecking means the session has not been rehydrated yet.
	// Callers must show neither protected content nor a redirect.
	DecisionChecking Decision = iota
	DecisionAllow
	DecisionDenyRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionChecking:
		return "checking"
	case DecisionAllow:
		return "allow"
	case DecisionDenyRedirect:
		return "deny_redirect"
	default:
		return "unknown"
	}
}

// SessionView is the read side of the session manager consulted by the gate.
type SessionView interface {
	IsHydrated() bool
	IsAuthenticated() bool
	HasPermission(domain.Permission) bool
}

// Evaluate decides whether a protected page may render. With no required
// permissions any authenticated principal is allowed; otherwise all of them must be held.
func Evaluate(view SessionView, required ...domain.Permission) Decision {
	if view == nil || !view.IsHydrated() {
		return DecisionChecking
	}
	if !view.IsAuthenticated() {
		return DecisionDenyRedirect
	}
	for _, p := range required {
		if !view.HasPermission(p) {
			return DecisionDenyRedirect
		}
	}
	return DecisionAllow
}
