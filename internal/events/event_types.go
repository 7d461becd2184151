package events

import (
	"time"

	"github.com/noorskin/storefront/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "session_login_succeeded"
	EventLoginFailed     EventType = "session_login_failed"
	EventLogout          EventType = "session_logout"
	EventProfileUpdated  EventType = "session_profile_updated"
	EventRehydrated      EventType = "session_rehydrated"
	EventPersistFailed   EventType = "session_persist_failed"
	EventAccessDenied    EventType = "console_access_denied"
	EventProductsChanged EventType = "catalog_products_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Username string      `json:"username,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// Event represents something that happened to the console session or catalog.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload payload. Reason is internal and never shown to the user.
type LoginFailedPayload struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// RehydratedPayload payload.
type RehydratedPayload struct {
	Authenticated bool   `json:"authenticated"`
	FallbackCause string `json:"fallback_cause,omitempty"`
}

// ProfileUpdatedPayload lists the fields that changed.
type ProfileUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// PersistFailedPayload payload.
type PersistFailedPayload struct {
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Path     string              `json:"path"`
	Required []domain.Permission `json:"required,omitempty"`
}

// ProductsChangedPayload payload.
type ProductsChangedPayload struct {
	ProductID int64  `json:"product_id"`
	Action    string `json:"action"`
}
