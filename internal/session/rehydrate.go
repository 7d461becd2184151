package session

import (
	"errors"
	"fmt"

	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
)

var (
	errUnsupportedVersion = errors.New("unsupported session schema version")
	errMissingPrincipal   = errors.New("authenticated record without principal")
	errUnknownRole        = errors.New("persisted role is not in the registry")
	errInactivePrincipal  = errors.New("persisted principal is inactive")
)

// state is the in-memory session. The zero value is Anonymous.
type state struct {
	user          *domain.ManagerUser
	authenticated bool
	sessionID     string
}

// rehydrate maps a persisted record to in-memory state. The persisted permission
// list is never read: permissions always come from the current registry.
func rehydrate(record *domain.PersistedSession, newID func() string) (state, error) {
	if record == nil {
		return state{}, nil
	}
	if record.Version > domain.PersistedSessionVersion {
		return state{}, fmt.Errorf("%w: %d", errUnsupportedVersion, record.Version)
	}
	if !record.State.IsAuthenticated {
		return state{}, nil
	}
	stored := record.State.User
	if stored == nil {
		return state{}, errMissingPrincipal
	}
	if !auth.ValidRole(stored.Role) {
		return state{}, fmt.Errorf("%w: %q", errUnknownRole, stored.Role)
	}
	if !stored.IsActive {
		return state{}, errInactivePrincipal
	}

	user := &domain.ManagerUser{
		ID:          stored.ID,
		Username:    stored.Username,
		Email:       stored.Email,
		Name:        stored.Name,
		Role:        stored.Role,
		RoleLabel:   auth.RoleLabel(stored.Role),
		Department:  stored.Department,
		Phone:       stored.Phone,
		Avatar:      stored.Avatar,
		JoinDate:    stored.JoinDate,
		IsActive:    stored.IsActive,
		Permissions: auth.PermissionsFor(stored.Role),
	}
	if stored.LastLogin != nil {
		ts := *stored.LastLogin
		user.LastLogin = &ts
	}

	sessionID := record.State.SessionID
	if sessionID == "" {
		sessionID = newID()
	}
	return state{user: user, authenticated: true, sessionID: sessionID}, nil
}

// persisted is the inverse of rehydrate; derived permissions are dropped.
func persisted(s state) domain.PersistedSession {
	record := domain.PersistedSession{Version: domain.PersistedSessionVersion}
	if !s.authenticated || s.user == nil {
		return record
	}
	record.State = domain.PersistedSessionState{
		User:            domain.NewPersistedUser(s.user),
		IsAuthenticated: true,
		SessionID:       s.sessionID,
	}
	return record
}
