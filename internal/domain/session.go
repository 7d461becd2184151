package domain

import "time"

// PersistedSessionVersion is the schema version written by this build.
const PersistedSessionVersion = 1

// PersistedSession is the record kept in session storage.
// It mirrors only what is needed to rebuild a session; permissions are re-derived on load.
type PersistedSession struct {
	State   PersistedSessionState `json:"state"`
	Version int                   `json:"version"`
}

// PersistedSessionState holds the authenticated principal, if any.
type PersistedSessionState struct {
	User            *PersistedUser `json:"user"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	SessionID       string         `json:"sessionId,omitempty"`
}

// PersistedUser is the stored shape of a ManagerUser.
// Permissions is read for compatibility with older records and is ignored on rehydration.
type PersistedUser struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	Department  string       `json:"department"`
	Phone       string       `json:"phone"`
	Avatar      string       `json:"avatar,omitempty"`
	JoinDate    time.Time    `json:"joinDate"`
	IsActive    bool         `json:"isActive"`
	LastLogin   *time.Time   `json:"lastLogin,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// NewPersistedUser strips derived data from u.
func NewPersistedUser(u *ManagerUser) *PersistedUser {
	if u == nil {
		return nil
	}
	clone := u.Clone()
	return &PersistedUser{
		ID:         clone.ID,
		Username:   clone.Username,
		Email:      clone.Email,
		Name:       clone.Name,
		Role:       clone.Role,
		Department: clone.Department,
		Phone:      clone.Phone,
		Avatar:     clone.Avatar,
		JoinDate:   clone.JoinDate,
		IsActive:   clone.IsActive,
		LastLogin:  clone.LastLogin,
	}
}
