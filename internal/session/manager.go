package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/events"
	"github.com/noorskin/storefront/internal/repository"
)

// Dependencies bundles collaborators of the manager.
type Dependencies struct {
	Credentials repository.CredentialStore
	Store       Store
	Events      events.Dispatcher
	Logger      *zap.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLoginLatency delays every login attempt by d, bounded by the caller's context.
func WithLoginLatency(d time.Duration) Option {
	return func(m *Manager) { m.loginLatency = d }
}

// WithClock overrides the time source used for LastLogin and events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// Snapshot is a consistent read of the session.
type Snapshot struct {
	Hydrated      bool                `json:"hydrated"`
	Authenticated bool                `json:"isAuthenticated"`
	SessionID     string              `json:"-"`
	User          *domain.ManagerUser `json:"user"`
}

// ProfileUpdate carries the profile fields a manager may change about themselves.
// Nil fields are left untouched. Role and permissions are not part of it.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Department *string
	Avatar     *string
}

// Manager owns the console's single session: Anonymous or Authenticated.
// Mutations update memory first; storage follows as a side effect.
type Manager struct {
	mu       sync.RWMutex
	current  state
	hydrated bool

	hydrateOnce sync.Once
	loginSlot   *semaphore.Weighted
	persistMu   sync.Mutex

	credentials  repository.CredentialStore
	store        Store
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	loginLatency time.Duration
	now          func() time.Time
	newID        func() string
}

// NewManager constructs a manager in the Anonymous, not yet hydrated state.
func NewManager(deps Dependencies, opts ...Option) *Manager {
	m := &Manager{
		loginSlot:   semaphore.NewWeighted(1),
		credentials: deps.Credentials,
		store:       deps.Store,
		dispatcher:  deps.Events,
		logger:      deps.Logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rehydrate restores the session from storage. Only the first call reads storage;
// any failure leaves the manager Anonymous. The manager is hydrated afterwards.
func (m *Manager) Rehydrate(ctx context.Context) Snapshot {
	m.hydrateOnce.Do(func() {
		next, cause := m.loadPersisted(ctx)

		m.mu.Lock()
		applied := !m.hydrated
		if applied {
			m.current = next
			m.hydrated = true
		}
		m.mu.Unlock()

		if !applied {
			return
		}
		payload := events.RehydratedPayload{Authenticated: next.authenticated}
		if cause != nil {
			payload.FallbackCause = cause.Error()
		}
		m.publish(ctx, events.EventRehydrated, next, payload)
	})
	return m.Snapshot()
}

func (m *Manager) loadPersisted(ctx context.Context) (state, error) {
	if m.store == nil {
		return state{}, nil
	}
	record, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("session rehydration failed; starting anonymous", zap.Error(err))
		return state{}, err
	}
	next, err := rehydrate(record, m.newID)
	if err != nil {
		m.logger.Warn("persisted session rejected; starting anonymous", zap.Error(err))
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.Warn("clearing rejected session failed", zap.Error(clearErr))
		}
		return state{}, err
	}
	return next, nil
}

// Login authenticates against the credential store. A failed attempt returns false
// and leaves any existing session untouched. Attempts are serialized.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	_, ok := m.LoginSession(ctx, username, password)
	return ok
}

// LoginSession is Login returning the session it created, so callers can bind
// to that exact session even if another login replaces it right after.
func (m *Manager) LoginSession(ctx context.Context, username, password string) (Snapshot, bool) {
	if username == "" || password == "" {
		m.publish(ctx, events.EventLoginFailed, state{}, events.LoginFailedPayload{Username: username, Reason: "empty_credentials"})
		return Snapshot{}, false
	}
	if err := m.loginSlot.Acquire(ctx, 1); err != nil {
		return Snapshot{}, false
	}
	defer m.loginSlot.Release(1)

	if !m.simulateLatency(ctx) {
		return Snapshot{}, false
	}

	user, err := m.credentials.FindByCredentials(ctx, username, password)
	if err != nil {
		reason := "invalid_credentials"
		if !errors.Is(err, repository.ErrNotFound) {
			reason = "lookup_failed"
			m.logger.Warn("credential lookup failed", zap.String("username", username), zap.Error(err))
		}
		m.publish(ctx, events.EventLoginFailed, state{}, events.LoginFailedPayload{Username: username, Reason: reason})
		return Snapshot{}, false
	}

	loginAt := m.now()
	user = user.Clone()
	user.LastLogin = &loginAt
	user.RoleLabel = auth.RoleLabel(user.Role)
	user.Permissions = auth.PermissionsFor(user.Role)

	next := state{user: user, authenticated: true, sessionID: m.newID()}
	m.mu.Lock()
	m.current = next
	m.hydrated = true
	m.mu.Unlock()

	m.persistCurrent(ctx, "login")
	m.publish(ctx, events.EventLoginSucceeded, next, nil)
	return Snapshot{Hydrated: true, Authenticated: true, SessionID: next.sessionID, User: user.Clone()}, true
}

func (m *Manager) simulateLatency(ctx context.Context) bool {
	if m.loginLatency <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(m.loginLatency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Logout returns to Anonymous and clears storage. Storage is cleared even when
// already Anonymous, so a clear that failed earlier is retried.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	previous := m.current
	m.current = state{}
	m.hydrated = true
	m.mu.Unlock()

	m.persistCurrent(ctx, "logout")
	if previous.authenticated {
		m.publish(ctx, events.EventLogout, previous, nil)
	}
}

// HasPermission reports whether the current principal holds p. Always false when Anonymous.
func (m *Manager) HasPermission(p domain.Permission) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.current.authenticated {
		return false
	}
	return m.current.user.HasPermission(p)
}

// UpdateProfile merges profile fields into the current principal. Returns false when Anonymous.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) bool {
	m.mu.Lock()
	if !m.current.authenticated || m.current.user == nil {
		m.mu.Unlock()
		return false
	}
	user := m.current.user.Clone()
	changed := applyProfile(user, update)
	m.current.user = user
	snapshot := m.current
	m.mu.Unlock()

	if len(changed) == 0 {
		return true
	}
	m.persistCurrent(ctx, "update_profile")
	m.publish(ctx, events.EventProfileUpdated, snapshot, events.ProfileUpdatedPayload{Fields: changed})
	return true
}

func applyProfile(user *domain.ManagerUser, update ProfileUpdate) []string {
	var changed []string
	set := func(field string, dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = append(changed, field)
		}
	}
	set("name", &user.Name, update.Name)
	set("email", &user.Email, update.Email)
	set("phone", &user.Phone, update.Phone)
	set("department", &user.Department, update.Department)
	set("avatar", &user.Avatar, update.Avatar)
	return changed
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Hydrated:      m.hydrated,
		Authenticated: m.current.authenticated,
		SessionID:     m.current.sessionID,
		User:          m.current.user.Clone(),
	}
}

// IsHydrated reports whether the session has been resolved since start.
func (m *Manager) IsHydrated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hydrated
}

// IsAuthenticated reports whether a principal is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.authenticated
}

// SessionID returns the live session id, empty when Anonymous.
func (m *Manager) SessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.sessionID
}

// CurrentUser returns a copy of the current principal, nil when Anonymous.
func (m *Manager) CurrentUser() *domain.ManagerUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.user.Clone()
}

// persistCurrent writes whatever is in memory at write time, so concurrent mutations
// leave storage matching the last in-memory state. Failures are logged only.
func (m *Manager) persistCurrent(ctx context.Context, operation string) {
	if m.store == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	m.mu.RLock()
	current := m.current
	m.mu.RUnlock()

	var err error
	if current.authenticated {
		err = m.store.Save(ctx, persisted(current))
	} else {
		err = m.store.Clear(ctx)
	}
	if err != nil {
		m.logger.Warn("session persistence failed; in-memory session kept",
			zap.String("operation", operation), zap.Error(err))
		m.publish(ctx, events.EventPersistFailed, current, events.PersistFailedPayload{Operation: operation, Error: err.Error()})
	}
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, s state, payload interface{}) {
	if m.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: s.sessionID,
		Timestamp: m.now(),
		Payload:   payload,
	}
	if s.user != nil {
		event.Actor = events.Actor{Username: s.user.Username, Role: s.user.Role}
	}
	if err := m.dispatcher.Publish(ctx, event); err != nil {
		m.logger.Warn("session event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
