package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
)

// ErrNotFound is returned when a lookup has no match.
var ErrNotFound = errors.New("not found")

// CredentialStore resolves back-office principals from login credentials.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, username, password string) (*domain.ManagerUser, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.ManagerUser, error)
}

// CredentialSeed is one known principal and its plaintext secret.
type CredentialSeed struct {
	User     domain.ManagerUser
	Password string
}

type credentialRecord struct {
	user         domain.ManagerUser
	passwordHash string
}

type seedCredentialStore struct {
	byUsername map[string]credentialRecord
	dummyHash  string
}

// NewSeedCredentialStore hashes seeds with bcrypt and serves lookups from memory.
func NewSeedCredentialStore(seeds []CredentialSeed, bcryptCost int) (CredentialStore, error) {
	store := &seedCredentialStore{byUsername: make(map[string]credentialRecord, len(seeds))}
	for _, seed := range seeds {
		if seed.User.Username == "" || seed.Password == "" {
			return nil, errors.New("seed username and password required")
		}
		if !auth.ValidRole(seed.User.Role) {
			return nil, fmt.Errorf("seed %s: unknown role %q", seed.User.Username, seed.User.Role)
		}
		if _, dup := store.byUsername[seed.User.Username]; dup {
			return nil, fmt.Errorf("seed %s: duplicate username", seed.User.Username)
		}
		hash, err := auth.HashPassword(seed.Password, bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed %s: %w", seed.User.Username, err)
		}
		user := seed.User
		user.Permissions = nil
		store.byUsername[user.Username] = credentialRecord{user: user, passwordHash: hash}
	}

	dummy, err := auth.HashPassword("unused-credential", bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy credential: %w", err)
	}
	store.dummyHash = dummy
	return store, nil
}

func (s *seedCredentialStore) FindByCredentials(_ context.Context, username, password string) (*domain.ManagerUser, error) {
	record, ok := s.byUsername[username]
	if !ok {
		// Spend the same bcrypt work so a miss on username looks like a miss on password.
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, ErrNotFound
	}
	if err := auth.ComparePassword(record.passwordHash, password); err != nil {
		return nil, ErrNotFound
	}
	if !record.user.IsActive {
		return nil, ErrNotFound
	}
	return decorate(record.user), nil
}

func (s *seedCredentialStore) ListByRole(_ context.Context, role domain.Role) ([]domain.ManagerUser, error) {
	users := make([]domain.ManagerUser, 0)
	for _, record := range s.byUsername {
		if record.user.Role == role {
			users = append(users, *decorate(record.user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func decorate(u domain.ManagerUser) *domain.ManagerUser {
	out := u.Clone()
	out.RoleLabel = auth.RoleLabel(out.Role)
	out.Permissions = auth.PermissionsFor(out.Role)
	return out
}

// DefaultManagerSeeds returns the demo console accounts, one per role.
func DefaultManagerSeeds() []CredentialSeed {
	joined := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return []CredentialSeed{
		{
			Password: "super123",
			User: domain.ManagerUser{
				ID: "1", Username: "super_manager", Email: "super@glow-store.com",
				Name: "أحمد محمد العلي", Role: domain.RoleSuperManager,
				Department: "الإدارة العليا", Phone: "+966501234567",
				JoinDate: joined(2023, time.January, 15), IsActive: true,
			},
		},
		{
			Password: "store123",
			User: domain.ManagerUser{
				ID: "2", Username: "store_manager", Email: "store@glow-store.com",
				Name: "فاطمة سالم الزهراني", Role: domain.RoleStoreManager,
				Department: "إدارة المتجر", Phone: "+966502345678",
				JoinDate: joined(2023, time.March, 1), IsActive: true,
			},
		},
		{
			Password: "operations123",
			User: domain.ManagerUser{
				ID: "3", Username: "operations_manager", Email: "operations@glow-store.com",
				Name: "خالد عبدالله القحطاني", Role: domain.RoleOperationsManager,
				Department: "العمليات", Phone: "+966503456789",
				JoinDate: joined(2023, time.April, 10), IsActive: true,
			},
		},
		{
			Password: "marketing123",
			User: domain.ManagerUser{
				ID: "4", Username: "marketing_manager", Email: "marketing@glow-store.com",
				Name: "نورة فهد الدوسري", Role: domain.RoleMarketingManager,
				Department: "التسويق", Phone: "+966504567890",
				JoinDate: joined(2023, time.May, 20), IsActive: true,
			},
		},
		{
			Password: "finance123",
			User: domain.ManagerUser{
				ID: "5", Username: "finance_manager", Email: "finance@glow-store.com",
				Name: "محمد سعد الشهري", Role: domain.RoleFinanceManager,
				Department: "المالية", Phone: "+966505678901",
				JoinDate: joined(2023, time.June, 5), IsActive: true,
			},
		},
		{
			Password: "content123",
			User: domain.ManagerUser{
				ID: "6", Username: "content_manager", Email: "content@glow-store.com",
				Name: "سارة علي المطيري", Role: domain.RoleContentManager,
				Department: "المحتوى", Phone: "+966506789012",
				JoinDate: joined(2023, time.July, 12), IsActive: true,
			},
		},
	}
}
