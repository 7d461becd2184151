package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noorskin/storefront/internal/domain"
)

func newSeededStore(t *testing.T) CredentialStore {
	t.Helper()
	store, err := NewSeedCredentialStore(DefaultManagerSeeds(), bcrypt.MinCost)
	require.NoError(t, err)
	return store
}

func TestFindByCredentials_EverySeedLogsIn(t *testing.T) {
	store := newSeededStore(t)
	for _, seed := range DefaultManagerSeeds() {
		t.Run(seed.User.Username, func(t *testing.T) {
			user, err := store.FindByCredentials(context.Background(), seed.User.Username, seed.Password)
			require.NoError(t, err)
			assert.Equal(t, seed.User.Role, user.Role)
			assert.NotEmpty(t, user.RoleLabel)
			assert.NotEmpty(t, user.Permissions)
		})
	}
}

func TestFindByCredentials_MissesLookAlike(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	_, wrongPassword := store.FindByCredentials(ctx, "super_manager", "wrong")
	_, unknownUser := store.FindByCredentials(ctx, "unknown_user", "super123")
	assert.ErrorIs(t, wrongPassword, ErrNotFound)
	assert.ErrorIs(t, unknownUser, ErrNotFound)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestFindByCredentials_UsernameIsCaseSensitive(t *testing.T) {
	_, err := newSeededStore(t).FindByCredentials(context.Background(), "Super_Manager", "super123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByCredentials_InactiveAccountIsRejected(t *testing.T) {
	store, err := NewSeedCredentialStore([]CredentialSeed{{
		Password: "pw",
		User:     domain.ManagerUser{ID: "7", Username: "former", Role: domain.RoleStoreManager},
	}}, bcrypt.MinCost)
	require.NoError(t, err)

	_, err = store.FindByCredentials(context.Background(), "former", "pw")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByCredentials_ReturnsIndependentCopies(t *testing.T) {
	store := newSeededStore(t)
	first, err := store.FindByCredentials(context.Background(), "content_manager", "content123")
	require.NoError(t, err)
	first.Permissions[0] = domain.PermissionSystemSettings
	first.Name = "changed"

	second, err := store.FindByCredentials(context.Background(), "content_manager", "content123")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", second.Name)
	assert.False(t, second.HasPermission(domain.PermissionSystemSettings))
}

func TestNewSeedCredentialStore_RejectsBadSeeds(t *testing.T) {
	cases := map[string][]CredentialSeed{
		"empty password": {{User: domain.ManagerUser{Username: "a", Role: domain.RoleSuperManager}}},
		"unknown role":   {{Password: "x", User: domain.ManagerUser{Username: "a", Role: "intern"}}},
		"duplicate": {
			{Password: "x", User: domain.ManagerUser{Username: "a", Role: domain.RoleSuperManager}},
			{Password: "y", User: domain.ManagerUser{Username: "a", Role: domain.RoleStoreManager}},
		},
	}
	for name, seeds := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewSeedCredentialStore(seeds, bcrypt.MinCost)
			assert.Error(t, err)
		})
	}
}

func TestListByRole(t *testing.T) {
	store := newSeededStore(t)
	users, err := store.ListByRole(context.Background(), domain.RoleFinanceManager)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "finance_manager", users[0].Username)

	users, err = store.ListByRole(context.Background(), "intern")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDefaultManagerSeeds_OnePerRole(t *testing.T) {
	seen := map[domain.Role]bool{}
	for _, seed := range DefaultManagerSeeds() {
		assert.False(t, seen[seed.User.Role])
		seen[seed.User.Role] = true
		assert.True(t, seed.User.IsActive)
	}
	assert.Len(t, seen, 6)
}
