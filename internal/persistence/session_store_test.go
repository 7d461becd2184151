package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noorskin/storefront/internal/domain"
)

func newMiniredisStore(t *testing.T, ttl time.Duration) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, "", ttl), mr
}

func TestRedisSessionStore_LoadMissingReturnsNil(t *testing.T) {
	store, _ := newMiniredisStore(t, 0)
	record, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRedisSessionStore_SaveLoadClear(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	ctx := context.Background()

	in := domain.PersistedSession{
		Version: domain.PersistedSessionVersion,
		State: domain.PersistedSessionState{
			IsAuthenticated: true,
			SessionID:       "sid-1",
			User:            &domain.PersistedUser{ID: "1", Username: "super_manager", Role: domain.RoleSuperManager},
		},
	}
	require.NoError(t, store.Save(ctx, in))
	assert.True(t, mr.Exists(DefaultSessionKey))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "sid-1", out.State.SessionID)
	assert.Equal(t, domain.RoleSuperManager, out.State.User.Role)

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists(DefaultSessionKey))
	require.NoError(t, store.Clear(ctx))
}

func TestRedisSessionStore_ReadsLegacyPermissionList(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	require.NoError(t, mr.Set(DefaultSessionKey,
		`{"state":{"user":{"id":"6","username":"content_manager","role":"content_manager","permissions":["system_settings"]},"isAuthenticated":true},"version":0}`))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out.State.User)
	assert.Equal(t, 0, out.Version)
	assert.Equal(t, []domain.Permission{domain.PermissionSystemSettings}, out.State.User.Permissions)
}

func TestRedisSessionStore_CorruptRecord(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	require.NoError(t, mr.Set(DefaultSessionKey, "{not json"))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestRedisSessionStore_TTL(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Minute)
	require.NoError(t, store.Save(context.Background(), domain.PersistedSession{Version: 1}))
	assert.Equal(t, time.Minute, mr.TTL(DefaultSessionKey))

	mr.FastForward(2 * time.Minute)
	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRedisSessionStore_Unreachable(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	mr.Close()

	_, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), domain.PersistedSession{}))
}
