package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/events"
	"github.com/noorskin/storefront/internal/observability"
)

func TestAuditWorker_LogsAndCountsLogins(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core), metrics)

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:      events.EventLoginSucceeded,
		SessionID: "sid",
		Actor:     events.Actor{Username: "super_manager", Role: domain.RoleSuperManager},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:    events.EventLoginFailed,
		Payload: events.LoginFailedPayload{Username: "ghost", Reason: "invalid_credentials"},
	}))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Logins["success"])
	assert.Equal(t, int64(1), snap.Logins["failure"])

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "audit", first.LoggerName)
	assert.Equal(t, "super_manager", first.ContextMap()["username"])
	assert.Equal(t, "invalid_credentials", logs.All()[1].ContextMap()["reason"])
}

func TestAuditWorker_PersistFailureIsWarning(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core), nil)

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventPersistFailed}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
}

func TestAuditWorker_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, zap.NewNop(), nil) })
}
