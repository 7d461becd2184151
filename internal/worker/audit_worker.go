package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/noorskin/storefront/internal/events"
	"github.com/noorskin/storefront/internal/observability"
)

// StartAuditWorker subscribes audit logging and login metrics to console events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")

	dispatcher.Subscribe(events.EventLoginSucceeded, func(_ context.Context, e events.Event) error {
		metrics.RecordLogin("success")
		audit.Info("manager logged in", eventFields(e)...)
		return nil
	})
	dispatcher.Subscribe(events.EventLoginFailed, func(_ context.Context, e events.Event) error {
		metrics.RecordLogin("failure")
		fields := eventFields(e)
		if p, ok := e.Payload.(events.LoginFailedPayload); ok {
			fields = append(fields, zap.String("attempted_username", p.Username), zap.String("reason", p.Reason))
		}
		audit.Info("manager login rejected", fields...)
		return nil
	})
	dispatcher.Subscribe(events.EventLogout, func(_ context.Context, e events.Event) error {
		audit.Info("manager logged out", eventFields(e)...)
		return nil
	})
	dispatcher.Subscribe(events.EventProfileUpdated, func(_ context.Context, e events.Event) error {
		fields := eventFields(e)
		if p, ok := e.Payload.(events.ProfileUpdatedPayload); ok {
			fields = append(fields, zap.Strings("fields", p.Fields))
		}
		audit.Info("manager profile updated", fields...)
		return nil
	})
	dispatcher.Subscribe(events.EventRehydrated, func(_ context.Context, e events.Event) error {
		fields := eventFields(e)
		if p, ok := e.Payload.(events.RehydratedPayload); ok {
			fields = append(fields, zap.Bool("authenticated", p.Authenticated))
			if p.FallbackCause != "" {
				fields = append(fields, zap.String("fallback_cause", p.FallbackCause))
			}
		}
		audit.Info("session rehydrated", fields...)
		return nil
	})
	dispatcher.Subscribe(events.EventPersistFailed, func(_ context.Context, e events.Event) error {
		audit.Warn("session storage out of sync", eventFields(e)...)
		return nil
	})
	dispatcher.Subscribe(events.EventAccessDenied, func(_ context.Context, e events.Event) error {
		fields := eventFields(e)
		if p, ok := e.Payload.(events.AccessDeniedPayload); ok {
			fields = append(fields, zap.String("path", p.Path))
		}
		audit.Info("console access denied", fields...)
		return nil
	})
	dispatcher.Subscribe(events.EventProductsChanged, func(_ context.Context, e events.Event) error {
		fields := eventFields(e)
		if p, ok := e.Payload.(events.ProductsChangedPayload); ok {
			fields = append(fields, zap.Int64("product_id", p.ProductID), zap.String("action", p.Action))
		}
		audit.Info("catalog changed", fields...)
		return nil
	})
}

func eventFields(e events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", e.ID),
		zap.String("event", string(e.Type)),
		zap.Time("at", e.Timestamp),
	}
	if e.SessionID != "" {
		fields = append(fields, zap.String("session_id", e.SessionID))
	}
	if e.Actor.Username != "" {
		fields = append(fields, zap.String("username", e.Actor.Username), zap.String("role", string(e.Actor.Role)))
	}
	return fields
}
