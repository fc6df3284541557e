package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/events"
)

// publish hands event to the dispatcher. Delivery problems are logged, never returned.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
