package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextActorKey ctxKey = "actorID"

// ActorFromContext returns the acting user id set by the actor middleware,
// or 0 when the request is unauthenticated.
func ActorFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if actorID, ok := ctx.Value(ContextActorKey).(int64); ok {
		return actorID
	}
	return 0
}

func ContextWithActor(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, ContextActorKey, actorID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
