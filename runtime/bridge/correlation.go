package bridge

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const correlationIDKey ctxKey = iota

// WithCorrelationID returns a context carrying the ambient per-invocation
// correlation identifier. The router sets it from its own request id; the
// bridge generates one when absent.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the correlation identifier carried by ctx, or the
// empty string when none is set.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ensureCorrelationID guarantees ctx carries a correlation id, preferring
// the request's own id and falling back to a fresh UUID.
func ensureCorrelationID(ctx context.Context, req *ChatRequest) context.Context {
	if CorrelationID(ctx) != "" {
		return ctx
	}
	id := ""
	if req != nil {
		id = req.Options.RequestID
	}
	if id == "" {
		id = uuid.NewString()
	}
	return WithCorrelationID(ctx, id)
}
