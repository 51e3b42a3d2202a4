package logger

import "context"

type requestIDKey struct{}

// WithRequestID stores the request id so that code below the HTTP layer
// can correlate its logs and events with the request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
