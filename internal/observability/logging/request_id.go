package logging

import (
	"context"

	"github.com/google/uuid"
)

const RequestIDHeader = "x-request-id"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ValidateAndExtractRequestID keeps a well-formed UUID and replaces anything
// else with a fresh one.
func ValidateAndExtractRequestID(requestID string) string {
	if requestID == "" {
		return uuid.NewString()
	}
	parsed, err := uuid.Parse(requestID)
	if err != nil {
		return uuid.NewString()
	}
	return parsed.String()
}
