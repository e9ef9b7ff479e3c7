//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// Outside Cloud Logging the otel trace_id/span_id attrs are enough.
func gcpTraceAttrs(context.Context, string) []slog.Attr { return nil }
