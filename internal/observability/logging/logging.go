package logging

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

func (e Environment) IsProduction() bool {
	return e == EnvProd
}

// Module names the component a log line comes from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerOptions struct {
	Level         slog.Leveler
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	GCPProjectID  string
}

type moduleKey struct{}

// WithModule overrides the module attribute for log lines written with ctx.
func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, module)
}

func moduleFromContext(ctx context.Context) (Module, bool) {
	if ctx == nil {
		return "", false
	}
	m, ok := ctx.Value(moduleKey{}).(Module)
	return m, ok && m != ""
}

type Handler struct {
	next          slog.Handler
	defaultModule Module
	projectID     string
}

// NewHandler returns a JSON handler that stamps every record with the service,
// the module, the request ID and the active trace.
func NewHandler(w io.Writer, opts HandlerOptions) *Handler {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	withService := base.WithAttrs([]slog.Attr{
		slog.Group("service",
			slog.String("name", opts.Service.Name),
			slog.String("version", opts.Service.Version),
			slog.String("revision", opts.Service.Revision),
		),
		slog.String("env", string(opts.Environment)),
	})

	return &Handler{
		next:          withService,
		defaultModule: opts.DefaultModule,
		projectID:     opts.GCPProjectID,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	module := h.defaultModule
	if m, ok := moduleFromContext(ctx); ok {
		module = m
	}
	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}

	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			record.AddAttrs(
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}
		record.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)
	}

	return h.next.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		next:          h.next.WithAttrs(attrs),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		next:          h.next.WithGroup(name),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}
