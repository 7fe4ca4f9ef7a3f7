package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the component that emitted a record.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerConfig struct {
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	GCPProjectID  string
	Level         slog.Leveler
	Writer        io.Writer
}

type handler struct {
	inner         slog.Handler
	defaultModule Module
	projectID     string
}

// NewHandler returns a JSON handler that stamps service metadata on every record
// and request, module and trace ids taken from the context.
func NewHandler(cfg HandlerConfig) slog.Handler {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})

	serviceAttrs := []slog.Attr{
		slog.String("name", cfg.Service.Name),
		slog.String("version", cfg.Service.Version),
	}
	if cfg.Service.Revision != "" {
		serviceAttrs = append(serviceAttrs, slog.String("revision", cfg.Service.Revision))
	}

	return &handler{
		inner: inner.WithAttrs([]slog.Attr{
			{Key: "service", Value: slog.GroupValue(serviceAttrs...)},
			slog.String("env", string(cfg.Environment)),
		}),
		defaultModule: cfg.DefaultModule,
		projectID:     cfg.GCPProjectID,
	}
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	module := ModuleFromContext(ctx)
	if module == "" {
		module = h.defaultModule
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
		r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)
	}

	return h.inner.Handle(ctx, r)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{
		inner:         h.inner.WithAttrs(attrs),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{
		inner:         h.inner.WithGroup(name),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}
