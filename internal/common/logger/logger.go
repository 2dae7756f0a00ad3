package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger writes one JSON object per line: timestamp, level, service, action,
// hostname, request_id plus the caller's fields.
type Logger struct {
	service   string
	requestID string
	base      *slog.Logger // sink without the service attribute
	sl        *slog.Logger
}

func New(service string) *Logger { return NewWithWriter(service, os.Stdout, "info") }

func NewWithWriter(service string, w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
				if a.Value.Kind() == slog.KindTime {
					a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				a.Value = slog.StringValue(strings.ToUpper(a.Value.String()))
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
	base := slog.New(h).With("hostname", hostname())
	return &Logger{service: service, base: base, sl: base.With("service", service)}
}

// Named returns a logger for another service sharing the same sink.
func (l *Logger) Named(service string) *Logger {
	return &Logger{service: service, requestID: l.requestID, base: l.base, sl: l.base.With("service", service)}
}

// WithContext picks up the request id stored by ContextWithRequestID.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id := RequestID(ctx)
	if id == "" || id == l.requestID {
		return l
	}
	return &Logger{service: l.service, requestID: id, base: l.base, sl: l.sl}
}

func (l *Logger) log(level slog.Level, action string, fields map[string]any, err error) {
	ctx := context.Background()
	if !l.sl.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+3)
	attrs = append(attrs, slog.String("action", action), slog.String("request_id", l.requestID))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error()), slog.String("type", typeName(err))))
	}
	l.sl.LogAttrs(ctx, level, action, attrs...)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log(slog.LevelInfo, action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log(slog.LevelDebug, action, fields, nil) }
func (l *Logger) Warn(action string, err error, fields map[string]any) {
	l.log(slog.LevelWarn, action, fields, err)
}
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(slog.LevelError, action, fields, err)
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func typeName(err error) string { return strings.TrimPrefix(fmt.Sprintf("%T", err), "*") }

func hostname() string { h, _ := os.Hostname(); return h }
