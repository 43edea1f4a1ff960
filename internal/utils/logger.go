package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// NewLogger builds the JSON logger used by the service: "message" instead of
// "msg" and RFC3339 timestamps.
func NewLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	lv := new(slog.LevelVar)
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		lv.Set(slog.LevelDebug)
	case "WARN":
		lv.Set(slog.LevelWarn)
	case "ERROR":
		lv.Set(slog.LevelError)
	default:
		lv.Set(slog.LevelInfo)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.Attr{Key: "timestamp", Value: slog.StringValue(t.Format(time.RFC3339))}
				}
			}
			return a
		},
	})
	return slog.New(handler)
}

// LogEvent writes a standardized service event with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	slog.Info(message,
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	)
}

// LogError is LogEvent at error level with the cause attached.
func LogError(requestID, module, action, message string, err error) {
	slog.Error(message,
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
		"error", err,
	)
}
