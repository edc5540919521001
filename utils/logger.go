package utils

import (
	"log/slog"
	"os"
	"strings"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Fields is the structured context attached to a log record. Values under
// credential-shaped keys are redacted before emission; raw tokens must
// never reach the sink.
type Fields map[string]any

var sensitiveKeys = []string{"password", "token", "secret", "key", "authorization"}

func Logger() *slog.Logger { return logger }

func LogInfo(msg string, fields Fields) {
	logger.Info(msg, sanitize(fields)...)
}

func LogWarn(msg string, fields Fields) {
	logger.Warn(msg, sanitize(fields)...)
}

func LogError(msg string, err error, fields Fields) {
	attrs := sanitize(fields)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.Error(msg, attrs...)
}

// LogDataAccess records an audit entry for reads/writes of user-scoped rows.
func LogDataAccess(action, resource string, fields Fields) {
	attrs := sanitize(fields)
	attrs = append(attrs, slog.String("action", action), slog.String("resource", resource))
	logger.Info("data_access", attrs...)
}

func sanitize(fields Fields) []any {
	attrs := make([]any, 0, len(fields))
	for k, v := range fields {
		if isSensitiveKey(k) {
			attrs = append(attrs, slog.String(k, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func isSensitiveKey(k string) bool {
	lk := strings.ToLower(k)
	for _, s := range sensitiveKeys {
		if strings.Contains(lk, s) {
			return true
		}
	}
	return false
}
