package utils

import (
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRedactsCredentialShapedKeys(t *testing.T) {
	attrs := sanitize(Fields{
		"user_id":       42,
		"access_token":  "abc.def.ghi",
		"Password":      "hunter2",
		"api_key":       "k-123",
		"authorization": "Bearer xyz",
		"client_secret": "shh",
	})

	redacted := map[string]bool{}
	for _, a := range attrs {
		attr, ok := a.(slog.Attr)
		if !ok {
			continue
		}
		redacted[attr.Key] = attr.Value.String() == "[REDACTED]"
	}

	assert.False(t, redacted["user_id"])
	assert.True(t, redacted["access_token"])
	assert.True(t, redacted["Password"], "case-insensitive match")
	assert.True(t, redacted["api_key"])
	assert.True(t, redacted["authorization"])
	assert.True(t, redacted["client_secret"])
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, isSensitiveKey("refresh_token"))
	assert.True(t, isSensitiveKey("JWT_SECRET"))
	assert.False(t, isSensitiveKey("status"))
	assert.False(t, isSensitiveKey("duration"))
}
