package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwksFor(t *testing.T, kid string, key *rsa.PublicKey, extra ...map[string]string) []byte {
	t.Helper()
	keys := []map[string]string{{
		"kty": "RSA",
		"use": "sig",
		"kid": kid,
		"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
	}}
	keys = append(keys, extra...)
	raw, err := json.Marshal(map[string]any{"keys": keys})
	require.NoError(t, err)
	return raw
}

func TestParseJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys, err := ParseJWKS(jwksFor(t, "kid-1", &key.PublicKey))
	require.NoError(t, err)
	require.Contains(t, keys, "kid-1")
	assert.Equal(t, 0, keys["kid-1"].N.Cmp(key.N))
	assert.Equal(t, key.E, keys["kid-1"].E)
}

func TestParseJWKSSkipsNonRSAKeys(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	body := jwksFor(t, "kid-1", &key.PublicKey, map[string]string{
		"kty": "EC",
		"kid": "kid-ec",
	})

	keys, err := ParseJWKS(body)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.NotContains(t, keys, "kid-ec")
}

func TestParseJWKSNoUsableKeys(t *testing.T) {
	_, err := ParseJWKS([]byte(`{"keys":[{"kty":"EC","kid":"only-ec"}]}`))
	assert.Error(t, err)

	_, err = ParseJWKS([]byte(`not json`))
	assert.Error(t, err)
}
