package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAudience = "authenticated"

func jwksBody(t *testing.T, kid string, key *rsa.PublicKey) []byte {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"use": "sig",
			"kid": kid,
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func signRS256(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func userClaims(issuer string, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "subject-1",
		"email": "user@example.com",
		"iss":   issuer,
		"aud":   testAudience,
		"iat":   time.Now().Add(-time.Minute).Unix(),
		"exp":   exp.Unix(),
	}
}

func TestValidateRejectsWithoutNetwork(t *testing.T) {
	// issuer URL points nowhere; none of these cases may reach it
	svc := NewTokenService("http://127.0.0.1:0", testAudience, nil, time.Second)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = svc.Validate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	// subject-less token
	noSub := signRS256(t, key, "kid-1", jwt.MapClaims{
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	_, err = svc.Validate(ctx, noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// expired wins over everything, including a bogus signature
	expired := signRS256(t, key, "kid-1", userClaims("http://127.0.0.1:0", time.Now().Add(-time.Hour)))
	expired = expired[:len(expired)-4] + "zzzz"
	_, err = svc.Validate(ctx, expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/.well-known/jwks.json", r.URL.Path)
		fetches++
		_, _ = w.Write(jwksBody(t, "kid-1", &key.PublicKey))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, testAudience, nil, 2*time.Second)
	ctx := context.Background()

	good := signRS256(t, key, "kid-1", userClaims(srv.URL, time.Now().Add(time.Hour)))
	claims, err := svc.Validate(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)

	// second validation hits the key cache, not the endpoint
	again := signRS256(t, key, "kid-1", userClaims(srv.URL, time.Now().Add(time.Hour)))
	_, err = svc.Validate(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	// wrong key, same kid
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	forged := signRS256(t, otherKey, "kid-1", userClaims(srv.URL, time.Now().Add(time.Hour)))
	_, err = svc.Validate(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// audience mismatch
	badAud := userClaims(srv.URL, time.Now().Add(time.Hour))
	badAud["aud"] = "someone-else"
	_, err = svc.Validate(ctx, signRS256(t, key, "kid-1", badAud))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateUnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jwksBody(t, "kid-1", &key.PublicKey))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, testAudience, nil, 2*time.Second)
	token := signRS256(t, key, "kid-unknown", userClaims(srv.URL, time.Now().Add(time.Hour)))
	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrKeyResolution)
}

func TestValidateJWKSEndpointDown(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, testAudience, nil, 2*time.Second)
	token := signRS256(t, key, "kid-1", userClaims(srv.URL, time.Now().Add(time.Hour)))
	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrKeyResolution)
}

func TestValidateKeyCacheSurvivesOutage(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jwksBody(t, "kid-1", &key.PublicKey))
	}))
	issuer := srv.URL

	svc := NewTokenService(issuer, testAudience, nil, 2*time.Second)
	ctx := context.Background()

	first := signRS256(t, key, "kid-1", userClaims(issuer, time.Now().Add(time.Hour)))
	_, err = svc.Validate(ctx, first)
	require.NoError(t, err)

	srv.Close()

	second := signRS256(t, key, "kid-1", userClaims(issuer, time.Now().Add(time.Hour)))
	_, err = svc.Validate(ctx, second)
	assert.NoError(t, err, "cached key keeps validation working through an outage")
}

func TestValidateHS256ServiceToken(t *testing.T) {
	secret := []byte("service-secret")
	issuer := "http://idp.internal"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, userClaims(issuer, time.Now().Add(time.Hour)))
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	svc := NewTokenService(issuer, testAudience, secret, time.Second)
	claims, err := svc.Validate(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", claims.Subject)

	// no shared secret configured: HS tokens are refused outright
	noHS := NewTokenService(issuer, testAudience, nil, time.Second)
	_, err = noHS.Validate(context.Background(), signed)
	assert.Error(t, err)
}
