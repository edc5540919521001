package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/utils"

	"github.com/golang-jwt/jwt/v5"
)

const (
	keyCacheTTL = time.Hour
	clockSkew   = 10 * time.Second
)

// Claims is the verified payload of a bearer token. It is only handed out
// after expiry and signature checks pass.
type Claims struct {
	Subject   string
	Email     string
	Audience  string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Metadata  map[string]any
}

// TokenService verifies bearer tokens. User tokens are RS256-signed and
// checked against the identity provider's published key set; service
// tokens are HS256 against the shared secret. Resolved RSA keys are cached
// per kid for an hour.
type TokenService struct {
	issuerURL string
	audience  string
	hsSecret  []byte
	client    *http.Client

	mu         sync.RWMutex
	keys       map[string]*rsa.PublicKey
	keysExpiry time.Time
}

func NewTokenService(issuerURL, audience string, hsSecret []byte, fetchTimeout time.Duration) *TokenService {
	return &TokenService{
		issuerURL: issuerURL,
		audience:  audience,
		hsSecret:  hsSecret,
		client:    &http.Client{Timeout: fetchTimeout},
	}
}

// Validate verifies the raw token string and returns its claim set.
// Structural problems and expiry are reported before any signature work so
// an expired token never costs a key fetch.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims, err := s.precheck(tokenString)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		switch t.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if len(s.hsSecret) == 0 {
				return nil, fmt.Errorf("%w: service tokens not configured", ErrInvalidToken)
			}
			return s.hsSecret, nil
		case *jwt.SigningMethodRSA:
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("%w: missing kid header", ErrInvalidToken)
			}
			return s.signingKey(ctx, kid)
		default:
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}
	},
		jwt.WithLeeway(clockSkew),
		jwt.WithAudience(s.audience),
		jwt.WithIssuer(s.issuerURL),
		jwt.WithValidMethods([]string{"RS256", "HS256"}),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// precheck decodes without verifying to reject malformed, subject-less, or
// expired tokens early.
func (s *TokenService) precheck(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	mc := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, mc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims := claimsFromMap(mc)
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt.Add(clockSkew)) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

func (s *TokenService) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	s.mu.RLock()
	if time.Now().Before(s.keysExpiry) {
		if key, ok := s.keys[kid]; ok {
			s.mu.RUnlock()
			return key, nil
		}
	}
	s.mu.RUnlock()

	keys, err := s.fetchKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyResolution, err)
	}

	s.mu.Lock()
	s.keys = keys
	s.keysExpiry = time.Now().Add(keyCacheTTL)
	s.mu.Unlock()

	key, ok := keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: no key matches kid %q", ErrKeyResolution, kid)
	}
	return key, nil
}

func (s *TokenService) fetchKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	url := s.issuerURL + "/.well-known/jwks.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	return utils.ParseJWKS(body)
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, ErrKeyResolution),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}

func claimsFromMap(mc jwt.MapClaims) *Claims {
	c := &Claims{}
	c.Subject, _ = mc["sub"].(string)
	c.Email, _ = mc["email"].(string)
	c.Issuer, _ = mc["iss"].(string)

	switch aud := mc["aud"].(type) {
	case string:
		c.Audience = aud
	case []any:
		if len(aud) > 0 {
			c.Audience, _ = aud[0].(string)
		}
	}

	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if meta, ok := mc["user_metadata"].(map[string]any); ok {
		c.Metadata = meta
	}
	return c
}
