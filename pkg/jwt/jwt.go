// Package jwt verifies the HS256 bearer tokens the SPA obtains from the
// auth provider and forwards to the billing endpoints. Generation is
// included for tests and tooling; the service itself only verifies.
package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const headerAlgorithm = "HS256"

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims carries the registered claims the billing service relies on plus
// the email claim the auth provider embeds.
type Claims struct {
	Subject   string `json:"sub,omitempty"` // user identity (UUID)
	Email     string `json:"email,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"` // unix seconds
	IssuedAt  int64  `json:"iat,omitempty"` // unix seconds
}

// Valid checks the temporal claims. Zero values are treated as unset.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return ErrExpiredToken
	}
	return nil
}

// Service validates HS256 tokens against a shared signing key.
type Service struct {
	signingKey []byte
}

// New creates a token service. The key must match the auth provider's JWT
// secret; an empty key is a configuration error.
func New(signingKey string) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return &Service{signingKey: []byte(signingKey)}, nil
}

// Generate signs a token for the given claims. Used by tests and local
// tooling to mint tokens compatible with Parse.
func (s *Service) Generate(claims Claims) (string, error) {
	headerJSON, err := json.Marshal(header{Type: "JWT", Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payload := b64encode(headerJSON) + "." + b64encode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Parse verifies a token's signature, algorithm, and expiry, returning its
// claims. Signature comparison is constant-time; tokens with an unexpected
// algorithm are rejected before the claims are inspected.
func (s *Service) Parse(tokenString string) (Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	payload := parts[0] + "." + parts[1]
	if subtle.ConstantTimeCompare([]byte(s.sign(payload)), []byte(parts[2])) != 1 {
		return Claims{}, ErrInvalidSignature
	}

	headerJSON, err := b64decode(parts[0])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if h.Algorithm != headerAlgorithm {
		return Claims{}, ErrUnexpectedSigningMethod
	}

	claimsJSON, err := b64decode(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if err := claims.Valid(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// FromRequest extracts and verifies the bearer token on an HTTP request.
func (s *Service) FromRequest(r *http.Request) (Claims, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return Claims{}, ErrMissingToken
	}
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return Claims{}, ErrInvalidToken
	}
	return s.Parse(token)
}

func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return b64encode(h.Sum(nil))
}

func b64encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func b64decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
