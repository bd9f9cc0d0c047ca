package token

import (
	"errors"
	"fmt"
	"time"

	"session-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds session token signing configuration.
type JWTConfig struct {
	Secret string
	Issuer string
	MaxAge time.Duration
}

// sessionClaims is the JWT payload of a session token. An empty Subject
// means the token belongs to an anonymous principal.
type sessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies session tokens.
// Implements domain.TokenCodec.
type JWTCodec struct {
	cfg JWTConfig
}

// NewJWTCodec creates a new session token codec.
func NewJWTCodec(cfg JWTConfig) *JWTCodec {
	return &JWTCodec{cfg: cfg}
}

// Sign produces a signed token string from the claims. IssuedAt and
// ExpiresAt are taken from the claims so renewal controls the window.
func (j *JWTCodec) Sign(claims *domain.SessionClaims) (string, error) {
	if j.cfg.Secret == "" {
		return "", domain.ErrSecretMissing
	}

	payload := sessionClaims{
		Email: claims.Email,
		Name:  claims.Name,
		Image: claims.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.TokenID,
			Issuer:    j.cfg.Issuer,
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and decodes the claims.
func (j *JWTCodec) Parse(tokenString string) (*domain.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return []byte(j.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.SessionClaims{
		TokenID: claims.ID,
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Image:   claims.Image,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
