package tokenadapter

import (
	"fmt"
	"strings"
	"time"

	"themis/contexts/identity-access/expert-service/domain/entities"
	domainerrors "themis/contexts/identity-access/expert-service/domain/errors"
	"themis/contexts/identity-access/expert-service/ports"

	"github.com/golang-jwt/jwt"
)

// JWTCodec issues and verifies HS256 session tokens. The token carries
// only the expert identifier as subject; role and every other attribute
// are resolved from the repository on each request.
type JWTCodec struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

func NewJWTCodec(secret string, ttl time.Duration, issuer string) *JWTCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTCodec{
		Secret: []byte(secret),
		TTL:    ttl,
		Issuer: issuer,
	}
}

func (c *JWTCodec) Issue(expert entities.Expert, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss": c.Issuer,
		"sub": expert.ExpertID,
		"iat": now.Unix(),
		"exp": now.Add(c.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Subject(token string) (string, error) {
	parsed, err := jwt.Parse(strings.TrimSpace(token), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return c.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domainerrors.ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", domainerrors.ErrTokenInvalid
	}
	subject, ok := claims["sub"].(string)
	if !ok || strings.TrimSpace(subject) == "" {
		return "", domainerrors.ErrTokenInvalid
	}
	return subject, nil
}

var _ ports.TokenCodec = (*JWTCodec)(nil)
