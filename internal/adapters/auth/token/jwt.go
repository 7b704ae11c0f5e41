package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doseup-parent/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "doseup-parent"

type sessionClaims struct {
	jwt.RegisteredClaims
	AdminID string `json:"adm"`
	Phone   string `json:"phn,omitempty"`
}

// Signer emite y verifica tokens de sesión HS256.
// Cumple auth.TokenIssuer y auth.AuthVerifier.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token: secret required")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *Signer) Issue(_ context.Context, c auth.Claims) (string, time.Time, error) {
	if strings.TrimSpace(c.ParentID) == "" || strings.TrimSpace(c.AdminID) == "" {
		return "", time.Time{}, errors.New("token: parent and admin required")
	}

	now := s.now()
	exp := now.Add(s.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   c.ParentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		AdminID: c.AdminID,
		Phone:   c.Phone,
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, exp, nil
}

func (s *Signer) Verify(_ context.Context, raw string) (auth.Claims, error) {
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	if claims.Subject == "" || claims.AdminID == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	return auth.Claims{
		ParentID: claims.Subject,
		AdminID:  claims.AdminID,
		Phone:    claims.Phone,
	}, nil
}
