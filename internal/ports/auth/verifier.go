package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidCode  = errors.New("invalid verification code")
	ErrExpired      = errors.New("verification expired")

	// ErrTooManyAttempts: el challenge agotó sus intentos y ya no se puede confirmar.
	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite el token de sesión para unos claims.
type TokenIssuer interface {
	Issue(ctx context.Context, c Claims) (token string, expiresAt time.Time, err error)
}

// OTPProvider manda y confirma códigos de verificación por SMS.
type OTPProvider interface {
	Start(ctx context.Context, phone string) (Challenge, error)
	Confirm(ctx context.Context, ch Challenge, code string) error
}

// SMSSender entrega un mensaje de texto a un número E.164.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}
