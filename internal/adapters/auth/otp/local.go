package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"doseup-parent/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTTL = 5 * time.Minute
	codeDigits = 6

	// MaxAttempts por challenge; un challenge confirmado queda consumido.
	MaxAttempts = 5

	challengeIssuer = "doseup-parent/otp"
)

type challengeClaims struct {
	jwt.RegisteredClaims
	CodeHash string `json:"ch"`
}

// LocalProvider genera el código acá y lo manda por un SMSSender.
// El challenge es un JWT firmado con el teléfono y el hash del código. Lo único que
// se guarda en memoria son los intentos por challenge (jti), hasta que vence.
type LocalProvider struct {
	secret []byte
	ttl    time.Duration
	sender auth.SMSSender

	now  func() time.Time
	code func() (string, error)

	mu       sync.Mutex
	attempts map[string]attempts
}

type attempts struct {
	failed    int
	consumed  bool
	expiresAt time.Time
}

func NewLocalProvider(secret string, ttl time.Duration, sender auth.SMSSender) (*LocalProvider, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("otp: secret required")
	}
	if sender == nil {
		return nil, errors.New("otp: sms sender required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LocalProvider{
		secret: []byte(secret),
		ttl:    ttl,
		sender: sender,
		now:      time.Now,
		code:     randomCode,
		attempts: map[string]attempts{},
	}, nil
}

func (p *LocalProvider) Start(ctx context.Context, phone string) (auth.Challenge, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return auth.Challenge{}, errors.New("otp: phone required")
	}

	code, err := p.code()
	if err != nil {
		return auth.Challenge{}, fmt.Errorf("otp: generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return auth.Challenge{}, fmt.Errorf("otp: hash code: %w", err)
	}

	now := p.now()
	exp := now.Add(p.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, challengeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    challengeIssuer,
			Subject:   phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		CodeHash: string(hash),
	})
	signed, err := tok.SignedString(p.secret)
	if err != nil {
		return auth.Challenge{}, fmt.Errorf("otp: sign challenge: %w", err)
	}

	msg := fmt.Sprintf("Your DoseUp verification code is %s", code)
	if err := p.sender.Send(ctx, phone, msg); err != nil {
		return auth.Challenge{}, fmt.Errorf("otp: send sms: %w", err)
	}

	return auth.Challenge{ID: signed, Phone: phone, ExpiresAt: exp}, nil
}

func (p *LocalProvider) Confirm(_ context.Context, ch auth.Challenge, code string) error {
	claims := &challengeClaims{}
	tok, err := jwt.ParseWithClaims(ch.ID, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(challengeIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.ErrExpired
		}
		return auth.ErrInvalidCode
	}
	if !tok.Valid || claims.Subject != strings.TrimSpace(ch.Phone) || claims.ID == "" || claims.ExpiresAt == nil {
		return auth.ErrInvalidCode
	}

	// El lock cubre la comparación para que dos intentos del mismo challenge no corran a la vez.
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.prune(now)

	a := p.attempts[claims.ID]
	if a.consumed {
		return auth.ErrInvalidCode
	}
	if a.failed >= MaxAttempts {
		return auth.ErrTooManyAttempts
	}
	a.expiresAt = claims.ExpiresAt.Time

	if err := bcrypt.CompareHashAndPassword([]byte(claims.CodeHash), []byte(strings.TrimSpace(code))); err != nil {
		a.failed++
		p.attempts[claims.ID] = a
		if a.failed >= MaxAttempts {
			return auth.ErrTooManyAttempts
		}
		return auth.ErrInvalidCode
	}
	a.consumed = true
	p.attempts[claims.ID] = a
	return nil
}

// prune saca los challenges vencidos: ya no pasan la validación del JWT. Requiere p.mu.
func (p *LocalProvider) prune(now time.Time) {
	for id, a := range p.attempts {
		if !now.Before(a.expiresAt) {
			delete(p.attempts, id)
		}
	}
}

func randomCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
