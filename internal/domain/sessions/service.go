package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoParent: el código es válido pero ningún admin dio de alta ese teléfono.
	ErrNoParent = errors.New("no parent account found for this phone number")
)

// ParentFinder lo cumple *parents.Service.
type ParentFinder interface {
	FindByPhone(ctx context.Context, phone string) (parents.Parent, error)
}

type Service struct {
	otp     auth.OTPProvider
	tokens  auth.TokenIssuer
	parents ParentFinder
}

func NewService(otp auth.OTPProvider, tokens auth.TokenIssuer, finder ParentFinder) *Service {
	return &Service{otp: otp, tokens: tokens, parents: finder}
}

// StartVerification manda el código al teléfono y devuelve la verificación a confirmar.
func (s *Service) StartVerification(ctx context.Context, phone string) (Verification, error) {
	if parents.DigitsOnly(phone) == "" {
		return Verification{}, ErrInvalidInput
	}
	e164 := parents.E164(strings.TrimSpace(phone))

	ch, err := s.otp.Start(ctx, e164)
	if err != nil {
		return Verification{}, fmt.Errorf("start verification: %w", err)
	}
	return Verification{ID: ch.ID, Phone: ch.Phone, ExpiresAt: ch.ExpiresAt}, nil
}

// ConfirmVerification chequea el código, busca el parent por teléfono y emite el token.
func (s *Service) ConfirmVerification(ctx context.Context, v Verification, code string) (Session, error) {
	code = strings.TrimSpace(code)
	if strings.TrimSpace(v.ID) == "" || strings.TrimSpace(v.Phone) == "" || code == "" {
		return Session{}, ErrInvalidInput
	}

	if err := s.otp.Confirm(ctx, auth.Challenge{ID: v.ID, Phone: v.Phone, ExpiresAt: v.ExpiresAt}, code); err != nil {
		return Session{}, err
	}

	p, err := s.parents.FindByPhone(ctx, v.Phone)
	if err != nil {
		if errors.Is(err, parents.ErrNotFound) {
			return Session{}, ErrNoParent
		}
		return Session{}, err
	}

	token, exp, err := s.tokens.Issue(ctx, auth.Claims{
		ParentID: p.ID,
		AdminID:  p.AdminID,
		Phone:    v.Phone,
	})
	if err != nil {
		return Session{}, fmt.Errorf("issue session: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp, Parent: p}, nil
}
