package parents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("parent not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	AdminID     string
	PhoneNumber string
	Name        string
	Timezone    string
}

// Create solo lo usan el seed y los tests; el alta real vive en el panel del admin.
func (s *Service) Create(ctx context.Context, in CreateInput) (Parent, error) {
	if strings.TrimSpace(in.AdminID) == "" || strings.TrimSpace(in.PhoneNumber) == "" {
		return Parent{}, ErrInvalidInput
	}

	p := Parent{
		ID:          uuid.NewString(),
		AdminID:     strings.TrimSpace(in.AdminID),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Name:        strings.TrimSpace(in.Name),
		Timezone:    strings.TrimSpace(in.Timezone),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Parent{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, ref Ref) (Parent, error) {
	if !ref.Valid() {
		return Parent{}, ErrInvalidInput
	}
	p, err := s.repo.GetByRef(ctx, ref)
	if errors.Is(err, ErrNotFound) {
		return Parent{}, ErrNotFound
	}
	if err != nil {
		return Parent{}, fmt.Errorf("get parent: %w", err)
	}
	return p, nil
}

// FindByPhone prueba primero el número tal cual y después solo dígitos,
// porque el admin guarda el teléfono en cualquiera de los dos formatos.
func (s *Service) FindByPhone(ctx context.Context, phone string) (Parent, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Parent{}, ErrInvalidInput
	}

	candidates := []string{phone}
	if d := DigitsOnly(phone); d != "" && d != phone {
		candidates = append(candidates, d)
	}
	// "+51999" guardado con "+" pero ingresado sin él
	if e := E164(DigitsOnly(phone)); e != phone {
		candidates = append(candidates, e)
	}

	for _, c := range candidates {
		p, err := s.repo.FindByPhone(ctx, c)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Parent{}, fmt.Errorf("find parent by phone: %w", err)
		}
	}
	return Parent{}, ErrNotFound
}

func (s *Service) ListAll(ctx context.Context) ([]Parent, error) {
	return s.repo.ListAll(ctx)
}

// LocationOf es la zona del parent; si no se encuentra, fallback.
func (s *Service) LocationOf(ctx context.Context, ref Ref, fallback *time.Location) *time.Location {
	p, err := s.Get(ctx, ref)
	if err != nil {
		if fallback == nil {
			return time.Local
		}
		return fallback
	}
	return Location(p, fallback)
}
