package medicines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/platform/poll"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medicine not found")
)

const DefaultPollInterval = 15 * time.Second

type Service struct {
	repo      Repository
	pollEvery time.Duration
}

func NewService(repo Repository, pollEvery time.Duration) *Service {
	if pollEvery <= 0 {
		pollEvery = DefaultPollInterval
	}
	return &Service{
		repo:      repo,
		pollEvery: pollEvery,
	}
}

func (s *Service) List(ctx context.Context, ref parents.Ref) ([]Medicine, error) {
	if !ref.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByParent(ctx, ref)
}

func (s *Service) Get(ctx context.Context, ref parents.Ref, id string) (Medicine, error) {
	id = strings.TrimSpace(id)
	if !ref.Valid() || id == "" {
		return Medicine{}, ErrInvalidInput
	}
	m, err := s.repo.GetByID(ctx, ref, id)
	if errors.Is(err, ErrNotFound) {
		return Medicine{}, ErrNotFound
	}
	if err != nil {
		return Medicine{}, fmt.Errorf("get medicine %s: %w", id, err)
	}
	return m, nil
}

// Save es para seed/tests.
func (s *Service) Save(ctx context.Context, m Medicine) error {
	if strings.TrimSpace(m.ID) == "" || !(parents.Ref{AdminID: m.AdminID, ParentID: m.ParentID}).Valid() {
		return ErrInvalidInput
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidInput
	}
	return s.repo.Upsert(ctx, m)
}

// Subscribe emite la lista inicial y luego cada vez que cambia (según Hash).
// Los errores van a onError y el polling sigue; ese es todo el reintento que hay.
// No llamar al unsubscribe desde dentro de los callbacks.
func (s *Service) Subscribe(
	ctx context.Context,
	ref parents.Ref,
	onChange func([]Medicine),
	onError func(error),
) (unsubscribe func()) {
	return poll.Watch[[]Medicine]{
		Every:       s.pollEvery,
		Fetch:       func(ctx context.Context) ([]Medicine, error) { return s.List(ctx, ref) },
		Fingerprint: Hash,
		OnChange:    onChange,
		OnError:     onError,
	}.Start(ctx)
}
