package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"doseup-parent/internal/domain/parents"
)

type parentRepo struct {
	mu    sync.RWMutex
	byRef map[parents.Ref]parents.Parent
}

func NewParentRepo() parents.Repository {
	return &parentRepo{
		byRef: make(map[parents.Ref]parents.Parent),
	}
}

func (r *parentRepo) Create(ctx context.Context, p parents.Parent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("parent id required")
	}
	if _, exists := r.byRef[p.Ref()]; exists {
		return errors.New("parent already exists")
	}
	r.byRef[p.Ref()] = p
	return nil
}

func (r *parentRepo) GetByRef(ctx context.Context, ref parents.Ref) (parents.Parent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byRef[ref]
	if !ok {
		return parents.Parent{}, parents.ErrNotFound
	}
	return p, nil
}

func (r *parentRepo) FindByPhone(ctx context.Context, phone string) (parents.Parent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byRef {
		if p.PhoneNumber == phone {
			return p, nil
		}
	}
	return parents.Parent{}, parents.ErrNotFound
}

func (r *parentRepo) ListAll(ctx context.Context) ([]parents.Parent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]parents.Parent, 0, len(r.byRef))
	for _, p := range r.byRef {
		out = append(out, p)
	}

	// Orden estable (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].AdminID != out[j].AdminID {
			return out[i].AdminID < out[j].AdminID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
