package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
)

type medicineKey struct {
	ref parents.Ref
	id  string
}

type medicineRepo struct {
	mu    sync.RWMutex
	byKey map[medicineKey]medicines.Medicine
}

func NewMedicineRepo() medicines.Repository {
	return &medicineRepo{
		byKey: make(map[medicineKey]medicines.Medicine),
	}
}

func (r *medicineRepo) ListByParent(ctx context.Context, ref parents.Ref) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for k, m := range r.byKey {
		if k.ref == ref {
			out = append(out, clone(m))
		}
	}

	// Orden por nombre, como la lista del admin
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *medicineRepo) GetByID(ctx context.Context, ref parents.Ref, id string) (medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byKey[medicineKey{ref: ref, id: id}]
	if !ok {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return clone(m), nil
}

func (r *medicineRepo) Upsert(ctx context.Context, m medicines.Medicine) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ref := parents.Ref{AdminID: m.AdminID, ParentID: m.ParentID}
	r.byKey[medicineKey{ref: ref, id: m.ID}] = clone(m)
	return nil
}

// clone evita que quien llama comparta slices con el store.
func clone(m medicines.Medicine) medicines.Medicine {
	m.DoseTimes = slices.Clone(m.DoseTimes)
	if m.Frequency != nil {
		f := *m.Frequency
		f.Days = slices.Clone(f.Days)
		m.Frequency = &f
	}
	return m
}
