package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"doseup-parent/internal/domain/doselogs"
	"doseup-parent/internal/domain/parents"
)

// doseKey es la unicidad de una toma: (parent, medicina, hora, día).
type doseKey struct {
	ref        parents.Ref
	medicineID string
	doseTime   string
	date       string
}

type doseLogRepo struct {
	mu    sync.RWMutex
	byKey map[doseKey]doselogs.DoseLog
}

func NewDoseLogRepo() doselogs.Repository {
	return &doseLogRepo{
		byKey: make(map[doseKey]doselogs.DoseLog),
	}
}

func (r *doseLogRepo) Append(ctx context.Context, l doselogs.DoseLog) error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("dose log id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := doseKey{
		ref:        parents.Ref{AdminID: l.AdminID, ParentID: l.ParentID},
		medicineID: l.MedicineID,
		doseTime:   l.DoseTime,
		date:       l.Date,
	}
	if _, exists := r.byKey[k]; exists {
		return doselogs.ErrAlreadyTaken
	}
	r.byKey[k] = l
	return nil
}

func (r *doseLogRepo) ListByDate(ctx context.Context, ref parents.Ref, date string) ([]doselogs.DoseLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doselogs.DoseLog, 0)
	for k, l := range r.byKey {
		if k.ref == ref && k.date == date {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.Before(out[j].TakenAt)
	})
	return out, nil
}
