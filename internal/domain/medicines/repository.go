package medicines

import (
	"context"

	"doseup-parent/internal/domain/parents"
)

type Repository interface {
	ListByParent(ctx context.Context, ref parents.Ref) ([]Medicine, error)
	GetByID(ctx context.Context, ref parents.Ref, id string) (Medicine, error)

	// Upsert es para seed/tests: en producción las medicinas las escribe el panel del admin.
	Upsert(ctx context.Context, m Medicine) error
}
