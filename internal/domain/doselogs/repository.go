package doselogs

import (
	"context"

	"doseup-parent/internal/domain/parents"
)

type Repository interface {
	// Append debe devolver ErrAlreadyTaken si ya existe (parent, medicina, hora, día).
	Append(ctx context.Context, l DoseLog) error
	ListByDate(ctx context.Context, ref parents.Ref, date string) ([]DoseLog, error)
}
