package parents

import "context"

type Repository interface {
	Create(ctx context.Context, p Parent) error
	GetByRef(ctx context.Context, ref Ref) (Parent, error)

	// FindByPhone busca coincidencia exacta del número guardado.
	FindByPhone(ctx context.Context, phone string) (Parent, error)
	ListAll(ctx context.Context) ([]Parent, error)
}
