package visitors

import "context"

// Repository abstrae el backend de persistencia.
// Dos variantes: postgres (durable) y file (degradado, espejo JSON).
// El store asigna ID y no reordena: List devuelve createdAt descendente.
type Repository interface {
	Create(ctx context.Context, r Record) (Record, error)
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
}
