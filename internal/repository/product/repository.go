package product

import (
	"context"

	"padaria/internal/domain"
)

// Repository is the store contract the API depends on. Each call is a single
// round trip; implementations return domain.ErrNotFound from GetByID when no
// row matches.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.NewProduct) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
