package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

// Repository exposes the three persisted collections as whole sequences.
// Every Save is a full overwrite; last write wins.
type Repository interface {
	// Products returns the catalog, seeding the default products on first read
	Products(ctx context.Context) ([]domain.Product, error)
	SaveProducts(ctx context.Context, products []domain.Product) error

	Transactions(ctx context.Context) ([]domain.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error

	Cart(ctx context.Context) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, lines []domain.CartLine) error
	ClearCart(ctx context.Context) error
}
