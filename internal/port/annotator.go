package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

// Annotator writes a short receipt note for the purchased items.
type Annotator interface {
	Annotate(ctx context.Context, items []domain.LineItem) (string, error)
}
