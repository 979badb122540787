package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rl1809/storefront/internal/core/domain"
)

func (s *Storefront) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Storefront) Product(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return domain.Product{}, notFoundError("product", id)
	}
	return s.products[i], nil
}

func (s *Storefront) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// AddProduct appends p to the catalog. An empty id is replaced by a generated
// one; missing image and color get defaults.
func (s *Storefront) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Image == "" {
		p.Image = domain.ImageFor(p.ID)
	}
	if p.Color == "" {
		p.Color = domain.DefaultColor
	}

	if p.Name == "" {
		return domain.Product{}, validationError("product name is required")
	}
	if !p.Price.IsPositive() {
		return domain.Product{}, validationError("price must be positive, got %s", p.Price)
	}
	if !p.Category.Valid() {
		return domain.Product{}, validationError("unknown category %q", p.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productIndex(p.ID) >= 0 {
		return domain.Product{}, validationError("product id %q already exists", p.ID)
	}

	next := make([]domain.Product, 0, len(s.products)+1)
	next = append(next, s.products...)
	next = append(next, p)

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.repo.SaveProducts(ctx, next); err != nil {
		return domain.Product{}, persistenceError("save catalog", err)
	}
	s.products = next

	s.log.Info("product added", slog.String("product_id", p.ID), slog.String("name", p.Name))
	return p, nil
}

// DeleteProduct removes the product and every cart line that references it.
func (s *Storefront) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return notFoundError("product", id)
	}

	next := make([]domain.Product, 0, len(s.products)-1)
	next = append(next, s.products[:i]...)
	next = append(next, s.products[i+1:]...)

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.repo.SaveProducts(storeCtx, next); err != nil {
		return persistenceError("save catalog", err)
	}
	s.products = next
	s.log.Info("product deleted", slog.String("product_id", id))

	if s.cart.RemoveProduct(id) > 0 {
		return s.persistCart(ctx)
	}
	return nil
}
