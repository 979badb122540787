package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
	Units int               `json:"units"`
}

func (s *Storefront) view() CartView {
	return CartView{
		Lines: s.cart.Lines(),
		Total: s.cart.Total(),
		Units: s.cart.Units(),
	}
}

func (s *Storefront) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

// persistCart mirrors the in-memory cart to the store. On failure the cart is
// kept as is and the error is logged and returned.
func (s *Storefront) persistCart(ctx context.Context) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.repo.SaveCart(ctx, s.cart.Lines()); err != nil {
		s.log.Warn("cart not persisted", slog.Any("err", err), slog.Int("lines", s.cart.Len()))
		return persistenceError("save cart", err)
	}
	return nil
}

func (s *Storefront) AddToCart(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(productID)
	if i < 0 {
		return s.view(), notFoundError("product", productID)
	}

	s.cart.Add(s.products[i])
	return s.view(), s.persistCart(ctx)
}

// UpdateQuantity adds delta to the line's quantity. Results below one leave
// the line unchanged; use RemoveItem to drop it.
func (s *Storefront) UpdateQuantity(ctx context.Context, productID string, delta int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found, changed := s.cart.UpdateQuantity(productID, delta)
	if !found {
		return s.view(), notFoundError("cart line", productID)
	}
	if !changed {
		return s.view(), nil
	}
	return s.view(), s.persistCart(ctx)
}

func (s *Storefront) RemoveItem(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(productID) {
		return s.view(), notFoundError("cart line", productID)
	}
	return s.view(), s.persistCart(ctx)
}

func (s *Storefront) ClearCart(ctx context.Context) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.view(), s.persistCart(ctx)
}
