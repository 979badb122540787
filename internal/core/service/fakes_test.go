package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeRepo keeps collections in memory and fails on demand.
type fakeRepo struct {
	mu sync.Mutex

	products     []domain.Product
	transactions []domain.Transaction
	cart         []domain.CartLine
	cartCleared  int

	failProducts     bool
	failTransactions bool
	failCart         bool
	failLoad         bool
}

func newFakeRepo(products ...domain.Product) *fakeRepo {
	return &fakeRepo{products: products}
}

func (f *fakeRepo) Products(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, errStoreDown
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeRepo) SaveProducts(ctx context.Context, products []domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProducts {
		return errStoreDown
	}
	f.products = append([]domain.Product(nil), products...)
	return nil
}

func (f *fakeRepo) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Transaction(nil), f.transactions...), nil
}

func (f *fakeRepo) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTransactions {
		return errStoreDown
	}
	f.transactions = append([]domain.Transaction(nil), transactions...)
	return nil
}

func (f *fakeRepo) Cart(ctx context.Context) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartLine(nil), f.cart...), nil
}

func (f *fakeRepo) SaveCart(ctx context.Context, lines []domain.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCart {
		return errStoreDown
	}
	f.cart = append([]domain.CartLine(nil), lines...)
	return nil
}

func (f *fakeRepo) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCart {
		return errStoreDown
	}
	f.cart = nil
	f.cartCleared++
	return nil
}

func (f *fakeRepo) savedCart() []domain.CartLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartLine(nil), f.cart...)
}

type annotatorFunc func(ctx context.Context, items []domain.LineItem) (string, error)

func (f annotatorFunc) Annotate(ctx context.Context, items []domain.LineItem) (string, error) {
	return f(ctx, items)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func coffee(id, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "coffee-" + id,
		Price:    decimal.RequireFromString(price),
		Category: domain.CategoryCoffee,
		Image:    "img://" + id,
		Color:    "bg-amber-100",
	}
}

func fixedClock(start time.Time) func() time.Time {
	return func() time.Time { return start }
}
