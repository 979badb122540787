package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

const (
	DefaultKeyPrefix = "storefront:"

	catalogKey      = "catalog:v1"
	transactionsKey = "transactions:v1"
	cartKey         = "cart:v1"
)

// CollectionRepository stores each collection as one JSON document in a
// key-value backend.
type CollectionRepository struct {
	kv     port.KeyValueStore
	prefix string
	seed   func() []domain.Product
}

func NewCollectionRepository(kv port.KeyValueStore, prefix string) *CollectionRepository {
	return &CollectionRepository{
		kv:     kv,
		prefix: prefix,
		seed:   domain.DefaultCatalog,
	}
}

func (r *CollectionRepository) key(name string) string {
	return r.prefix + name
}

func (r *CollectionRepository) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := load[domain.Product](ctx, r.kv, r.key(catalogKey))
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, port.ErrKeyNotFound) {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	seed := r.seed()
	data, err := json.Marshal(seed)
	if err != nil {
		return nil, fmt.Errorf("encode default catalog: %w", err)
	}

	ok, err := r.kv.SetIfAbsent(ctx, r.key(catalogKey), data)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if ok {
		return seed, nil
	}

	// another writer seeded first
	products, err = load[domain.Product](ctx, r.kv, r.key(catalogKey))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return products, nil
}

func (r *CollectionRepository) SaveProducts(ctx context.Context, products []domain.Product) error {
	if err := save(ctx, r.kv, r.key(catalogKey), products); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func (r *CollectionRepository) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := load[domain.Transaction](ctx, r.kv, r.key(transactionsKey))
	if errors.Is(err, port.ErrKeyNotFound) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	return transactions, nil
}

func (r *CollectionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	if err := save(ctx, r.kv, r.key(transactionsKey), transactions); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	return nil
}

func (r *CollectionRepository) Cart(ctx context.Context) ([]domain.CartLine, error) {
	lines, err := load[domain.CartLine](ctx, r.kv, r.key(cartKey))
	if errors.Is(err, port.ErrKeyNotFound) {
		return []domain.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	return lines, nil
}

func (r *CollectionRepository) SaveCart(ctx context.Context, lines []domain.CartLine) error {
	if err := save(ctx, r.kv, r.key(cartKey), lines); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

func (r *CollectionRepository) ClearCart(ctx context.Context) error {
	if err := r.kv.Delete(ctx, r.key(cartKey)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func load[T any](ctx context.Context, kv port.KeyValueStore, key string) ([]T, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	out := []T{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func save[T any](ctx context.Context, kv port.KeyValueStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
