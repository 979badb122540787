package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/core/service"
)

var errWriteRefused = errors.New("write refused")

// flakyKV refuses writes while failWrites is set.
type flakyKV struct {
	*storage.MemoryAdapter
	failWrites atomic.Bool
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites.Load() {
		return errWriteRefused
	}
	return f.MemoryAdapter.Set(ctx, key, value)
}

func (f *flakyKV) Delete(ctx context.Context, key string) error {
	if f.failWrites.Load() {
		return errWriteRefused
	}
	return f.MemoryAdapter.Delete(ctx, key)
}

func newTestStorefront(t *testing.T) (*service.Storefront, *flakyKV) {
	t.Helper()
	kv := &flakyKV{MemoryAdapter: storage.NewMemoryAdapter()}
	repo := storage.NewCollectionRepository(kv, storage.DefaultKeyPrefix)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sf, err := service.Open(context.Background(), repo, nil, log, service.Options{})
	if err != nil {
		t.Fatalf("open storefront: %v", err)
	}
	return sf, kv
}
