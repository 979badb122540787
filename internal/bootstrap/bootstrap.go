package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/storefront/internal/adapter/annotator"
	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/port"
)

// OpenStore connects to the configured key-value backend.
func OpenStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (port.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store, nothing survives a restart")
		return storage.NewMemoryAdapter(), nil

	case config.BackendSQLite:
		adapter, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("opened sqlite store", slog.String("path", cfg.SQLitePath))
		return adapter, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("connected to redis", slog.String("addr", cfg.RedisAddr))
		return storage.NewRedisAdapter(rdb), nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping mysql: %w", err)
		}
		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("connected to mysql")
		return adapter, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// NewAnnotator returns nil when no API key is configured; checkout then always
// uses the fallback note.
func NewAnnotator(ctx context.Context, cfg config.AnnotatorConfig, log *slog.Logger) port.Annotator {
	if cfg.APIKey == "" {
		log.Info("receipt notes disabled, no API key")
		return nil
	}

	g, err := annotator.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Warn("receipt notes disabled", slog.Any("err", err))
		return nil
	}
	return g
}

// OpenStorefront wires store, repository and annotator. The returned store
// must be closed by the caller.
func OpenStorefront(ctx context.Context, cfg config.Config, log *slog.Logger) (*service.Storefront, port.KeyValueStore, error) {
	kv, err := OpenStore(ctx, cfg.Store, log)
	if err != nil {
		return nil, nil, err
	}

	repo := storage.NewCollectionRepository(kv, cfg.Store.KeyPrefix)
	sf, err := service.Open(ctx, repo, NewAnnotator(ctx, cfg.Annotator, log), log, service.Options{
		StoreTimeout:      cfg.Store.Timeout,
		AnnotationTimeout: cfg.Annotator.Timeout,
		FallbackNote:      cfg.Annotator.Fallback,
	})
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	return sf, kv, nil
}
