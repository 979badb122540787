package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/storefront/internal/port"
)

const kvTable = "storefront_kv"

type sqlStatements struct {
	schema      string
	get         string
	upsert      string
	insertIfNew string
	delete      string
}

// sqlKV implements port.KeyValueStore over a single two-column table. The
// dialect-specific adapters only differ in their statements.
type sqlKV struct {
	db    *sql.DB
	stmts sqlStatements
}

func (s *sqlKV) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.stmts.schema); err != nil {
		return fmt.Errorf("create %s: %w", kvTable, err)
	}
	return nil
}

func (s *sqlKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.stmts.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	return value, nil
}

func (s *sqlKV) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.stmts.upsert, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *sqlKV) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	result, err := s.db.ExecContext(ctx, s.stmts.insertIfNew, key, value)
	if err != nil {
		return false, fmt.Errorf("insert %s: %w", key, err)
	}

	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (s *sqlKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.stmts.delete, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *sqlKV) Close() error {
	return s.db.Close()
}
