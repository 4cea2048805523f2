package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	upsertMySQL = `INSERT INTO kv_entries (entry_key, value, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`
	upsertStandard = `INSERT INTO kv_entries (entry_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (entry_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLStore keeps values in the kv_entries table.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:  db,
		now: time.Now,
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := s.db.Rebind(`SELECT value FROM kv_entries WHERE entry_key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db.GetContext(%s) > %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := upsertStandard
	if s.db.DriverName() == "mysql" {
		query = upsertMySQL
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_entries WHERE entry_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
