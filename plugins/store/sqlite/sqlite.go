// Package sqlite 提供基于 SQLite 的记录存储：单库多 StoreID，按 seq 保持追加顺序。
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"surfaces/pkg/contract"
	"surfaces/plugins/store/sqlite/migrations"
)

// Options: 数据库文件路径（必需）与忙等待超时。
type Options struct {
	Path string `json:"path"`
	// BusyTimeoutMS: <=0 使用默认 5000。
	BusyTimeoutMS int `json:"busy_timeout_ms,omitempty"`
}

// Store persists records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ contract.RecordStore = (*Store)(nil)

// Open opens the database and applies embedded migrations.
func Open(opts *Options) (*Store, error) {
	if opts == nil || strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("%w: sqlite path is required", contract.ErrInvalidInput)
	}
	busy := opts.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", filepath.Clean(opts.Path), busy)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %w", contract.ErrStoreIO, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %w", contract.ErrStoreIO, err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: run migrations: %w", contract.ErrStoreIO, err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append 在单个事务内以 seq = max+1 插入一条记录。
func (s *Store) Append(ctx context.Context, id contract.StoreID, rec contract.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := storeKey(id)
	if err != nil {
		return err
	}
	dims, err := json.Marshal(rec.Dimensiones)
	if err != nil {
		return fmt.Errorf("%w: encode dimensiones: %w", contract.ErrStoreIO, err)
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", contract.ErrStoreIO, err)
	}
	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE store_id = ?`, key).Scan(&next); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: next seq: %w", contract.ErrStoreIO, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (store_id, seq, dimensiones, area, volume, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		key, next, string(dims), contract.FormatMeasure(rec.Area), contract.FormatMeasure(rec.Volume),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: insert record: %w", contract.ErrStoreIO, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", contract.ErrStoreIO, err)
	}
	return nil
}

// LoadAll 按 seq 升序返回记录；无记录时返回空序列。
func (s *Store) LoadAll(ctx context.Context, id contract.StoreID) ([]contract.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := storeKey(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seq, dimensiones, area, volume FROM records WHERE store_id = ? ORDER BY seq`, key)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %w", contract.ErrStoreIO, err)
	}
	defer rows.Close()

	out := []contract.Record{}
	for rows.Next() {
		var (
			seq               int64
			dims, area, volume string
		)
		if err := rows.Scan(&seq, &dims, &area, &volume); err != nil {
			return nil, fmt.Errorf("%w: scan record: %w", contract.ErrStoreIO, err)
		}
		rec, err := decodeRow(dims, area, volume)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", contract.ErrStoreIO, seq, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate records: %w", contract.ErrStoreIO, err)
	}
	return out, nil
}

func decodeRow(dims, area, volume string) (contract.Record, error) {
	var rec contract.Record
	if err := json.Unmarshal([]byte(dims), &rec.Dimensiones); err != nil {
		return rec, err
	}
	var err error
	if rec.Area, err = contract.ParseMeasure(area); err != nil {
		return rec, err
	}
	if rec.Volume, err = contract.ParseMeasure(volume); err != nil {
		return rec, err
	}
	return rec, nil
}

func storeKey(id contract.StoreID) (string, error) {
	key := strings.TrimSpace(string(id))
	if key == "" {
		return "", errors.Join(contract.ErrInvalidInput, errors.New("store id is required"))
	}
	return key, nil
}
