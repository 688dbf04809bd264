package engine

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteFile = "kv.sqlite"

// SQLite stores pairs in a single WITHOUT ROWID table in WAL mode.
type SQLite struct {
	db     *sql.DB
	insert *sql.Stmt
	get    *sql.Stmt
}

func OpenSQLite(dir string, opts Options) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"file:%v?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=10000&_cache_size=-%d",
		filepath.Join(dir, sqliteFile),
		opts.CacheBytes/1024,
	)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	store, err := newSQLite(db)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to close database: %v - original error: %w", cerr, err)
		}

		return nil, err
	}

	return store, nil
}

func newSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (k BLOB PRIMARY KEY, v BLOB NOT NULL) WITHOUT ROWID`); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	insert, err := db.Prepare(`INSERT OR REPLACE INTO kv (k, v) VALUES (?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	get, err := db.Prepare(`SELECT v FROM kv WHERE k = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare get: %w", err)
	}

	return &SQLite{db: db, insert: insert, get: get}, nil
}

func (s *SQLite) Insert(key, value []byte) error {
	_, err := s.insert.Exec(key, value)

	return err
}

func (s *SQLite) Get(key []byte) ([]byte, bool, error) {
	var value []byte

	if err := s.get.QueryRow(key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return value, true, nil
}

func (s *SQLite) Flush() error {
	_, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`)

	return err
}

func (s *SQLite) Close() error {
	if err := s.insert.Close(); err != nil {
		return err
	}

	if err := s.get.Close(); err != nil {
		return err
	}

	return s.db.Close()
}
