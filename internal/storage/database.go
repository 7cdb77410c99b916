package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store는 디바이스 로컬 SQLite 핸들. 시작 시 한 번 열고 필요한 컴포넌트에 넘겨준다.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	// 단일 작업자 세션이므로 커넥션 하나로 충분
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Err: err}
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// 스키마는 물리 DB가 처음 열릴 때(user_version = 0) 한 번만 만든다.
func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	createEntriesTable := `
	CREATE TABLE entries (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"barcode" TEXT NOT NULL DEFAULT '',
			"spedition" TEXT NOT NULL DEFAULT '',
			"artikel" TEXT NOT NULL DEFAULT '',
			"bemerkung" TEXT NOT NULL DEFAULT '',
			"hundert" INTEGER NOT NULL DEFAULT 0 CHECK (hundert >= 0),
			"fuenfzig" INTEGER NOT NULL DEFAULT 0 CHECK (fuenfzig >= 0),
			"info" TEXT NOT NULL DEFAULT '',
			"mitarbeiter" TEXT NOT NULL,
			"date" TEXT NOT NULL,
			"timestamp" TEXT NOT NULL
	)`
	createSessionTable := `
	CREATE TABLE session_config (
			"key" TEXT PRIMARY KEY,
			"value" TEXT NOT NULL
	)`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		createEntriesTable,
		`CREATE INDEX by_date ON entries("date")`,
		`CREATE INDEX by_mitarbeiter ON entries("mitarbeiter")`,
		createSessionTable,
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return tx.Commit()
}
