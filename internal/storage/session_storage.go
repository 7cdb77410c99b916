package storage

import (
	"context"

	"RieperLogistics_ScanLedger/internal/config"
)

const (
	keyMitarbeiter = "mitarbeiter"
	keyClientID    = "clientId"
	keyLastSync    = "lastSync"
)

// config.SessionStore 구현
func (s *Store) LoadSession(ctx context.Context) (config.Session, error) {
	var session config.Session

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM session_config")
	if err != nil {
		return session, &StorageError{Op: "load session", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return session, &StorageError{Op: "load session", Err: err}
		}
		switch key {
		case keyMitarbeiter:
			session.Mitarbeiter = value
		case keyClientID:
			session.ClientID = value
		case keyLastSync:
			session.LastSync = value
		}
	}
	if err := rows.Err(); err != nil {
		return session, &StorageError{Op: "load session", Err: err}
	}
	return session, nil
}

func (s *Store) SaveSession(ctx context.Context, session config.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "save session", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_config(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return &StorageError{Op: "save session", Err: err}
	}
	defer stmt.Close()

	values := map[string]string{
		keyMitarbeiter: session.Mitarbeiter,
		keyClientID:    session.ClientID,
		keyLastSync:    session.LastSync,
	}
	for key, value := range values {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return &StorageError{Op: "save session", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "save session", Err: err}
	}
	return nil
}
