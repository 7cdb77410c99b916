package storage

import (
	"context"
	"database/sql"
	"errors"

	"RieperLogistics_ScanLedger/internal/models"
)

const recordColumns = `id, barcode, spedition, artikel, bemerkung, hundert, fuenfzig, info, mitarbeiter, date, timestamp`

// 새 ID를 부여하고 r.ID에 채운다.
func (s *Store) AddRecord(ctx context.Context, r *models.Record) error {
	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO entries(barcode, spedition, artikel, bemerkung, hundert, fuenfzig, info, mitarbeiter, date, timestamp)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &StorageError{Op: "add", Err: err}
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, r.Barcode, r.Spedition, r.Artikel, r.Bemerkung,
		r.Hundert, r.Fuenfzig, r.Info, r.Mitarbeiter, r.Date, r.Timestamp)
	if err != nil {
		return &StorageError{Op: "add", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return &StorageError{Op: "add", Err: err}
	}
	r.ID = id
	return nil
}

// 기존 ID가 반드시 있어야 한다. date와 timestamp는 생성 시 값을 유지하고 r에 다시 채운다.
func (s *Store) UpdateRecord(ctx context.Context, r *models.Record) error {
	row := s.db.QueryRowContext(ctx, `
		UPDATE entries
		SET barcode = ?, spedition = ?, artikel = ?, bemerkung = ?, hundert = ?, fuenfzig = ?, info = ?, mitarbeiter = ?
		WHERE id = ?
		RETURNING date, timestamp`,
		r.Barcode, r.Spedition, r.Artikel, r.Bemerkung, r.Hundert, r.Fuenfzig, r.Info, r.Mitarbeiter, r.ID)

	if err := row.Scan(&r.Date, &r.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &StorageError{Op: "update", Err: ErrNotFound}
		}
		return &StorageError{Op: "update", Err: err}
	}
	return nil
}

// 없는 ID는 에러가 아니다.
func (s *Store) DeleteRecord(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

func (s *Store) GetRecord(ctx context.Context, id int64) (models.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM entries WHERE id = ?", id)

	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, &StorageError{Op: "get", Err: ErrNotFound}
		}
		return r, &StorageError{Op: "get", Err: err}
	}
	return r, nil
}

// 날짜 + 작업자가 정확히 일치하는 레코드를 입력 순서대로 반환
func (s *Store) QueryByDateAndWorker(ctx context.Context, date, worker string) ([]models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM entries
		WHERE date = ? AND mitarbeiter = ?
		ORDER BY id ASC
	`
	return s.queryRecords(ctx, query, date, worker)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, &StorageError{Op: "query", Err: err}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	return records, nil
}

// 날짜와 상관없이 작업자의 레코드 전체 (전송 배치)
func (s *Store) QueryByWorker(ctx context.Context, worker string) ([]models.Record, error) {
	return s.queryRecords(ctx, "SELECT "+recordColumns+" FROM entries WHERE mitarbeiter = ? ORDER BY id ASC", worker)
}

// 원격 저장이 확인된 뒤에만 호출된다.
func (s *Store) ClearRecords(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var r models.Record
	err := row.Scan(&r.ID, &r.Barcode, &r.Spedition, &r.Artikel, &r.Bemerkung,
		&r.Hundert, &r.Fuenfzig, &r.Info, &r.Mitarbeiter, &r.Date, &r.Timestamp)
	return r, err
}
