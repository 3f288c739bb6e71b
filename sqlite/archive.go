package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/distill"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ distill.ArchiveService = (*ArchiveService)(nil)

const recordColumns = "id, source_url, final_url, file_path, title, content_hash, bytes, retrieved_at"

// ArchiveService implements distill.ArchiveService using SQLite.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// CreateRecord stores a new record. The ID is always generated; RetrievedAt
// defaults to the current time when unset.
func (s *ArchiveService) CreateRecord(ctx context.Context, rec *distill.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.RetrievedAt.IsZero() {
		rec.RetrievedAt = time.Now()
	}
	rec.RetrievedAt = rec.RetrievedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.FinalURL, rec.FilePath, rec.Title, rec.ContentHash,
		rec.Bytes, rec.RetrievedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *ArchiveService) FindRecordByID(ctx context.Context, id string) (*distill.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, distill.Errorf(distill.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *ArchiveService) FindRecords(ctx context.Context, filter distill.RecordFilter) ([]*distill.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY retrieved_at DESC, rowid DESC")

	// SQLite accepts OFFSET only after LIMIT; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, max(filter.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*distill.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*distill.Record, error) {
	var rec distill.Record
	var retrievedAt string

	if err := row.Scan(&rec.ID, &rec.SourceURL, &rec.FinalURL, &rec.FilePath, &rec.Title,
		&rec.ContentHash, &rec.Bytes, &retrievedAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, retrievedAt)
	if err != nil {
		return nil, fmt.Errorf("record %s: parse retrieved_at: %w", rec.ID, err)
	}
	rec.RetrievedAt = t
	return &rec, nil
}
