package distill

import (
	"context"
	"time"
)

// Record is an archive index entry for a persisted fragment.
type Record struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	FinalURL    string    `json:"finalUrl"`
	FilePath    string    `json:"filePath"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	Bytes       int       `json:"bytes"`
	RetrievedAt time.Time `json:"retrievedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if r.ContentHash == "" {
		return Errorf(EINVALID, "record content hash required")
	}
	return nil
}

// ArchiveService represents a service for indexing archived fragments.
type ArchiveService interface {
	// CreateRecord stores a new record and assigns its ID.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
