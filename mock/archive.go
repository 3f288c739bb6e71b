package mock

import (
	"context"

	"github.com/fwojciec/distill"
)

var _ distill.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of distill.ArchiveService.
type ArchiveService struct {
	CreateRecordFn   func(ctx context.Context, rec *distill.Record) error
	FindRecordByIDFn func(ctx context.Context, id string) (*distill.Record, error)
	FindRecordsFn    func(ctx context.Context, filter distill.RecordFilter) ([]*distill.Record, error)
}

func (s *ArchiveService) CreateRecord(ctx context.Context, rec *distill.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *ArchiveService) FindRecordByID(ctx context.Context, id string) (*distill.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *ArchiveService) FindRecords(ctx context.Context, filter distill.RecordFilter) ([]*distill.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
