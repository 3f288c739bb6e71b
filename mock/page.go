package mock

import (
	"context"

	"github.com/fwojciec/distill"
)

var _ distill.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of distill.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *distill.Page) (string, error)
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *distill.Page) (string, error) {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
