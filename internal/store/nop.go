package store

import "github.com/amishk599/autoapply/internal/model"

// NopStore is used in dry-run mode. It reads through to the real state so
// already-applied jobs are still skipped, but never writes.
type NopStore struct {
	inner model.AppliedStore
}

var _ model.AppliedStore = (*NopStore)(nil)

func NewNopStore(inner model.AppliedStore) *NopStore { return &NopStore{inner: inner} }

func (s *NopStore) Load() []model.AppliedRecord {
	if s.inner == nil {
		return nil
	}
	return s.inner.Load()
}

func (s *NopStore) Append(rec model.AppliedRecord, records []model.AppliedRecord) ([]model.AppliedRecord, error) {
	return append(records, rec), nil
}
