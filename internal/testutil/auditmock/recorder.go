package auditmock

import (
	"context"

	domain "contract-manager-backend/internal/domain/audit"
)

// Recorder is a function-backed mock that satisfies domain.Recorder.
type Recorder struct {
	RecordFn func(ctx context.Context, e *domain.Entry) error
}

func (m *Recorder) Record(ctx context.Context, e *domain.Entry) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, e)
	}
	return nil
}
