package notificationmock

import (
	"context"
	"time"

	domain "contract-manager-backend/internal/domain/notification"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, n *domain.Notification) error
	ListUnsentFn func(ctx context.Context, limit int) ([]domain.Notification, error)
	MarkSentFn   func(ctx context.Context, ids []uint64, at time.Time) error
	ListByUserFn func(ctx context.Context, userID uint64, limit int) ([]domain.Notification, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) ListUnsent(ctx context.Context, limit int) ([]domain.Notification, error) {
	if m.ListUnsentFn != nil {
		return m.ListUnsentFn(ctx, limit)
	}
	return nil, nil
}

func (m *Repo) MarkSent(ctx context.Context, ids []uint64, at time.Time) error {
	if m.MarkSentFn != nil {
		return m.MarkSentFn(ctx, ids, at)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID uint64, limit int) ([]domain.Notification, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit)
	}
	return nil, nil
}
