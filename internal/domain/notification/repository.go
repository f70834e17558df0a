package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// ListUnsent returns undelivered rows oldest first, up to limit.
	ListUnsent(ctx context.Context, limit int) ([]Notification, error)

	MarkSent(ctx context.Context, ids []uint64, at time.Time) error

	ListByUser(ctx context.Context, userID uint64, limit int) ([]Notification, error)
}
