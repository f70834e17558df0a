package mysql

import (
	"context"
	"time"

	notificationDomain "contract-manager-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListUnsent(ctx context.Context, limit int) ([]notificationDomain.Notification, error) {
	var out []notificationDomain.Notification
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) MarkSent(ctx context.Context, ids []uint64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("id IN ?", ids).
		Update("sent_at", at).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]notificationDomain.Notification, error) {
	var out []notificationDomain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
