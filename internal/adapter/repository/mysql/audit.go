package mysql

import (
	"context"

	auditDomain "contract-manager-backend/internal/domain/audit"

	"gorm.io/gorm"
)

// AuditRepository appends audit_logs rows on the base connection, outside
// any business transaction.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Record(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}
