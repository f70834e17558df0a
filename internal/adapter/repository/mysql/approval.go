package mysql

import (
	"context"
	"time"

	approvalDomain "contract-manager-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) Save(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApprovalRepository) GetByApprovalUID(ctx context.Context, approvalUID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approval_uid = ?", approvalUID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) ExistsForContractAndApprover(ctx context.Context, contractID, approverID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&approvalDomain.Approval{}).
		Where("contract_id = ? AND approver_id = ?", contractID, approverID).
		Count(&n).Error
	return n > 0, err
}

func (r *ApprovalRepository) CountPendingByContract(ctx context.Context, contractID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&approvalDomain.Approval{}).
		Where("contract_id = ? AND status = ?", contractID, approvalDomain.StatusPending).
		Count(&n).Error
	return n, err
}

func (r *ApprovalRepository) CancelPendingByContract(ctx context.Context, contractID uint64, resolvedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&approvalDomain.Approval{}).
		Where("contract_id = ? AND status = ?", contractID, approvalDomain.StatusPending).
		Updates(map[string]any{
			"status":      approvalDomain.StatusCancelled,
			"resolved_at": resolvedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *ApprovalRepository) DeleteByContract(ctx context.Context, contractID uint64) error {
	return r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&approvalDomain.Approval{}).Error
}

func (r *ApprovalRepository) ListPendingForApprover(ctx context.Context, approverID uint64) ([]approvalDomain.PendingItem, error) {
	var out []approvalDomain.PendingItem
	err := r.db.WithContext(ctx).
		Table("approvals AS a").
		Select(`a.*,
			c.contract_uid,
			c.contract_number,
			c.title AS contract_title,
			c.description AS contract_description,
			c.value AS contract_value,
			c.start_date,
			c.end_date,
			creator.full_name AS created_by_name`).
		Joins("JOIN contracts c ON a.contract_id = c.id").
		Joins("JOIN users creator ON c.created_by = creator.id").
		Where("a.approver_id = ? AND a.status = ?", approverID, approvalDomain.StatusPending).
		Order("a.created_at ASC").
		Scan(&out).Error
	return out, err
}

func (r *ApprovalRepository) ListByContract(ctx context.Context, contractID uint64) ([]approvalDomain.HistoryItem, error) {
	var out []approvalDomain.HistoryItem
	err := r.db.WithContext(ctx).
		Table("approvals AS a").
		Select(`a.*,
			u.full_name AS approver_name,
			u.email AS approver_email`).
		Joins("JOIN users u ON a.approver_id = u.id").
		Where("a.contract_id = ?", contractID).
		Order("a.approval_level ASC, a.created_at ASC").
		Scan(&out).Error
	return out, err
}

func (r *ApprovalRepository) List(ctx context.Context, f approvalDomain.ListFilter) ([]approvalDomain.ListItem, int64, error) {
	base := r.db.WithContext(ctx).
		Table("approvals AS a").
		Joins("JOIN contracts c ON a.contract_id = c.id")
	if f.Status != "" {
		base = base.Where("a.status = ?", f.Status)
	}
	if f.ContractID != 0 {
		base = base.Where("a.contract_id = ?", f.ContractID)
	}
	// New session so the count and the page query reuse the same conditions.
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var out []approvalDomain.ListItem
	err := base.
		Select(`a.*,
			c.contract_uid,
			c.contract_number,
			c.title AS contract_title,
			c.value AS contract_value,
			u.full_name AS approver_name,
			u.email AS approver_email,
			creator.full_name AS created_by_name`).
		Joins("JOIN users u ON a.approver_id = u.id").
		Joins("JOIN users creator ON c.created_by = creator.id").
		Order("a.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&out).Error
	return out, total, err
}
