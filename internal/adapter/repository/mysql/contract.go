package mysql

import (
	"context"

	contractDomain "contract-manager-backend/internal/domain/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByContractUID(ctx context.Context, contractUID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("contract_uid = ?", contractUID).
		First(&out)
	return &out, res.Error
}

// GetByContractUIDForUpdate takes a row lock; callers run it inside a tx.
// sqlite (tests) has no FOR UPDATE syntax; its single-writer model already
// serializes the transaction.
func (r *ContractRepository) GetByContractUIDForUpdate(ctx context.Context, contractUID string) (*contractDomain.Contract, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out contractDomain.Contract
	res := q.
		Where("contract_uid = ?", contractUID).
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByNumber(ctx context.Context, number string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("contract_number = ?", number).
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) Delete(ctx context.Context, c *contractDomain.Contract) error {
	// Hard delete; the model carries no gorm.DeletedAt so this is permanent.
	return r.db.WithContext(ctx).Delete(c).Error
}
