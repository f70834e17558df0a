package mysql

import (
	"context"

	"contract-manager-backend/internal/domain/contract"
	"contract-manager-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Contracts:     &ContractRepository{db: tx},
		Approvals:     &ApprovalRepository{db: tx},
		Users:         &UserRepository{db: tx},
		Notifications: &NotificationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinContractTx(ctx context.Context, contractUID string, fn func(r uow.Repos, c *contract.Contract) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the contract row up-front to prevent races
		c, err := r.Contracts.GetByContractUIDForUpdate(ctx, contractUID)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}
