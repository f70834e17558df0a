package contractmock

import (
	"context"

	domain "contract-manager-backend/internal/domain/contract"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                    func(ctx context.Context, c *domain.Contract) error
	GetByContractUIDFn          func(ctx context.Context, contractUID string) (*domain.Contract, error)
	GetByContractUIDForUpdateFn func(ctx context.Context, contractUID string) (*domain.Contract, error)
	GetByIDFn                   func(ctx context.Context, id uint64) (*domain.Contract, error)
	GetByNumberFn               func(ctx context.Context, number string) (*domain.Contract, error)
	SaveFn                      func(ctx context.Context, c *domain.Contract) error
	DeleteFn                    func(ctx context.Context, c *domain.Contract) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByContractUID(ctx context.Context, contractUID string) (*domain.Contract, error) {
	if m.GetByContractUIDFn != nil {
		return m.GetByContractUIDFn(ctx, contractUID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByContractUIDForUpdate(ctx context.Context, contractUID string) (*domain.Contract, error) {
	if m.GetByContractUIDForUpdateFn != nil {
		return m.GetByContractUIDForUpdateFn(ctx, contractUID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByNumber(ctx context.Context, number string) (*domain.Contract, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, c *domain.Contract) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, c)
	}
	return nil
}
