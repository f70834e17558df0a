package usermock

import (
	"context"

	domain "contract-manager-backend/internal/domain/user"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, u *domain.User) error
	GetByUserUIDFn func(ctx context.Context, userUID string) (*domain.User, error)
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserUID(ctx context.Context, userUID string) (*domain.User, error) {
	if m.GetByUserUIDFn != nil {
		return m.GetByUserUIDFn(ctx, userUID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
