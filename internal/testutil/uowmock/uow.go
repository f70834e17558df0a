package uowmock

import (
	"context"
	"errors"

	"contract-manager-backend/internal/domain/contract"
	"contract-manager-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinContractTxFn func(ctx context.Context, contractUID string, fn func(r uow.Repos, c *contract.Contract) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinContractTx(ctx context.Context, contractUID string, fn func(r uow.Repos, c *contract.Contract) error) error {
	if m.WithinContractTxFn != nil {
		return m.WithinContractTxFn(ctx, contractUID, fn)
	}
	return errUnimplemented
}
