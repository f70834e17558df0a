package uow

import (
	"context"

	"contract-manager-backend/internal/domain/approval"
	"contract-manager-backend/internal/domain/contract"
	"contract-manager-backend/internal/domain/notification"
	"contract-manager-backend/internal/domain/user"
)

type Repos struct {
	Contracts     contract.Repository
	Approvals     approval.Repository
	Users         user.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the contract row first, then pass it in. This is
	// the per-contract serialization point for every engine operation.
	WithinContractTx(ctx context.Context, contractUID string, fn func(r Repos, c *contract.Contract) error) error
}
