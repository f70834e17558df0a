package contract

import "context"

type Repository interface {
	Create(ctx context.Context, c *Contract) error

	// Get by public contract_uid
	GetByContractUID(ctx context.Context, contractUID string) (*Contract, error)

	// Get by internal numeric id
	GetByID(ctx context.Context, id uint64) (*Contract, error)

	// Same lookup with a row lock; only meaningful inside a transaction.
	GetByContractUIDForUpdate(ctx context.Context, contractUID string) (*Contract, error)

	GetByNumber(ctx context.Context, number string) (*Contract, error)

	Save(ctx context.Context, c *Contract) error

	// Hard delete of the contract row itself. Approval cascade is the
	// unit of work's job, not the repository's.
	Delete(ctx context.Context, c *Contract) error
}
