package approval

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Approval) error

	// Get by public approval_uid
	GetByApprovalUID(ctx context.Context, approvalUID string) (*Approval, error)

	// Duplicate-pair check for RequestApproval. Counts any status, not just
	// pending, matching the one-row-per-pair invariant.
	ExistsForContractAndApprover(ctx context.Context, contractID, approverID uint64) (bool, error)

	CountPendingByContract(ctx context.Context, contractID uint64) (int64, error)

	Save(ctx context.Context, a *Approval) error

	// CancelPendingByContract flips every remaining pending row of the
	// contract to cancelled, stamping resolvedAt. Returns rows affected.
	CancelPendingByContract(ctx context.Context, contractID uint64, resolvedAt time.Time) (int64, error)

	// Hard delete of a contract's rows, used by the contract delete cascade.
	DeleteByContract(ctx context.Context, contractID uint64) error

	// ListPendingForApprover returns the approver's queue, oldest first.
	ListPendingForApprover(ctx context.Context, approverID uint64) ([]PendingItem, error)

	// ListByContract is the canonical chain ordering: level ASC, created ASC.
	ListByContract(ctx context.Context, contractID uint64) ([]HistoryItem, error)

	// List is the paginated admin view; returns rows and the total count.
	List(ctx context.Context, f ListFilter) ([]ListItem, int64, error)
}
