package approvalmock

import (
	"context"
	"time"

	domain "contract-manager-backend/internal/domain/approval"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                       func(ctx context.Context, a *domain.Approval) error
	GetByApprovalUIDFn             func(ctx context.Context, approvalUID string) (*domain.Approval, error)
	ExistsForContractAndApproverFn func(ctx context.Context, contractID, approverID uint64) (bool, error)
	CountPendingByContractFn       func(ctx context.Context, contractID uint64) (int64, error)
	SaveFn                         func(ctx context.Context, a *domain.Approval) error
	CancelPendingByContractFn      func(ctx context.Context, contractID uint64, resolvedAt time.Time) (int64, error)
	DeleteByContractFn             func(ctx context.Context, contractID uint64) error
	ListPendingForApproverFn       func(ctx context.Context, approverID uint64) ([]domain.PendingItem, error)
	ListByContractFn               func(ctx context.Context, contractID uint64) ([]domain.HistoryItem, error)
	ListFn                         func(ctx context.Context, f domain.ListFilter) ([]domain.ListItem, int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApprovalUID(ctx context.Context, approvalUID string) (*domain.Approval, error) {
	if m.GetByApprovalUIDFn != nil {
		return m.GetByApprovalUIDFn(ctx, approvalUID)
	}
	return nil, context.Canceled
}

func (m *Repo) ExistsForContractAndApprover(ctx context.Context, contractID, approverID uint64) (bool, error) {
	if m.ExistsForContractAndApproverFn != nil {
		return m.ExistsForContractAndApproverFn(ctx, contractID, approverID)
	}
	return false, nil
}

func (m *Repo) CountPendingByContract(ctx context.Context, contractID uint64) (int64, error) {
	if m.CountPendingByContractFn != nil {
		return m.CountPendingByContractFn(ctx, contractID)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Approval) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) CancelPendingByContract(ctx context.Context, contractID uint64, resolvedAt time.Time) (int64, error) {
	if m.CancelPendingByContractFn != nil {
		return m.CancelPendingByContractFn(ctx, contractID, resolvedAt)
	}
	return 0, nil
}

func (m *Repo) DeleteByContract(ctx context.Context, contractID uint64) error {
	if m.DeleteByContractFn != nil {
		return m.DeleteByContractFn(ctx, contractID)
	}
	return nil
}

func (m *Repo) ListPendingForApprover(ctx context.Context, approverID uint64) ([]domain.PendingItem, error) {
	if m.ListPendingForApproverFn != nil {
		return m.ListPendingForApproverFn(ctx, approverID)
	}
	return nil, nil
}

func (m *Repo) ListByContract(ctx context.Context, contractID uint64) ([]domain.HistoryItem, error) {
	if m.ListByContractFn != nil {
		return m.ListByContractFn(ctx, contractID)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.ListItem, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, nil
}
