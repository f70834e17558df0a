package contract

import (
	"errors"
	"time"
)

var (
	// ErrNotFound also covers callers without permission to see the row;
	// the two cases are deliberately indistinguishable outside the engine.
	ErrNotFound         = errors.New("contract not found")
	ErrDuplicateNumber  = errors.New("contract number already exists")
	ErrInvalidState     = errors.New("contract status does not permit this operation")
	ErrDeleteRestricted = errors.New("contract cannot be deleted by this actor")
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusActive          Status = "active"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusExpired         Status = "expired"
	StatusRejected        Status = "rejected"
)

// CanRequestApproval reports whether a new approval request is legal in the
// given status. draft and rejected both (re)enter the approval chain;
// pending_approval allows queueing further approvers.
func CanRequestApproval(s Status) bool {
	switch s {
	case StatusDraft, StatusRejected, StatusPendingApproval:
		return true
	}
	return false
}

// Table: contracts. Numeric PK internal, contract_uid is the public id.
// No soft delete: contract removal is a hard delete cascading to approvals.
type Contract struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ContractUID    string    `gorm:"column:contract_uid;type:char(32);not null;uniqueIndex:ux_contracts_uid"`
	ContractNumber string    `gorm:"column:contract_number;size:100;not null;uniqueIndex:ux_contracts_number"`
	Title          string    `gorm:"column:title;size:255;not null"`
	Description    string    `gorm:"column:description;type:text"`
	Value          float64   `gorm:"column:value;type:decimal(18,2)"`
	Category       string    `gorm:"column:category;size:100"`
	Specification  string    `gorm:"column:specification;type:text"`
	StartDate      time.Time `gorm:"column:start_date;type:date"`
	EndDate        time.Time `gorm:"column:end_date;type:date"`
	Status         Status    `gorm:"column:status;type:enum('draft','pending_approval','approved','active','completed','cancelled','expired','rejected');default:'draft';index"`
	StatusUpdateAt time.Time `gorm:"column:status_updated_at;autoCreateTime"`
	CreatedBy      uint64    `gorm:"column:created_by;not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Contract) TableName() string { return "contracts" }
