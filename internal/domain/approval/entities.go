package approval

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("approval not found")
	ErrAlreadyResolved = errors.New("approval already resolved")
	ErrDuplicate       = errors.New("approval request already exists for this approver")
	ErrInvalidApprover = errors.New("approver missing, inactive or not authorized to approve")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
	ErrInvalidLevel    = errors.New("approval level out of range")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	// StatusCancelled marks sibling pendings voided by another approver's
	// rejection. Never set by an approver directly.
	StatusCancelled Status = "cancelled"
)

const (
	MinLevel = 1
	MaxLevel = 10
)

// Table: approvals. One row per (contract, approver); resolved at most once.
type Approval struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	ApprovalUID string     `gorm:"column:approval_uid;type:char(32);not null;uniqueIndex:ux_approvals_uid"`
	ContractID  uint64     `gorm:"column:contract_id;not null;index;uniqueIndex:ux_approvals_contract_approver"`
	ApproverID  uint64     `gorm:"column:approver_id;not null;index:idx_approvals_approver_status;uniqueIndex:ux_approvals_contract_approver"`
	Level       int        `gorm:"column:approval_level;not null;default:1"`
	Status      Status     `gorm:"column:status;type:enum('pending','approved','rejected','cancelled');default:'pending';index:idx_approvals_approver_status"`
	Comments    string     `gorm:"column:comments;type:text"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Approval) TableName() string { return "approvals" }

// PendingItem is an approver-queue row joined with its contract summary.
type PendingItem struct {
	Approval
	ContractUID         string    `gorm:"column:contract_uid"`
	ContractNumber      string    `gorm:"column:contract_number"`
	ContractTitle       string    `gorm:"column:contract_title"`
	ContractDescription string    `gorm:"column:contract_description"`
	ContractValue       float64   `gorm:"column:contract_value"`
	StartDate           time.Time `gorm:"column:start_date"`
	EndDate             time.Time `gorm:"column:end_date"`
	CreatedByName       string    `gorm:"column:created_by_name"`
}

// HistoryItem is a chain row joined with the approver's identity.
type HistoryItem struct {
	Approval
	ApproverName  string `gorm:"column:approver_name"`
	ApproverEmail string `gorm:"column:approver_email"`
}

// ListItem is an admin-listing row.
type ListItem struct {
	Approval
	ContractUID    string  `gorm:"column:contract_uid"`
	ContractNumber string  `gorm:"column:contract_number"`
	ContractTitle  string  `gorm:"column:contract_title"`
	ContractValue  float64 `gorm:"column:contract_value"`
	ApproverName   string  `gorm:"column:approver_name"`
	ApproverEmail  string  `gorm:"column:approver_email"`
	CreatedByName  string  `gorm:"column:created_by_name"`
}

// ListFilter narrows the admin listing. Zero values mean "no filter".
type ListFilter struct {
	Status     Status
	ContractID uint64
	Page       int
	Limit      int
}
