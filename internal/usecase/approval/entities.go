package approval

import (
	"time"

	domainApproval "contract-manager-backend/internal/domain/approval"
)

type RequestInput struct {
	ContractUID string
	ApproverUID string
	Level       int
	Comments    string
}

type ResolveInput struct {
	ApprovalUID string
	Decision    domainApproval.Status // approved | rejected
	Comments    string
}

type ApprovalDTO struct {
	ApprovalUID string     `json:"approval_id"`
	ContractUID string     `json:"contract_id"`
	ApproverUID string     `json:"approver_id"`
	Level       int        `json:"approval_level"`
	Status      string     `json:"status"`
	Comments    string     `json:"comments,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PendingDTO struct {
	ApprovalUID         string    `json:"approval_id"`
	ContractUID         string    `json:"contract_id"`
	ContractNumber      string    `json:"contract_number"`
	ContractTitle       string    `json:"contract_title"`
	ContractDescription string    `json:"contract_description"`
	ContractValue       float64   `json:"contract_value"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	CreatedByName       string    `json:"created_by_name"`
	Level               int       `json:"approval_level"`
	Comments            string    `json:"comments,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type HistoryDTO struct {
	ApprovalUID   string     `json:"approval_id"`
	ApproverName  string     `json:"approver_name"`
	ApproverEmail string     `json:"approver_email"`
	Level         int        `json:"approval_level"`
	Status        string     `json:"status"`
	Comments      string     `json:"comments,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListItemDTO struct {
	ApprovalUID    string     `json:"approval_id"`
	ContractUID    string     `json:"contract_id"`
	ContractNumber string     `json:"contract_number"`
	ContractTitle  string     `json:"contract_title"`
	ContractValue  float64    `json:"contract_value"`
	ApproverName   string     `json:"approver_name"`
	ApproverEmail  string     `json:"approver_email"`
	CreatedByName  string     `json:"created_by_name"`
	Level          int        `json:"approval_level"`
	Status         string     `json:"status"`
	Comments       string     `json:"comments,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type ListInput struct {
	Status      string
	ContractUID string
	Page        int
	Limit       int
}

type ListResult struct {
	Data       []ListItemDTO `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
