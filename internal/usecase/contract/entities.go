package contract

import "time"

type CreateInput struct {
	ContractNumber string
	Title          string
	Description    string
	Value          float64
	Category       string
	Specification  string
	StartDate      time.Time
	EndDate        time.Time
}

type ContractDTO struct {
	ContractUID    string    `json:"contract_id"`
	ContractNumber string    `json:"contract_number"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Value          float64   `json:"value"`
	Category       string    `json:"category,omitempty"`
	Specification  string    `json:"specification,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
