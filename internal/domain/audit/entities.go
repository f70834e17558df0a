package audit

import (
	"context"
	"time"
)

const (
	ActionInsert   = "INSERT"
	ActionDelete   = "DELETE"
	ActionApproved = "APPROVED"
	ActionRejected = "REJECTED"
)

// Table: audit_logs, append-only.
type Entry struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Table     string    `gorm:"column:table_name;size:64;not null;index"`
	RecordID  uint64    `gorm:"column:record_id;not null;index"`
	Action    string    `gorm:"column:action;size:20;not null"`
	UserID    uint64    `gorm:"column:user_id;not null;index"`
	IPAddress string    `gorm:"column:ip_address;size:45"`
	UserAgent string    `gorm:"column:user_agent;size:512"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Entry) TableName() string { return "audit_logs" }

// Recorder appends entries outside the business transaction. Callers treat
// failures as non-fatal: log and move on.
type Recorder interface {
	Record(ctx context.Context, e *Entry) error
}
