package notification

import "time"

type Category string

const (
	CategoryApprovalRequest Category = "approval_request"
	CategoryContractUpdate  Category = "contract_update"
)

// Table: notifications. Rows double as the outbox: they are inserted inside
// the business transaction and SentAt is stamped by the dispatcher after
// delivery, so a crash between commit and delivery only delays the message.
type Notification struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       uint64     `gorm:"column:user_id;not null;index"`
	Title        string     `gorm:"column:title;size:255;not null"`
	Message      string     `gorm:"column:message;type:text;not null"`
	Category     Category   `gorm:"column:category;size:50;not null"`
	RelatedTable string     `gorm:"column:related_table;size:64"`
	RelatedID    uint64     `gorm:"column:related_id"`
	SentAt       *time.Time `gorm:"column:sent_at;index"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }
