package mysql

import (
	"testing"
	"time"

	approvalDomain "contract-manager-backend/internal/domain/approval"
	auditDomain "contract-manager-backend/internal/domain/audit"
	contractDomain "contract-manager-backend/internal/domain/contract"
	notificationDomain "contract-manager-backend/internal/domain/notification"
	userDomain "contract-manager-backend/internal/domain/user"
	"contract-manager-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqlite-safe shadow models: the mysql enum column types in the domain
// structs do not migrate on sqlite, so tests migrate these and then run the
// real repositories against the same table names.

type contractSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	ContractUID    string    `gorm:"column:contract_uid;size:32;uniqueIndex"`
	ContractNumber string    `gorm:"column:contract_number;size:100;uniqueIndex"`
	Title          string    `gorm:"column:title"`
	Description    string    `gorm:"column:description"`
	Value          float64   `gorm:"column:value"`
	Category       string    `gorm:"column:category"`
	Specification  string    `gorm:"column:specification"`
	StartDate      time.Time `gorm:"column:start_date"`
	EndDate        time.Time `gorm:"column:end_date"`
	Status         string    `gorm:"column:status;type:text"` // ← no enum
	StatusUpdateAt time.Time `gorm:"column:status_updated_at"`
	CreatedBy      uint64    `gorm:"column:created_by"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (contractSQLite) TableName() string { return "contracts" }

type approvalSQLite struct {
	ID          uint64     `gorm:"primaryKey;column:id"`
	ApprovalUID string     `gorm:"column:approval_uid;size:32;uniqueIndex"`
	ContractID  uint64     `gorm:"column:contract_id"`
	ApproverID  uint64     `gorm:"column:approver_id"`
	Level       int        `gorm:"column:approval_level"`
	Status      string     `gorm:"column:status;type:text"` // ← no enum
	Comments    string     `gorm:"column:comments"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (approvalSQLite) TableName() string { return "approvals" }

type userSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	UserUID   string    `gorm:"column:user_uid;size:32;uniqueIndex"`
	FullName  string    `gorm:"column:full_name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Company   string    `gorm:"column:company"`
	Role      string    `gorm:"column:role;type:text"` // ← no enum
	Dept      string    `gorm:"column:department"`
	Phone     string    `gorm:"column:phone"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

// openTestDB migrates the sqlite-safe schema for all tables the engine touches.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userSQLite{},
		&contractSQLite{},
		&approvalSQLite{},
		&notificationDomain.Notification{},
		&auditDomain.Entry{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role userDomain.Role, active bool) *userDomain.User {
	t.Helper()
	u := &userDomain.User{
		UserUID:  id.NewID32(),
		FullName: name,
		Email:    id.NewID32() + "@example.com",
		Role:     role,
		IsActive: active,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedContract(t *testing.T, db *gorm.DB, number string, status contractDomain.Status, createdBy uint64) *contractDomain.Contract {
	t.Helper()
	c := &contractDomain.Contract{
		ContractUID:    id.NewID32(),
		ContractNumber: number,
		Title:          "Contract " + number,
		Value:          10_000,
		Status:         status,
		StatusUpdateAt: time.Now().UTC(),
		CreatedBy:      createdBy,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return c
}

func seedApproval(t *testing.T, db *gorm.DB, contractID, approverID uint64, level int, status approvalDomain.Status) *approvalDomain.Approval {
	t.Helper()
	a := &approvalDomain.Approval{
		ApprovalUID: id.NewID32(),
		ContractID:  contractID,
		ApproverID:  approverID,
		Level:       level,
		Status:      status,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed approval: %v", err)
	}
	return a
}
