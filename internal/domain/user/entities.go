package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleApprover Role = "approver"
	RoleUser     Role = "user"
)

// CanResolveApprovals reports whether the role may be designated as an
// approver and resolve approvals assigned to it.
func (r Role) CanResolveApprovals() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleApprover
}

// CanManageApprovals reports whether the role may list all approvals and
// request approvals on contracts it does not own.
func (r Role) CanManageApprovals() bool {
	return r == RoleAdmin || r == RoleManager
}

// Table: users
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	UserUID   string    `gorm:"column:user_uid;type:char(32);not null;uniqueIndex:ux_users_uid"`
	FullName  string    `gorm:"column:full_name;size:255;not null"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email"`
	Company   string    `gorm:"column:company;size:255"`
	Role      Role      `gorm:"column:role;type:enum('admin','manager','approver','user');default:'user';index"`
	Dept      string    `gorm:"column:department;size:255"`
	Phone     string    `gorm:"column:phone;size:20"`
	IsActive  bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// Actor is the capability object the HTTP layer resolves once per request
// and hands to the usecases. The engine never re-queries roles; everything
// it needs to authorize is carried here.
type Actor struct {
	ID      uint64
	UserUID string
	Role    Role

	// Request metadata for the audit trail.
	IP        string
	UserAgent string
}
