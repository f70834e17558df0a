package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error

	// Get by public user_uid
	GetByUserUID(ctx context.Context, userUID string) (*User, error)

	// Get by internal numeric id
	GetByID(ctx context.Context, id uint64) (*User, error)
}
