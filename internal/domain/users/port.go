package users

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id int64, hashed string) error
	Deactivate(ctx context.Context, id int64) error
}
