package users

import "context"

type Repo interface {
	Upsert(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
	SetRole(ctx context.Context, id string, role RoleType) error
	SetPaid(ctx context.Context, id string, paid bool) error
}
