// internal/domain/user/repository.go
package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, u *User) error
	SetRole(ctx context.Context, id int64, role Role) error
	Deactivate(ctx context.Context, id int64) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}
