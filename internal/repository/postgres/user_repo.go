package postgres

import (
	"context"
	"errors"
	"fmt"

	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userCols = `id, first_name, last_name, email, phone, password_hash, role, is_active, created_at, updated_at`

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE id = $1`

	var u user.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &u, nil
}

// FindByEmail retrieves a user by email for credential checks.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userCols + ` FROM users WHERE email = $1`

	var u user.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.NotFoundf("user with email %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &u, nil
}

// Update overwrites mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, id int64, u *user.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, phone = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, id, u.FirstName, u.LastName, u.Email, u.Phone).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// SetRole changes the account role (user promotion to driver and back).
func (r *UserRepository) SetRole(ctx context.Context, id int64, role user.Role) error {
	ct, err := r.db.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.NotFoundf("user %d not found", id)
	}
	return nil
}

// Deactivate soft-deletes the account.
func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `UPDATE users SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.NotFoundf("user %d not found", id)
	}
	return nil
}

// ExistsByEmailOrPhone reports whether either identifier is taken.
func (r *UserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`,
		email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

var _ user.Repository = (*UserRepository)(nil)
