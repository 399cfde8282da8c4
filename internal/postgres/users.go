package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/users"
)

var _ users.Repo = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{pool: store.Pool}
}

func (ur *UserRepo) Upsert(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	_, err := ur.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			paid = EXCLUDED.paid`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.Paid, user.CreatedAt)
	return errors.Wrapf(err, "upsert user %s", user.ID)
}

func (ur *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := ur.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete user %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (ur *UserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return ur.getBy(ctx, `WHERE id = $1`, id)
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return ur.getBy(ctx, `WHERE email = $1`, email)
}

func (ur *UserRepo) getBy(ctx context.Context, where string, arg any) (*users.User, error) {
	var user users.User
	err := ur.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role, paid, created_at
		FROM users `+where, arg).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Paid, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get user")
	}
	return &user, nil
}

func (ur *UserRepo) List(ctx context.Context, offset, limit int) ([]*users.User, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := ur.pool.Query(ctx, `
		SELECT id, email, name, password_hash, role, paid, created_at
		FROM users ORDER BY email OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "list users")
	}
	defer rows.Close()

	var list []*users.User
	for rows.Next() {
		var user users.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Paid, &user.CreatedAt); err != nil {
			return nil, errors.Wrapf(err, "scan user")
		}
		list = append(list, &user)
	}
	return list, rows.Err()
}

func (ur *UserRepo) SetRole(ctx context.Context, id string, role users.RoleType) error {
	tag, err := ur.pool.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return errors.Wrapf(err, "set role for user %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (ur *UserRepo) SetPaid(ctx context.Context, id string, paid bool) error {
	tag, err := ur.pool.Exec(ctx, `UPDATE users SET paid = $2 WHERE id = $1`, id, paid)
	if err != nil {
		return errors.Wrapf(err, "set paid for user %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}
