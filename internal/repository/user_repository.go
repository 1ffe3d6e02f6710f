package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/event-booking/internal/model"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns the stored record. The password must
// already be hashed by the caller. ErrDuplicate is returned when the
// email/phone handle is taken.
func (r *UserRepo) Create(ctx context.Context, name, emailOrPhone, passwordHash, role string) (model.User, error) {
	emailOrPhone = strings.ToLower(strings.TrimSpace(emailOrPhone))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email_or_phone, password_hash, role) VALUES (?,?,?,?)",
		name, emailOrPhone, passwordHash, role)
	if err != nil {
		// MySQL 1062 = duplicate key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrDuplicate
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmailOrPhone fetches a user by normalized login handle.
func (r *UserRepo) GetByEmailOrPhone(ctx context.Context, emailOrPhone string) (model.User, error) {
	emailOrPhone = strings.ToLower(strings.TrimSpace(emailOrPhone))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email_or_phone,password_hash,role,created_at FROM users WHERE email_or_phone=? LIMIT 1",
		emailOrPhone).Scan(&u.ID, &u.Name, &u.EmailOrPhone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email_or_phone,password_hash,role,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.EmailOrPhone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// UpdateRole rewrites a user's role. ErrNotFound when the id is unknown.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=? WHERE id=?", role, id)
	if err != nil {
		return err
	}
	// Zero affected rows also covers an unchanged role, so check existence
	// only when nothing matched.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ListByRole returns all users holding the given role, newest first.
// The admin dashboard uses it to list regular accounts.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email_or_phone,password_hash,role,created_at FROM users WHERE role=? ORDER BY created_at DESC",
		role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.EmailOrPhone, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountByRole returns the number of users holding the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role=?", role).Scan(&n)
	return n, err
}
