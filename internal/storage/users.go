package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"moneymagic/internal/core"
)

const userColumns = "id, username, password_hash, display_name, email, is_admin, created_at"

// CreateUser inserts a new user. The first row in an empty users table is
// created as admin, decided inside the insert itself so two racing
// registrations cannot both become first.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash, displayName, email string) (*core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, display_name, email, is_admin, created_at)
		 VALUES (?, ?, ?, ?, (SELECT COUNT(*) = 0 FROM users), ?)`,
		username, passwordHash, displayName, email, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, wrap("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrap("create user", err)
	}
	return r.GetUserByID(ctx, id)
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row, "get user by id")
}

func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row, "get user by username")
}

// UpdateUser applies the set fields of the patch; an empty patch is a no-op.
func (r *SQLiteRepository) UpdateUser(ctx context.Context, id int64, patch core.UserPatch) error {
	var parts []string
	var args []any
	if patch.DisplayName != nil {
		parts = append(parts, "display_name = ?")
		args = append(args, *patch.DisplayName)
	}
	if patch.Email != nil {
		parts = append(parts, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.PasswordHash != nil {
		parts = append(parts, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	if len(parts) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(parts, ", ")+" WHERE id = ?", args...)
	return wrap("update user", err)
}

func (r *SQLiteRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	if err != nil {
		return 0, wrap("count users", err)
	}
	return n, nil
}

// RecentUsers returns the most recently registered users, newest first.
func (r *SQLiteRepository) RecentUsers(ctx context.Context, limit int) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, wrap("recent users", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		u, err := scanUser(rows, "recent users")
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, wrap("recent users", rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, op string) (*core.User, error) {
	var (
		u         core.User
		isAdmin   int64
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Email, &isAdmin, &createdAt)
	if err != nil {
		return nil, wrap(op, err)
	}
	u.IsAdmin = isAdmin != 0
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t
	}
	return &u, nil
}

var _ rowScanner = (*sql.Row)(nil)
