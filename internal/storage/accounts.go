package storage

import (
	"context"
	"strings"

	"moneymagic/internal/core"
)

// ListAccounts returns the owner's accounts ordered by name, or every account
// system-wide for an admin scope.
func (r *SQLiteRepository) ListAccounts(ctx context.Context, scope core.Scope) ([]core.Account, error) {
	q := "SELECT id, name, type, notes, user_id FROM accounts"
	var args []any
	if !scope.Admin {
		q += " WHERE user_id = ?"
		args = append(args, scope.UserID)
	}
	q += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap("list accounts", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Notes, &a.UserID); err != nil {
			return nil, wrap("list accounts", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, wrap("list accounts", rows.Err())
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64, scope core.Scope) (*core.Account, error) {
	q := "SELECT id, name, type, notes, user_id FROM accounts WHERE id = ?"
	args := []any{id}
	if !scope.Admin {
		q += " AND user_id = ?"
		args = append(args, scope.UserID)
	}
	var a core.Account
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&a.ID, &a.Name, &a.Type, &a.Notes, &a.UserID)
	if err != nil {
		return nil, wrap("get account", err)
	}
	return &a, nil
}

// CreateAccount inserts an account; a (name, owner) clash surfaces as
// core.ErrDuplicate.
func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (*core.Account, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO accounts (name, type, notes, user_id) VALUES (?, ?, ?, ?)",
		a.Name, string(a.Type), a.Notes, a.UserID)
	if err != nil {
		return nil, wrap("create account", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrap("create account", err)
	}
	a.ID = id
	return &a, nil
}

// UpdateAccount applies the set fields of the patch to an account the scope
// may touch. An empty patch is a no-op.
func (r *SQLiteRepository) UpdateAccount(ctx context.Context, id int64, patch core.AccountPatch, scope core.Scope) error {
	var parts []string
	var args []any
	if patch.Name != nil {
		parts = append(parts, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Type != nil {
		parts = append(parts, "type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.Notes != nil {
		parts = append(parts, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if len(parts) == 0 {
		return nil
	}

	q := "UPDATE accounts SET " + strings.Join(parts, ", ") + " WHERE id = ?"
	args = append(args, id)
	if !scope.Admin {
		q += " AND user_id = ?"
		args = append(args, scope.UserID)
	}
	_, err := r.db.ExecContext(ctx, q, args...)
	return wrap("update account", err)
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id int64, scope core.Scope) error {
	q := "DELETE FROM accounts WHERE id = ?"
	args := []any{id}
	if !scope.Admin {
		q += " AND user_id = ?"
		args = append(args, scope.UserID)
	}
	_, err := r.db.ExecContext(ctx, q, args...)
	return wrap("delete account", err)
}

// CountTransactionsByAccount counts referencing transactions across all
// owners. The referential check before deletion is deliberately global.
func (r *SQLiteRepository) CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE account_id = ?", accountID).Scan(&n)
	if err != nil {
		return 0, wrap("count transactions by account", err)
	}
	return n, nil
}
