package storage

import (
	"context"
	"database/sql"
	"errors"

	"moneymagic/internal/core"

	"github.com/shopspring/decimal"
)

// GetOpening looks up the opening balance for (month, account) in the given
// scope. A missing row is a valid zero, not an error. For admin scopes the
// lookup crosses owners; when several owners hold a balance for the same
// (month, account) the most recently inserted row wins.
func (r *SQLiteRepository) GetOpening(ctx context.Context, month string, accountID int64, scope core.Scope) (decimal.Decimal, error) {
	var (
		q    string
		args []any
	)
	if scope.Admin {
		q = "SELECT opening FROM balances WHERE month = ? AND account_id = ? ORDER BY id DESC LIMIT 1"
		args = []any{month, accountID}
	} else {
		q = "SELECT opening FROM balances WHERE month = ? AND account_id = ? AND user_id = ?"
		args = []any{month, accountID, scope.UserID}
	}

	var opening string
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&opening)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, wrap("get opening", err)
	}
	d, err := decimal.NewFromString(opening)
	if err != nil {
		return decimal.Zero, wrap("get opening", err)
	}
	return d, nil
}

// SetOpening upserts the opening balance for (month, account, owner) as a
// single conditional write guarded by the unique index, so concurrent writers
// for the same key cannot produce duplicate rows.
func (r *SQLiteRepository) SetOpening(ctx context.Context, month string, accountID int64, opening decimal.Decimal, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO balances (month, account_id, opening, user_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(month, account_id, user_id) DO UPDATE SET opening = excluded.opening`,
		month, accountID, opening.String(), userID)
	return wrap("set opening", err)
}
