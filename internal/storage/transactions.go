package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"moneymagic/internal/core"

	"github.com/shopspring/decimal"
)

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (tx_uuid, date, account_id, category, description, type, amount, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ExternalID, formatDate(t.Date), t.AccountID, t.Category, t.Description,
		string(t.Type), t.Amount.String(), t.UserID, time.Now().UTC().Format(time.RFC3339))
	return wrap("create transaction", err)
}

// UpdateTransactionByExternalID applies the set fields of the patch to the
// row keyed by its external id, restricted to the scope's owner unless admin.
// An empty patch is a no-op; a row outside the scope yields ErrNotFound.
func (r *SQLiteRepository) UpdateTransactionByExternalID(ctx context.Context, externalID string, patch core.TransactionPatch, scope core.Scope) error {
	var parts []string
	var args []any
	if patch.Date != nil {
		parts = append(parts, "date = ?")
		args = append(args, formatDate(*patch.Date))
	}
	if patch.AccountID != nil {
		parts = append(parts, "account_id = ?")
		args = append(args, *patch.AccountID)
	}
	if patch.Category != nil {
		parts = append(parts, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Description != nil {
		parts = append(parts, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Type != nil {
		parts = append(parts, "type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.Amount != nil {
		parts = append(parts, "amount = ?")
		args = append(args, patch.Amount.String())
	}
	if len(parts) == 0 {
		return nil
	}
	q := "UPDATE transactions SET " + strings.Join(parts, ", ") + " WHERE tx_uuid = ?"
	args = append(args, externalID)
	if !scope.Admin {
		q += " AND user_id = ?"
		args = append(args, scope.UserID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return wrap("update transaction", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update transaction: %w", core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTransactionByExternalID(ctx context.Context, externalID string, scope core.Scope) error {
	q := "DELETE FROM transactions WHERE tx_uuid = ?"
	args := []any{externalID}
	if !scope.Admin {
		q += " AND user_id = ?"
		args = append(args, scope.UserID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return wrap("delete transaction", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete transaction: %w", core.ErrNotFound)
	}
	return nil
}

// FetchTransactions builds the filtered ledger listing. Filters are optional
// and conjunctive; an empty AccountIDs or Types slice means no restriction,
// same as nil. Non-admin scopes only ever see their own rows. Results are
// ordered by date descending.
func (r *SQLiteRepository) FetchTransactions(ctx context.Context, f core.TransactionFilter, scope core.Scope) ([]core.TransactionRow, error) {
	q := `SELECT t.tx_uuid, date(t.date), a.name, t.category, t.description, t.type, t.amount
	      FROM transactions t
	      LEFT JOIN accounts a ON t.account_id = a.id`

	var clauses []string
	var args []any

	if f.Month != "" {
		ord, ok := core.MonthOrdinal(f.Month)
		if !ok {
			return nil, fmt.Errorf("fetch transactions: %w: unknown month %q", core.ErrValidation, f.Month)
		}
		clauses = append(clauses, "strftime('%m', t.date) = ?")
		args = append(args, ord)
	}
	if !f.From.IsZero() {
		clauses = append(clauses, "date(t.date) >= date(?)")
		args = append(args, formatDate(f.From))
	}
	if !f.To.IsZero() {
		clauses = append(clauses, "date(t.date) <= date(?)")
		args = append(args, formatDate(f.To))
	}
	if len(f.AccountIDs) > 0 {
		clauses = append(clauses, "t.account_id IN ("+placeholders(len(f.AccountIDs))+")")
		for _, id := range f.AccountIDs {
			args = append(args, id)
		}
	}
	if len(f.Types) > 0 {
		clauses = append(clauses, "t.type IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}
	if !scope.Admin {
		clauses = append(clauses, "t.user_id = ?")
		args = append(args, scope.UserID)
	}

	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY date(t.date) DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap("fetch transactions", err)
	}
	defer rows.Close()

	var out []core.TransactionRow
	for rows.Next() {
		var (
			row     core.TransactionRow
			dateStr string
			account sql.NullString
			amount  string
		)
		if err := rows.Scan(&row.ExternalID, &dateStr, &account, &row.Category, &row.Description, &row.Type, &amount); err != nil {
			return nil, wrap("fetch transactions", err)
		}
		if row.Date, err = parseDate(dateStr); err != nil {
			return nil, wrap("fetch transactions", err)
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, wrap("fetch transactions", err)
		}
		row.Account = account.String
		out = append(out, row)
	}
	return out, wrap("fetch transactions", rows.Err())
}

func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n)
	if err != nil {
		return 0, wrap("count transactions", err)
	}
	return n, nil
}

// ListTransactionsWithAccountType is the cross-owner admin report joining
// every transaction with its account's name and type.
func (r *SQLiteRepository) ListTransactionsWithAccountType(ctx context.Context) ([]core.ReportRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date(t.date), a.name, a.type, t.category, t.description, t.type, t.amount
		 FROM transactions t
		 LEFT JOIN accounts a ON t.account_id = a.id
		 ORDER BY date(t.date) DESC`)
	if err != nil {
		return nil, wrap("list transactions with account type", err)
	}
	defer rows.Close()

	var out []core.ReportRow
	for rows.Next() {
		var (
			row      core.ReportRow
			dateStr  string
			account  sql.NullString
			accType  sql.NullString
			amount   string
		)
		if err := rows.Scan(&dateStr, &account, &accType, &row.Category, &row.Description, &row.Type, &amount); err != nil {
			return nil, wrap("list transactions with account type", err)
		}
		if row.Date, err = parseDate(dateStr); err != nil {
			return nil, wrap("list transactions with account type", err)
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, wrap("list transactions with account type", err)
		}
		row.Account = account.String
		row.AccountType = core.AccountType(accType.String)
		out = append(out, row)
	}
	return out, wrap("list transactions with account type", rows.Err())
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
