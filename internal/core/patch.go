package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Patch types carry partial updates as explicit optional fields. Column names
// never come from caller input; only set fields reach the generated statement.

type AccountPatch struct {
	Name  *string
	Type  *AccountType
	Notes *string
}

func (p AccountPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Notes == nil
}

func (p AccountPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: account name cannot be empty", ErrValidation)
	}
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: account type must be %s or %s", ErrValidation, AccountDebit, AccountCredit)
	}
	return nil
}

type TransactionPatch struct {
	Date        *time.Time
	AccountID   *int64
	Category    *string
	Description *string
	Type        *TransactionType
	Amount      *decimal.Decimal
}

func (p TransactionPatch) Empty() bool {
	return p.Date == nil && p.AccountID == nil && p.Category == nil &&
		p.Description == nil && p.Type == nil && p.Amount == nil
}

func (p TransactionPatch) Validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: transaction type must be %s or %s", ErrValidation, TypeExpense, TypeIncome)
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	return nil
}

type UserPatch struct {
	DisplayName  *string
	Email        *string
	PasswordHash *string
}

func (p UserPatch) Empty() bool {
	return p.DisplayName == nil && p.Email == nil && p.PasswordHash == nil
}

// TransactionFilter selects ledger rows. Every field is optional and the set
// fields combine with AND. A nil or empty AccountIDs/Types slice means no
// restriction on that dimension.
type TransactionFilter struct {
	Month      string // month name; matches the month component of the date, any year
	From       time.Time
	To         time.Time
	AccountIDs []int64
	Types      []TransactionType
}

func (f TransactionFilter) Validate() error {
	if f.Month != "" {
		if _, ok := MonthOrdinal(f.Month); !ok {
			return fmt.Errorf("%w: unknown month %q", ErrValidation, f.Month)
		}
	}
	for _, t := range f.Types {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t)
		}
	}
	return nil
}
