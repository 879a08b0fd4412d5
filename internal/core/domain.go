package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountDebit  AccountType = "Debit"
	AccountCredit AccountType = "Credit"
)

const (
	TypeExpense TransactionType = "Expense"
	TypeIncome  TransactionType = "Income"
)

type (
	AccountType     string
	TransactionType string

	// User is a registered owner. The first registered user becomes admin.
	User struct {
		ID           int64
		Username     string
		PasswordHash string
		DisplayName  string
		Email        string
		IsAdmin      bool
		CreatedAt    time.Time
	}

	// Session is the request-scoped authenticated user passed into every
	// service call. There is no ambient auth state.
	Session struct {
		UserID      int64
		Username    string
		DisplayName string
		Email       string
		IsAdmin     bool
	}

	// Scope restricts reads and writes to an owner unless the caller is admin.
	Scope struct {
		UserID int64
		Admin  bool
	}

	Account struct {
		ID     int64
		Name   string
		Type   AccountType
		Notes  string
		UserID int64
	}

	Transaction struct {
		ID          int64
		ExternalID  string // stable UUID used for update/delete
		Date        time.Time
		AccountID   *int64
		Category    string
		Description string
		Type        TransactionType
		Amount      decimal.Decimal
		UserID      int64
		CreatedAt   time.Time
	}

	Balance struct {
		ID        int64
		Month     string // month name, e.g. "January"
		AccountID int64
		Opening   decimal.Decimal
		UserID    int64
	}

	// TransactionRow is one row of the filtered ledger listing, joined with
	// the account name. Account is empty when the account row is missing.
	TransactionRow struct {
		ExternalID  string
		Date        time.Time
		Account     string
		Category    string
		Description string
		Type        TransactionType
		Amount      decimal.Decimal
	}

	// ReportRow is one row of the cross-owner "all transactions with account
	// type" report available to admins.
	ReportRow struct {
		Date        time.Time
		Account     string
		AccountType AccountType
		Category    string
		Description string
		Type        TransactionType
		Amount      decimal.Decimal
	}
)

// MonthNames in calendar order; name at index i has ordinal i+1.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthOrdinal maps a month name to its two-digit ordinal ("January" -> "01").
func MonthOrdinal(name string) (string, bool) {
	for i, m := range MonthNames {
		if m == name {
			return fmt.Sprintf("%02d", i+1), true
		}
	}
	return "", false
}

func (t AccountType) Valid() bool {
	return t == AccountDebit || t == AccountCredit
}

func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

func (s Scope) Owns(userID int64) bool {
	return s.Admin || s.UserID == userID
}

func (u *User) Session() Session {
	return Session{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
	}
}

func (s Session) Scope() Scope {
	return Scope{UserID: s.UserID, Admin: s.IsAdmin}
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: account type must be %s or %s", ErrValidation, AccountDebit, AccountCredit)
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: transaction type must be %s or %s", ErrValidation, TypeExpense, TypeIncome)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	return nil
}
