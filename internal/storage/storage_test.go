package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"moneymagic/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustUser(t *testing.T, repo *SQLiteRepository, username string) *core.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), username, "hash", "", "")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mustAccount(t *testing.T, repo *SQLiteRepository, name string, atype core.AccountType, userID int64) *core.Account {
	t.Helper()
	a, err := repo.CreateAccount(context.Background(), core.Account{Name: name, Type: atype, UserID: userID})
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return a
}

func mustTx(t *testing.T, repo *SQLiteRepository, date string, accountID *int64, txType core.TransactionType, amount string, userID int64) string {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.NewString()
	err = repo.CreateTransaction(context.Background(), core.Transaction{
		ExternalID: id,
		Date:       d,
		AccountID:  accountID,
		Type:       txType,
		Amount:     dec(t, amount),
		UserID:     userID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return id
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFirstUserIsAdmin(t *testing.T) {
	repo := newTestRepo(t)

	first := mustUser(t, repo, "alice")
	second := mustUser(t, repo, "bob")

	if !first.IsAdmin {
		t.Error("first registered user should be admin")
	}
	if second.IsAdmin {
		t.Error("second registered user should not be admin")
	}
}

func TestDuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	mustUser(t, repo, "alice")

	_, err := repo.CreateUser(context.Background(), "alice", "hash", "", "")
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestDuplicateAccountNamePerOwner(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	bob := mustUser(t, repo, "bob")
	mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)

	_, err := repo.CreateAccount(context.Background(), core.Account{Name: "Checking", Type: core.AccountDebit, UserID: alice.ID})
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	// Same name under a different owner is fine.
	if _, err := repo.CreateAccount(context.Background(), core.Account{Name: "Checking", Type: core.AccountDebit, UserID: bob.ID}); err != nil {
		t.Fatalf("same name for another owner should succeed, got %v", err)
	}
}

func TestListAccountsScoping(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	bob := mustUser(t, repo, "bob")
	mustAccount(t, repo, "Zeta", core.AccountDebit, alice.ID)
	mustAccount(t, repo, "Alpha", core.AccountCredit, alice.ID)
	mustAccount(t, repo, "Bob Cash", core.AccountDebit, bob.ID)

	own, err := repo.ListAccounts(context.Background(), core.Scope{UserID: alice.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 2 {
		t.Fatalf("expected 2 accounts for alice, got %d", len(own))
	}
	if own[0].Name != "Alpha" || own[1].Name != "Zeta" {
		t.Errorf("accounts not ordered by name: %v, %v", own[0].Name, own[1].Name)
	}

	all, err := repo.ListAccounts(context.Background(), core.Scope{UserID: alice.ID, Admin: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("admin should see all 3 accounts, got %d", len(all))
	}
}

func TestUpdateAccountScoping(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	bob := mustUser(t, repo, "bob")
	acc := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)

	name := "Renamed"
	// Bob cannot rename Alice's account.
	if err := repo.UpdateAccount(context.Background(), acc.ID, core.AccountPatch{Name: &name}, core.Scope{UserID: bob.ID}); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetAccount(context.Background(), acc.ID, core.Scope{UserID: alice.ID})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Checking" {
		t.Errorf("cross-user update must not apply, name = %q", got.Name)
	}

	// The owner can.
	if err := repo.UpdateAccount(context.Background(), acc.ID, core.AccountPatch{Name: &name}, core.Scope{UserID: alice.ID}); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.GetAccount(context.Background(), acc.ID, core.Scope{UserID: alice.ID})
	if got.Name != "Renamed" {
		t.Errorf("owner update should apply, name = %q", got.Name)
	}
}

func TestOpeningBalanceDefaultsToZero(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	acc := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)

	got, err := repo.GetOpening(context.Background(), "January", acc.ID, core.Scope{UserID: alice.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Fatalf("missing opening should read as zero, got %s", got)
	}
}

func TestSetOpeningRoundTripAndOverwrite(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	acc := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)
	ctx := context.Background()
	scope := core.Scope{UserID: alice.ID}

	if err := repo.SetOpening(ctx, "March", acc.ID, dec(t, "1000.50"), alice.ID); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetOpening(ctx, "March", acc.ID, scope)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec(t, "1000.50")) {
		t.Fatalf("round trip = %s, want 1000.50", got)
	}

	// Second set overwrites, never duplicates.
	if err := repo.SetOpening(ctx, "March", acc.ID, dec(t, "2000"), alice.ID); err != nil {
		t.Fatal(err)
	}
	got, err = repo.GetOpening(ctx, "March", acc.ID, scope)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec(t, "2000")) {
		t.Fatalf("overwrite = %s, want 2000", got)
	}
}

func TestGetOpeningAdminLastWriteWins(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	bob := mustUser(t, repo, "bob")
	acc := mustAccount(t, repo, "Shared", core.AccountDebit, alice.ID)
	ctx := context.Background()

	if err := repo.SetOpening(ctx, "March", acc.ID, dec(t, "100"), alice.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetOpening(ctx, "March", acc.ID, dec(t, "300"), bob.ID); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetOpening(ctx, "March", acc.ID, core.Scope{UserID: alice.ID, Admin: true})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec(t, "300")) {
		t.Fatalf("admin read = %s, want most recent 300", got)
	}

	// Non-admin still sees its own row only.
	got, err = repo.GetOpening(ctx, "March", acc.ID, core.Scope{UserID: alice.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec(t, "100")) {
		t.Fatalf("owner read = %s, want 100", got)
	}
}

func TestFetchTransactionsFilters(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	bob := mustUser(t, repo, "bob")
	checking := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)
	visa := mustAccount(t, repo, "Visa", core.AccountCredit, alice.ID)
	ctx := context.Background()
	scope := core.Scope{UserID: alice.ID}

	mustTx(t, repo, "2024-03-05", &checking.ID, core.TypeExpense, "50", alice.ID)
	mustTx(t, repo, "2025-03-20", &checking.ID, core.TypeIncome, "900", alice.ID)
	mustTx(t, repo, "2025-04-02", &visa.ID, core.TypeExpense, "75", alice.ID)
	mustTx(t, repo, "2025-03-11", &visa.ID, core.TypeExpense, "20", bob.ID)

	t.Run("month filter matches month component regardless of year", func(t *testing.T) {
		rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{Month: "March"}, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 March rows for alice, got %d", len(rows))
		}
		for _, r := range rows {
			if r.Date.Month() != time.March {
				t.Errorf("row dated %s leaked through March filter", r.Date)
			}
		}
	})

	t.Run("ordered by date descending", func(t *testing.T) {
		rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{}, scope)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(rows); i++ {
			if rows[i].Date.After(rows[i-1].Date) {
				t.Fatalf("rows not in descending date order: %s before %s", rows[i-1].Date, rows[i].Date)
			}
		}
	})

	t.Run("empty account filter equals no filter", func(t *testing.T) {
		all, err := repo.FetchTransactions(ctx, core.TransactionFilter{}, scope)
		if err != nil {
			t.Fatal(err)
		}
		empty, err := repo.FetchTransactions(ctx, core.TransactionFilter{AccountIDs: []int64{}}, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != len(empty) {
			t.Fatalf("empty slice should behave like nil: %d vs %d rows", len(all), len(empty))
		}
	})

	t.Run("account and type filters", func(t *testing.T) {
		rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{
			AccountIDs: []int64{visa.ID},
			Types:      []core.TransactionType{core.TypeExpense},
		}, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].Account != "Visa" {
			t.Fatalf("expected 1 Visa expense, got %+v", rows)
		}
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		from, _ := time.Parse("2006-01-02", "2025-03-20")
		to, _ := time.Parse("2006-01-02", "2025-04-02")
		rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{From: from, To: to}, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows in inclusive range, got %d", len(rows))
		}
	})

	t.Run("non-admin never sees other owners", func(t *testing.T) {
		rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{}, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 3 {
			t.Fatalf("alice should see 3 rows, got %d", len(rows))
		}
	})

	t.Run("admin sees all owners", func(t *testing.T) {
		rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{}, core.Scope{UserID: alice.ID, Admin: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 4 {
			t.Fatalf("admin should see 4 rows, got %d", len(rows))
		}
	})
}

func TestUpdateAndDeleteTransactionByExternalID(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	acc := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)
	ctx := context.Background()
	scope := core.Scope{UserID: alice.ID}

	id := mustTx(t, repo, "2025-03-05", &acc.ID, core.TypeExpense, "50", alice.ID)

	amount := dec(t, "75.25")
	category := "Bills"
	if err := repo.UpdateTransactionByExternalID(ctx, id, core.TransactionPatch{Amount: &amount, Category: &category}, scope); err != nil {
		t.Fatal(err)
	}

	rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{}, scope)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].Amount.Equal(amount) || rows[0].Category != "Bills" {
		t.Errorf("patch not applied: %+v", rows[0])
	}

	if err := repo.DeleteTransactionByExternalID(ctx, id, scope); err != nil {
		t.Fatal(err)
	}
	rows, err = repo.FetchTransactions(ctx, core.TransactionFilter{}, scope)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows after delete, got %d", len(rows))
	}
	if err := repo.DeleteTransactionByExternalID(ctx, id, scope); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestTransactionMutationIsOwnerScoped(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	bob := mustUser(t, repo, "bob")
	acc := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)
	ctx := context.Background()

	id := mustTx(t, repo, "2025-03-05", &acc.ID, core.TypeExpense, "50", alice.ID)

	// Bob can neither patch nor delete Alice's transaction.
	amount := dec(t, "1")
	if err := repo.UpdateTransactionByExternalID(ctx, id, core.TransactionPatch{Amount: &amount}, core.Scope{UserID: bob.ID}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cross-user update: got %v, want ErrNotFound", err)
	}
	if err := repo.DeleteTransactionByExternalID(ctx, id, core.Scope{UserID: bob.ID}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cross-user delete: got %v, want ErrNotFound", err)
	}

	rows, err := repo.FetchTransactions(ctx, core.TransactionFilter{}, core.Scope{UserID: alice.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || !rows[0].Amount.Equal(dec(t, "50")) {
		t.Fatalf("cross-user mutation must not apply, got %+v", rows)
	}

	// An admin can.
	if err := repo.DeleteTransactionByExternalID(ctx, id, core.Scope{UserID: bob.ID, Admin: true}); err != nil {
		t.Fatal(err)
	}
	rows, _ = repo.FetchTransactions(ctx, core.TransactionFilter{}, core.Scope{UserID: alice.ID})
	if len(rows) != 0 {
		t.Fatalf("admin delete should apply, got %d rows", len(rows))
	}
}

func TestRecentUsersAndCounts(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	mustUser(t, repo, "bob")
	acc := mustAccount(t, repo, "Checking", core.AccountDebit, alice.ID)
	mustTx(t, repo, "2025-01-01", &acc.ID, core.TypeExpense, "5", alice.ID)

	users, err := repo.CountUsers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if users != 2 {
		t.Errorf("user count = %d, want 2", users)
	}

	txs, err := repo.CountTransactions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if txs != 1 {
		t.Errorf("transaction count = %d, want 1", txs)
	}

	recent, err := repo.RecentUsers(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Errorf("recent users = %d, want 2", len(recent))
	}
}

func TestReportRowsIncludeAccountType(t *testing.T) {
	repo := newTestRepo(t)
	alice := mustUser(t, repo, "alice")
	visa := mustAccount(t, repo, "Visa", core.AccountCredit, alice.ID)
	mustTx(t, repo, "2025-02-14", &visa.ID, core.TypeExpense, "42", alice.ID)

	rows, err := repo.ListTransactionsWithAccountType(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 report row, got %d", len(rows))
	}
	if rows[0].Account != "Visa" || rows[0].AccountType != core.AccountCredit {
		t.Errorf("report row = %+v, want Visa/Credit", rows[0])
	}
}
