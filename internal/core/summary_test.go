package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rowFor(account string, txType TransactionType, amount string) TransactionRow {
	return TransactionRow{Account: account, Type: txType, Amount: dec(amount)}
}

func TestBuildMonthlySummaryDebit(t *testing.T) {
	accounts := []Account{{ID: 1, Name: "Checking", Type: AccountDebit}}
	rows := []TransactionRow{
		rowFor("Checking", TypeIncome, "500"),
		rowFor("Checking", TypeExpense, "200"),
	}
	openings := map[int64]decimal.Decimal{1: dec("1000")}

	s := BuildMonthlySummary("March", accounts, rows, openings)

	if len(s.Debit) != 1 || len(s.Credit) != 0 {
		t.Fatalf("expected 1 debit row, got %d debit / %d credit", len(s.Debit), len(s.Credit))
	}
	if got := s.Debit[0].Remaining; !got.Equal(dec("1300")) {
		t.Fatalf("debit remaining = %s, want 1300", got)
	}
}

func TestBuildMonthlySummaryCreditSignConvention(t *testing.T) {
	// Spending on a credit card raises the outstanding balance, a payment
	// lowers it: 1000 + 800 - 300 = 1500.
	accounts := []Account{{ID: 2, Name: "Visa", Type: AccountCredit}}
	rows := []TransactionRow{
		rowFor("Visa", TypeIncome, "300"),
		rowFor("Visa", TypeExpense, "800"),
	}
	openings := map[int64]decimal.Decimal{2: dec("1000")}

	s := BuildMonthlySummary("March", accounts, rows, openings)

	if len(s.Credit) != 1 {
		t.Fatalf("expected 1 credit row, got %d", len(s.Credit))
	}
	if got := s.Credit[0].Remaining; !got.Equal(dec("1500")) {
		t.Fatalf("credit remaining = %s, want 1500", got)
	}
}

func TestBuildMonthlySummaryTotals(t *testing.T) {
	accounts := []Account{
		{ID: 1, Name: "Checking", Type: AccountDebit},
		{ID: 2, Name: "Visa", Type: AccountCredit},
	}
	rows := []TransactionRow{
		rowFor("Checking", TypeIncome, "500"),
		rowFor("Checking", TypeExpense, "200"),
		rowFor("Visa", TypeExpense, "800"),
		rowFor("Visa", TypeIncome, "300"),
	}
	openings := map[int64]decimal.Decimal{1: dec("1000"), 2: dec("400")}

	s := BuildMonthlySummary("June", accounts, rows, openings)

	if len(s.Totals) != 3 {
		t.Fatalf("expected 3 totals rows, got %d", len(s.Totals))
	}
	all := s.Totals[0]
	if all.Label != TotalsAllAccounts {
		t.Fatalf("first totals row label = %q", all.Label)
	}
	// totalOpening = debit 1000 - credit 400 = 600
	if !all.Opening.Equal(dec("600")) {
		t.Errorf("total opening = %s, want 600", all.Opening)
	}
	if !all.Income.Equal(dec("800")) || !all.Expense.Equal(dec("1000")) {
		t.Errorf("total income/expense = %s/%s, want 800/1000", all.Income, all.Expense)
	}
	// totalRemaining = 600 + 800 - 1000 = 400
	if !all.Remaining.Equal(dec("400")) {
		t.Errorf("total remaining = %s, want 400", all.Remaining)
	}
	if !s.TotalRemaining().Equal(dec("400")) {
		t.Errorf("TotalRemaining() = %s, want 400", s.TotalRemaining())
	}

	debit := s.Totals[1]
	if debit.Label != TotalsDebitSummary || !debit.Remaining.Equal(dec("1300")) {
		t.Errorf("debit summary = %q %s, want %q 1300", debit.Label, debit.Remaining, TotalsDebitSummary)
	}
	credit := s.Totals[2]
	if credit.Label != TotalsCreditSummary || !credit.Remaining.Equal(dec("900")) {
		t.Errorf("credit summary = %q %s, want %q 900", credit.Label, credit.Remaining, TotalsCreditSummary)
	}
}

func TestBuildMonthlySummaryMissingOpeningIsZero(t *testing.T) {
	accounts := []Account{{ID: 7, Name: "Cash", Type: AccountDebit}}
	rows := []TransactionRow{rowFor("Cash", TypeIncome, "50")}

	s := BuildMonthlySummary("May", accounts, rows, nil)

	if got := s.Debit[0].Remaining; !got.Equal(dec("50")) {
		t.Fatalf("remaining = %s, want 50", got)
	}
}

func TestBuildMonthlySummaryNoTransactions(t *testing.T) {
	accounts := []Account{{ID: 1, Name: "Checking", Type: AccountDebit}}
	openings := map[int64]decimal.Decimal{1: dec("250")}

	s := BuildMonthlySummary("May", accounts, nil, openings)

	if got := s.Debit[0].Remaining; !got.Equal(dec("250")) {
		t.Fatalf("remaining = %s, want 250", got)
	}
	if !s.TotalRemaining().Equal(dec("250")) {
		t.Fatalf("total remaining = %s, want 250", s.TotalRemaining())
	}
}

func TestComputeMonthlyMetrics(t *testing.T) {
	rows := []TransactionRow{
		rowFor("A", TypeIncome, "100.50"),
		rowFor("A", TypeExpense, "40.25"),
		rowFor("B", TypeExpense, "10"),
	}

	m := ComputeMonthlyMetrics(rows)

	if !m.Income.Equal(dec("100.50")) {
		t.Errorf("income = %s, want 100.50", m.Income)
	}
	if !m.Expense.Equal(dec("50.25")) {
		t.Errorf("expense = %s, want 50.25", m.Expense)
	}
	if !m.NetFlow.Equal(dec("50.25")) {
		t.Errorf("net flow = %s, want 50.25", m.NetFlow)
	}
	if m.Count != 3 {
		t.Errorf("count = %d, want 3", m.Count)
	}
}

func TestExpensesByCategory(t *testing.T) {
	rows := []TransactionRow{
		{Account: "A", Category: "Food", Type: TypeExpense, Amount: dec("30")},
		{Account: "A", Category: "Bills", Type: TypeExpense, Amount: dec("70")},
		{Account: "A", Category: "Food", Type: TypeExpense, Amount: dec("20")},
		{Account: "A", Category: "Salary", Type: TypeIncome, Amount: dec("900")},
	}

	got := ExpensesByCategory(rows)

	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != "Bills" || !got[0].Amount.Equal(dec("70")) {
		t.Errorf("first = %+v, want Bills 70", got[0])
	}
	if got[1].Category != "Food" || !got[1].Amount.Equal(dec("50")) {
		t.Errorf("second = %+v, want Food 50", got[1])
	}
}
