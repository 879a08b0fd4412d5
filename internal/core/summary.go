package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AccountSummary is one row of the per-account monthly summary table.
type AccountSummary struct {
	Account   string
	Type      AccountType
	Opening   decimal.Decimal
	Income    decimal.Decimal // total incoming (payments, for credit accounts)
	Expense   decimal.Decimal // total spent
	Remaining decimal.Decimal
}

// TotalsRow is one aggregate row of the totals table.
type TotalsRow struct {
	Label     string
	Opening   decimal.Decimal
	Income    decimal.Decimal
	Expense   decimal.Decimal
	Remaining decimal.Decimal
}

// MonthlySummary holds the three report slices for a month: the debit-account
// table, the credit-account table, and the overall totals table.
type MonthlySummary struct {
	Month  string
	Debit  []AccountSummary
	Credit []AccountSummary
	Totals []TotalsRow
}

// MonthlyMetrics are the headline numbers for a month's transaction set.
type MonthlyMetrics struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	NetFlow decimal.Decimal
	Count   int
}

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Labels of the totals table rows, in order.
const (
	TotalsAllAccounts   = "Total (All Accounts)"
	TotalsDebitSummary  = "Debit Summary"
	TotalsCreditSummary = "Credit Summary"
)

// BuildMonthlySummary derives the per-account and aggregate balances for one
// month. rows is the month's materialized transaction set, openings maps
// account id to that month's opening balance (absent means zero).
//
// Debit accounts grow with income and shrink with spending. Credit accounts
// are the other way around: spending raises the outstanding balance and an
// income (a payment towards the card) lowers it.
func BuildMonthlySummary(month string, accounts []Account, rows []TransactionRow, openings map[int64]decimal.Decimal) MonthlySummary {
	s := MonthlySummary{Month: month}

	incomeByAccount := make(map[string]decimal.Decimal)
	expenseByAccount := make(map[string]decimal.Decimal)
	for _, r := range rows {
		switch r.Type {
		case TypeIncome:
			incomeByAccount[r.Account] = incomeByAccount[r.Account].Add(r.Amount)
		case TypeExpense:
			expenseByAccount[r.Account] = expenseByAccount[r.Account].Add(r.Amount)
		}
	}

	var (
		debitOpening  decimal.Decimal
		creditOpening decimal.Decimal
		totalIncome   decimal.Decimal
		totalExpense  decimal.Decimal
	)

	for _, a := range accounts {
		opening := openings[a.ID]
		income := incomeByAccount[a.Name]
		expense := expenseByAccount[a.Name]

		row := AccountSummary{
			Account: a.Name,
			Type:    a.Type,
			Opening: opening,
			Income:  income,
			Expense: expense,
		}
		if a.Type == AccountDebit {
			row.Remaining = opening.Add(income).Sub(expense)
			debitOpening = debitOpening.Add(opening)
			s.Debit = append(s.Debit, row)
		} else {
			row.Remaining = opening.Add(expense).Sub(income)
			creditOpening = creditOpening.Add(opening)
			s.Credit = append(s.Credit, row)
		}
		totalIncome = totalIncome.Add(income)
		totalExpense = totalExpense.Add(expense)
	}

	totalOpening := debitOpening.Sub(creditOpening)
	totalRemaining := totalOpening.Add(totalIncome).Sub(totalExpense)

	s.Totals = []TotalsRow{
		{
			Label:     TotalsAllAccounts,
			Opening:   totalOpening,
			Income:    totalIncome,
			Expense:   totalExpense,
			Remaining: totalRemaining,
		},
		sliceTotals(TotalsDebitSummary, s.Debit),
		sliceTotals(TotalsCreditSummary, s.Credit),
	}
	return s
}

func sliceTotals(label string, rows []AccountSummary) TotalsRow {
	t := TotalsRow{Label: label}
	for _, r := range rows {
		t.Opening = t.Opening.Add(r.Opening)
		t.Income = t.Income.Add(r.Income)
		t.Expense = t.Expense.Add(r.Expense)
		t.Remaining = t.Remaining.Add(r.Remaining)
	}
	return t
}

// TotalRemaining is the headline available balance for the month.
func (s MonthlySummary) TotalRemaining() decimal.Decimal {
	for _, t := range s.Totals {
		if t.Label == TotalsAllAccounts {
			return t.Remaining
		}
	}
	return decimal.Zero
}

// ComputeMonthlyMetrics sums the month's income, expense and net flow.
func ComputeMonthlyMetrics(rows []TransactionRow) MonthlyMetrics {
	var m MonthlyMetrics
	for _, r := range rows {
		switch r.Type {
		case TypeIncome:
			m.Income = m.Income.Add(r.Amount)
		case TypeExpense:
			m.Expense = m.Expense.Add(r.Amount)
		}
	}
	m.NetFlow = m.Income.Sub(m.Expense)
	m.Count = len(rows)
	return m
}

// ExpensesByCategory groups expense amounts by category, sorted by name so
// the output is stable for rendering and export.
func ExpensesByCategory(rows []TransactionRow) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		if r.Type == TypeExpense {
			sums[r.Category] = sums[r.Category].Add(r.Amount)
		}
	}
	out := make([]CategoryAmount, 0, len(sums))
	for cat, amount := range sums {
		out = append(out, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
