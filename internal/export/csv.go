// Package export serializes ledger listings and monthly summaries to CSV
// with a stable column order.
package export

import (
	"encoding/csv"
	"io"

	"moneymagic/internal/core"
)

// TransactionHeader is the column order of the filtered-transactions export.
var TransactionHeader = []string{
	"Transaction_ID", "Date", "Account", "Category", "Description", "Type", "Amount",
}

// SummaryHeader is the column order of the monthly-summary export.
var SummaryHeader = []string{
	"Account", "Type", "Opening Balance", "Total Incoming (Payments)", "Total Spent", "Remaining Balance",
}

// Transactions writes the filtered ledger listing as CSV.
func Transactions(w io.Writer, rows []core.TransactionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TransactionHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ExternalID,
			r.Date.Format("2006-01-02"),
			r.Account,
			r.Category,
			r.Description,
			string(r.Type),
			r.Amount.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary writes the per-account summary tables as CSV, debit accounts first,
// then credit accounts, then the totals rows.
func Summary(w io.Writer, s core.MonthlySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, rows := range [][]core.AccountSummary{s.Debit, s.Credit} {
		for _, r := range rows {
			record := []string{
				r.Account,
				string(r.Type),
				r.Opening.String(),
				r.Income.String(),
				r.Expense.String(),
				r.Remaining.String(),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	for _, tr := range s.Totals {
		record := []string{
			tr.Label,
			"",
			tr.Opening.String(),
			tr.Income.String(),
			tr.Expense.String(),
			tr.Remaining.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
