package http

import (
	"fmt"
	"net/http"

	"moneymagic/internal/core"
	"moneymagic/internal/export"
)

type summaryRowResponse struct {
	Account   string `json:"account"`
	Type      string `json:"type"`
	Opening   string `json:"opening"`
	Income    string `json:"income"`
	Expense   string `json:"expense"`
	Remaining string `json:"remaining"`
}

type totalsRowResponse struct {
	Label     string `json:"label"`
	Opening   string `json:"opening"`
	Income    string `json:"income"`
	Expense   string `json:"expense"`
	Remaining string `json:"remaining"`
}

type categoryResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type summaryResponse struct {
	Month      string               `json:"month"`
	Debit      []summaryRowResponse `json:"debit"`
	Credit     []summaryRowResponse `json:"credit"`
	Totals     []totalsRowResponse  `json:"totals"`
	Income     string               `json:"income"`
	Expense    string               `json:"expense"`
	NetFlow    string               `json:"net_flow"`
	Count      int                  `json:"transaction_count"`
	ByCategory []categoryResponse   `json:"expenses_by_category"`
}

func toSummaryRows(rows []core.AccountSummary) []summaryRowResponse {
	out := make([]summaryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, summaryRowResponse{
			Account:   r.Account,
			Type:      string(r.Type),
			Opening:   r.Opening.String(),
			Income:    r.Income.String(),
			Expense:   r.Expense.String(),
			Remaining: r.Remaining.String(),
		})
	}
	return out
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	month := r.URL.Query().Get("month")
	report, err := s.summary.Monthly(r.Context(), month, session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	totals := make([]totalsRowResponse, 0, len(report.Summary.Totals))
	for _, t := range report.Summary.Totals {
		totals = append(totals, totalsRowResponse{
			Label:     t.Label,
			Opening:   t.Opening.String(),
			Income:    t.Income.String(),
			Expense:   t.Expense.String(),
			Remaining: t.Remaining.String(),
		})
	}

	cats := make([]categoryResponse, 0, len(report.ByCategory))
	for _, c := range report.ByCategory {
		cats = append(cats, categoryResponse{Category: c.Category, Amount: c.Amount.String()})
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Month:      report.Summary.Month,
		Debit:      toSummaryRows(report.Summary.Debit),
		Credit:     toSummaryRows(report.Summary.Credit),
		Totals:     totals,
		Income:     report.Metrics.Income.String(),
		Expense:    report.Metrics.Expense.String(),
		NetFlow:    report.Metrics.NetFlow.String(),
		Count:      report.Metrics.Count,
		ByCategory: cats,
	})
}

func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rows, err := s.ledger.Fetch(r.Context(), filter, session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := export.Transactions(w, rows); err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	month := r.URL.Query().Get("month")
	report, err := s.summary.Monthly(r.Context(), month, session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "summary-"+month+".csv"))
	if err := export.Summary(w, report.Summary); err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}
