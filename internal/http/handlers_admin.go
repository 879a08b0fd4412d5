package http

import (
	"net/http"

	"moneymagic/internal/core"
)

type adminStatsResponse struct {
	TotalUsers        int64          `json:"total_users"`
	TotalTransactions int64          `json:"total_transactions"`
	RecentUsers       []userResponse `json:"recent_users"`
}

type reportRowResponse struct {
	Date        string `json:"date"`
	Account     string `json:"account"`
	AccountType string `json:"account_type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	stats, err := s.admin.Stats(r.Context(), session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	recent := make([]userResponse, 0, len(stats.RecentUsers))
	for _, u := range stats.RecentUsers {
		recent = append(recent, userResponse{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			IsAdmin:     u.IsAdmin,
		})
	}

	writeJSON(w, http.StatusOK, adminStatsResponse{
		TotalUsers:        stats.TotalUsers,
		TotalTransactions: stats.TotalTransactions,
		RecentUsers:       recent,
	})
}

func (s *Server) handleAdminTransactions(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	rows, err := s.admin.Report(r.Context(), session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	out := make([]reportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReportRowResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func toReportRowResponse(row core.ReportRow) reportRowResponse {
	return reportRowResponse{
		Date:        row.Date.Format(dateLayout),
		Account:     row.Account,
		AccountType: string(row.AccountType),
		Category:    row.Category,
		Description: row.Description,
		Type:        string(row.Type),
		Amount:      row.Amount.String(),
	}
}
