package http

import (
	"net/http"

	"moneymagic/internal/core"
)

type transactionRequest struct {
	Date        string `json:"date"`
	AccountID   *int64 `json:"account_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
}

type transactionPatchRequest struct {
	Date        *string `json:"date"`
	AccountID   *int64  `json:"account_id"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Amount      *string `json:"amount"`
}

type transactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Date          string `json:"date"`
	Account       string `json:"account"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
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

	out := make([]transactionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, transactionResponse{
			TransactionID: row.ExternalID,
			Date:          row.Date.Format(dateLayout),
			Account:       row.Account,
			Category:      row.Category,
			Description:   row.Description,
			Type:          string(row.Type),
			Amount:        row.Amount.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	externalID, err := s.ledger.Add(r.Context(), date, req.AccountID, req.Category, req.Description, core.TransactionType(req.Type), amount, session.UserID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	writeJSON(w, http.StatusCreated, map[string]string{"transaction_id": externalID})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	externalID := r.PathValue("id")
	if externalID == "" {
		badRequest(w, "missing transaction id in path")
		return
	}

	var req transactionPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	patch := core.TransactionPatch{
		AccountID:   req.AccountID,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		patch.Date = &date
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		patch.Type = &t
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		patch.Amount = &amount
	}

	if err := s.ledger.Update(r.Context(), externalID, patch, session.Scope()); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	externalID := r.PathValue("id")
	if externalID == "" {
		badRequest(w, "missing transaction id in path")
		return
	}

	if err := s.ledger.Delete(r.Context(), externalID, session.Scope()); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
