package http

import (
	"net/http"
	"strconv"
)

type setOpeningRequest struct {
	Month     string `json:"month"`
	AccountID int64  `json:"account_id"`
	Opening   string `json:"opening"`
}

type openingResponse struct {
	Month     string `json:"month"`
	AccountID int64  `json:"account_id"`
	Opening   string `json:"opening"`
}

func (s *Server) handleGetOpening(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	month := r.URL.Query().Get("month")
	accountID, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil || accountID <= 0 {
		badRequest(w, "invalid account_id query parameter")
		return
	}

	opening, err := s.balances.GetOpening(r.Context(), month, accountID, session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, openingResponse{
		Month:     month,
		AccountID: accountID,
		Opening:   opening.String(),
	})
}

func (s *Server) handleSetOpening(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	var req setOpeningRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	opening, err := parseAmount(req.Opening)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.balances.SetOpening(r.Context(), req.Month, req.AccountID, opening, session.UserID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
