package http

import (
	"net/http"

	"moneymagic/internal/core"
)

type accountRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

type accountPatchRequest struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Notes *string `json:"notes"`
}

type accountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, Type: string(a.Type), Notes: a.Notes}
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	accounts, err := s.accounts.List(r.Context(), session.Scope())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddAccount(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	account, err := s.accounts.Add(r.Context(), req.Name, core.AccountType(req.Type), req.Notes, session.UserID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	writeJSON(w, http.StatusCreated, toAccountResponse(*account))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req accountPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	patch := core.AccountPatch{Name: req.Name, Notes: req.Notes}
	if req.Type != nil {
		t := core.AccountType(*req.Type)
		patch.Type = &t
	}

	if err := s.accounts.Update(r.Context(), id, patch, session.Scope()); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.accounts.Delete(r.Context(), id, session.Scope()); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	s.summary.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
