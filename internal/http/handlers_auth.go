package http

import (
	"net/http"

	"moneymagic/internal/services"
)

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	NewPassword *string `json:"new_password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword, req.DisplayName, req.Email)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	token, err := GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		Token: token,
		User: userResponse{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			IsAdmin:     user.IsAdmin,
		},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	token, err := GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token: token,
		User: userResponse{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			IsAdmin:     user.IsAdmin,
		},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, userResponse{
		ID:          session.UserID,
		Username:    session.Username,
		DisplayName: session.DisplayName,
		Email:       session.Email,
		IsAdmin:     session.IsAdmin,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	patch := services.ProfilePatch{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		NewPassword: req.NewPassword,
	}
	if err := s.auth.UpdateProfile(r.Context(), session, patch); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
