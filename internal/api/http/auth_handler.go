package http

import (
	"net/http"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	PhoneNumber         string `json:"phone_number"`
	Password            string `json:"password"`
	Address             string `json:"address"`
	IdentificationType  string `json:"identification_type"`
	InitialBalanceCents int64  `json:"balance_cents"`
}

type authResponse struct {
	Account      *domain.Account `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, access, refresh, err := h.authSvc.Register(r.Context(), service.RegisterParams{
		Name:                req.Name,
		Email:               req.Email,
		PhoneNumber:         req.PhoneNumber,
		Password:            req.Password,
		Address:             req.Address,
		IdentificationType:  req.IdentificationType,
		InitialBalanceCents: req.InitialBalanceCents,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Account: account, AccessToken: access, RefreshToken: refresh})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, access, refresh, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Account: account, AccessToken: access, RefreshToken: refresh})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	access, refresh, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, refreshResponse{AccessToken: access, RefreshToken: refresh})
}
