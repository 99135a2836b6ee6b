package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError translates a service error into an HTTP status and a stable
// error code the client can branch on.
func respondError(w http.ResponseWriter, err error) {
	var (
		notFound     *domain.ErrNotFound
		validation   *domain.ErrValidation
		unverified   *domain.ErrUnverifiedAccount
		badAmount    *domain.ErrInvalidAmount
		selfTransfer *domain.ErrSelfTransfer
		insufficient *domain.ErrInsufficientFunds
		conflict     *domain.ErrConflict
		terminal     *domain.ErrTerminalState
		duplicate    *domain.ErrDuplicate
		unauthorized *domain.ErrUnauthorized
	)

	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: err.Error()})
	case errors.As(err, &badAmount):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_amount", Message: err.Error()})
	case errors.As(err, &selfTransfer):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "self_transfer", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid_credentials", Message: err.Error()})
	case errors.As(err, &unauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()})
	case errors.As(err, &unverified):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "account_not_verified", Message: err.Error()})
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "email_taken", Message: err.Error()})
	case errors.As(err, &terminal):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "terminal_state", Message: err.Error()})
	case errors.As(err, &conflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()})
	case errors.As(err, &duplicate):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "duplicate", Message: err.Error()})
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "insufficient_funds", Message: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "an internal error occurred"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body", Message: "request body must be valid JSON"})
		return false
	}
	return true
}
