package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &domain.ErrValidation{Field: "reference", Message: "is required"}, http.StatusBadRequest, "validation_error"},
		{"invalid amount", &domain.ErrInvalidAmount{AmountCents: -5}, http.StatusBadRequest, "invalid_amount"},
		{"self transfer", &domain.ErrSelfTransfer{}, http.StatusBadRequest, "self_transfer"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"unauthorized", &domain.ErrUnauthorized{Message: "not the receiver"}, http.StatusUnauthorized, "unauthorized"},
		{"unverified", &domain.ErrUnverifiedAccount{AccountID: 3}, http.StatusForbidden, "account_not_verified"},
		{"not found", &domain.ErrNotFound{Resource: "account", ID: 9}, http.StatusNotFound, "not_found"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "email_taken"},
		{"terminal state", &domain.ErrTerminalState{RequestID: 9, Status: domain.RequestStatusAccepted}, http.StatusConflict, "terminal_state"},
		{"serialization conflict", &domain.ErrConflict{}, http.StatusConflict, "conflict"},
		{"duplicate key", &domain.ErrDuplicate{Key: "transactions_idempotency_key_key"}, http.StatusConflict, "duplicate"},
		{"insufficient funds", &domain.ErrInsufficientFunds{AvailableCents: 10, RequiredCents: 100}, http.StatusUnprocessableEntity, "insufficient_funds"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body.Error)
		})
	}
}

func TestRespondError_WrappedErrorsStillMap(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.Join(errors.New("context"), &domain.ErrInsufficientFunds{AvailableCents: 1, RequiredCents: 2}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
