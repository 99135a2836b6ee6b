package http

import (
	"net/http"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/service"

	"github.com/prometheus/client_golang/prometheus"
)

type TransactionHandler struct {
	transferSvc service.TransferService
	depositSvc  service.DepositService
}

func NewTransactionHandler(transferSvc service.TransferService, depositSvc service.DepositService) *TransactionHandler {
	return &TransactionHandler{
		transferSvc: transferSvc,
		depositSvc:  depositSvc,
	}
}

type transferRequest struct {
	ReceiverID  int64  `json:"receiver_id"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"transaction_type"`
	Reference   string `json:"reference"`
}

// Transfer moves money from the caller to the receiver. An optional
// Idempotency-Key header makes a retried call return the original result.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(transferDuration)
	defer timer.ObserveDuration()

	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	txnType := domain.TransactionType(req.Type)
	if txnType == "" {
		txnType = domain.TransactionTypeTransfer
	}

	txn, err := h.transferSvc.Transfer(r.Context(), service.TransferInput{
		SenderID:       callerID(r),
		ReceiverID:     req.ReceiverID,
		AmountCents:    req.AmountCents,
		Type:           txnType,
		Reference:      req.Reference,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	transfersTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"transaction": txn})
}

type depositRequest struct {
	AmountCents   int64  `json:"amount_cents"`
	Source        string `json:"source"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	CardNumber    string `json:"card_number"`
	ChequeNumber  string `json:"cheque_number"`
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	record, newBalance, err := h.depositSvc.Deposit(r.Context(), service.DepositInput{
		AccountID:      callerID(r),
		AmountCents:    req.AmountCents,
		Source:         req.Source,
		AccountNumber:  req.AccountNumber,
		IFSCCode:       req.IFSCCode,
		CardNumber:     req.CardNumber,
		ChequeNumber:   req.ChequeNumber,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	depositsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"deposit":       record,
		"balance_cents": newBalance,
	})
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.transferSvc.ListTransactions(r.Context(), callerID(r), directionFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}

func (h *TransactionHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.depositSvc.ListDeposits(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deposits": deposits})
}

// directionFrom reads the direction query parameter, defaulting to both.
func directionFrom(r *http.Request) domain.ListDirection {
	switch domain.ListDirection(r.URL.Query().Get("direction")) {
	case domain.DirectionSent:
		return domain.DirectionSent
	case domain.DirectionReceived:
		return domain.DirectionReceived
	default:
		return domain.DirectionBoth
	}
}
