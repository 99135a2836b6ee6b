package http

import (
	"net/http"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/service"
)

type RequestHandler struct {
	requestSvc service.RequestService
}

func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

type createRequestRequest struct {
	ReceiverID  int64  `json:"receiver_id"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.requestSvc.CreateRequest(r.Context(), callerID(r), req.ReceiverID, req.AmountCents, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"request": created})
}

type updateStatusRequest struct {
	RequestID int64  `json:"request_id"`
	Status    string `json:"status"`
	Type      string `json:"transaction_type"`
	Reference string `json:"reference"`
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := domain.RequestStatus(req.Status)
	txn, updated, err := h.requestSvc.UpdateStatus(r.Context(), service.StatusUpdateInput{
		CallerID:       callerID(r),
		RequestID:      req.RequestID,
		Status:         status,
		Type:           domain.TransactionType(req.Type),
		Reference:      req.Reference,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	requestTransitionsTotal.WithLabelValues(string(status), outcomeLabel(err)).Inc()
	if err != nil {
		respondError(w, err)
		return
	}

	resp := map[string]any{"request": updated}
	if txn != nil {
		resp["transaction"] = txn
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestSvc.ListRequests(r.Context(), callerID(r), directionFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"requests": requests})
}
