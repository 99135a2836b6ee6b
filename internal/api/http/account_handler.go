package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/service"
	"swiftpay-backend/internal/storage"

	"github.com/gorilla/mux"
)

type AccountHandler struct {
	accountSvc  service.AccountService
	files       storage.FileStore
	maxFileSize int64
}

func NewAccountHandler(accountSvc service.AccountService, files storage.FileStore, maxFileSize int64) *AccountHandler {
	return &AccountHandler{
		accountSvc:  accountSvc,
		files:       files,
		maxFileSize: maxFileSize,
	}
}

type accountResponse struct {
	Account  *domain.Account        `json:"account"`
	Deposits []domain.DepositRecord `json:"deposits"`
}

func (h *AccountHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	account, deposits, err := h.accountSvc.GetAccount(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accountResponse{Account: account, Deposits: deposits})
}

func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: "invalid account id"})
		return
	}

	account, deposits, err := h.accountSvc.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accountResponse{Account: account, Deposits: deposits})
}

// ListOthers powers the contact picker: everyone except the caller.
func (h *AccountHandler) ListOthers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountSvc.ListOthers(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

type setVerifiedRequest struct {
	Verified bool `json:"verified"`
}

func (h *AccountHandler) SetVerified(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: "invalid account id"})
		return
	}

	var req setVerifiedRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountSvc.SetVerified(r.Context(), id, req.Verified)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"account": account})
}

type verifyReceiverRequest struct {
	ReceiverID int64 `json:"receiver_id"`
}

func (h *AccountHandler) VerifyReceiver(w http.ResponseWriter, r *http.Request) {
	var req verifyReceiverRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountSvc.VerifyReceiver(r.Context(), req.ReceiverID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"account": account})
}

// UploadImage accepts a multipart profile image, stores it under the caller's
// account id and records the resulting URL on the account.
func (h *AccountHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		respondJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file_too_large", Message: "image exceeds the size limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: "unsupported image type"})
		return
	}

	id := callerID(r)
	key := "accounts/" + strconv.FormatInt(id, 10) + ext
	if err := h.files.Save(r.Context(), key, io.LimitReader(file, h.maxFileSize)); err != nil {
		respondError(w, err)
		return
	}

	if err := h.accountSvc.SetImageURL(r.Context(), id, key); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"image_url": key})
}

// GetImage streams the caller's stored profile image.
func (h *AccountHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	key, err := h.accountSvc.GetImageURL(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	file, err := h.files.Open(r.Context(), key)
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "image not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
