package http

import (
	"database/sql"
	"net/http"

	"swiftpay-backend/internal/security"
	"swiftpay-backend/internal/service"
	"swiftpay-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	AuthSvc     service.AuthService
	AccountSvc  service.AccountService
	TransferSvc service.TransferService
	DepositSvc  service.DepositService
	RequestSvc  service.RequestService
	Tokens      security.TokenManager
	Files       storage.FileStore
	MaxFileSize int64
	DB          *sql.DB
}

// NewRouter wires every HTTP endpoint. Everything under /api except
// registration, login and refresh requires a valid access token.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.AuthSvc)
	accountHandler := NewAccountHandler(deps.AccountSvc, deps.Files, deps.MaxFileSize)
	txnHandler := NewTransactionHandler(deps.TransferSvc, deps.DepositSvc)
	requestHandler := NewRequestHandler(deps.RequestSvc)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(req.Context()); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/refresh", authHandler.Refresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(deps.Tokens))

	authed.HandleFunc("/users/current", accountHandler.GetCurrent).Methods(http.MethodGet)
	authed.HandleFunc("/users", accountHandler.ListOthers).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id:[0-9]+}", accountHandler.GetByID).Methods(http.MethodGet)
	authed.HandleFunc("/users/verify/{id:[0-9]+}", adminOnly(accountHandler.SetVerified)).Methods(http.MethodPut)
	authed.HandleFunc("/verify-receiver", accountHandler.VerifyReceiver).Methods(http.MethodPost)

	authed.HandleFunc("/transfer", txnHandler.Transfer).Methods(http.MethodPost)
	authed.HandleFunc("/deposit", txnHandler.Deposit).Methods(http.MethodPost)
	authed.HandleFunc("/transactions", txnHandler.ListTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/deposits", txnHandler.ListDeposits).Methods(http.MethodGet)

	authed.HandleFunc("/request", requestHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/update-request-status", requestHandler.UpdateStatus).Methods(http.MethodPost)
	authed.HandleFunc("/requests", requestHandler.List).Methods(http.MethodGet)

	authed.HandleFunc("/upload", accountHandler.UploadImage).Methods(http.MethodPost)
	authed.HandleFunc("/image", accountHandler.GetImage).Methods(http.MethodGet)

	return r
}
