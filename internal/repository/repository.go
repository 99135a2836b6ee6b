package repository

import (
	"context"
	"time"

	"swiftpay-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// ListOthers returns every account except the given one, for the
	// contact-picker surface. Password hashes are not populated.
	ListOthers(ctx context.Context, excludeID int64) ([]domain.Account, error)
	SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error)
	SetImageURL(ctx context.Context, id int64, imageURL string) error
}

type TransactionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	// List returns transactions where the account is the sender, the
	// receiver, or either, newest first.
	List(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.Transaction, error)
}

type DepositRepository interface {
	ListByAccount(ctx context.Context, accountID int64) ([]domain.DepositRecord, error)
}

type RequestRepository interface {
	// Create inserts the request and increments the receiver's
	// request_received counter in one database transaction.
	Create(ctx context.Context, request *domain.MoneyRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MoneyRequest, error)
	List(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.MoneyRequest, error)
	// ListStalePending returns pending requests created before the cutoff,
	// used by the reminder job.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.MoneyRequest, error)
}

// TransferParams describes one atomic movement of funds between two accounts.
type TransferParams struct {
	SenderID       int64
	ReceiverID     int64
	AmountCents    int64
	Type           domain.TransactionType
	Reference      string
	IdempotencyKey string
	AllowOverdraft bool
}

// DepositParams describes one external credit into an account.
type DepositParams struct {
	AccountID      int64
	AmountCents    int64
	Source         domain.DepositSource
	AccountNumber  string
	IFSCCode       string
	CardNumber     string
	ChequeNumber   string
	IdempotencyKey string
}

// SettleParams accepts a pending money request and executes its transfer.
type SettleParams struct {
	RequestID      int64
	Type           domain.TransactionType
	Reference      string
	IdempotencyKey string
	AllowOverdraft bool
}

// AccountDrift is one row of the ledger audit: the difference between an
// account's balance and what its counters say the balance should be.
type AccountDrift struct {
	AccountID  int64
	DriftCents int64
}

// LedgerRepository owns every balance mutation. Each method runs as a single
// database transaction: all of its effects commit together or none do.
type LedgerRepository interface {
	// Transfer debits the sender, credits the receiver and appends the
	// ledger row atomically. A repeated idempotency key returns the
	// transaction recorded for the original attempt.
	Transfer(ctx context.Context, p TransferParams) (*domain.Transaction, error)
	// Deposit appends a deposit record and credits the balance atomically.
	// A repeated idempotency key returns the record from the original attempt
	// without crediting again.
	Deposit(ctx context.Context, p DepositParams) (*domain.DepositRecord, int64, error)
	// SettleRequest flips a pending request to accepted and executes its
	// transfer as one unit. Terminal requests fail without side effect.
	SettleRequest(ctx context.Context, p SettleParams) (*domain.Transaction, error)
	// UpdateRequestStatus applies a non-accept transition (e.g. rejected).
	// No balance effect. Terminal requests fail without side effect.
	UpdateRequestStatus(ctx context.Context, requestID int64, status domain.RequestStatus) (*domain.MoneyRequest, error)
	// AuditDrift reports accounts whose balance disagrees with their
	// initial balance plus counters. A healthy ledger returns no rows.
	AuditDrift(ctx context.Context) ([]AccountDrift, error)
}
