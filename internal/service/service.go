package service

import (
	"context"

	"swiftpay-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, p RegisterParams) (*domain.Account, string, string, error) // account, access, refresh
	Login(ctx context.Context, email, password string) (*domain.Account, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// RegisterParams carries the registration form. InitialBalanceCents seeds the
// opening balance (the audit job treats it as the account's baseline).
type RegisterParams struct {
	Name                string
	Email               string
	PhoneNumber         string
	Password            string
	Address             string
	IdentificationType  string
	InitialBalanceCents int64
}

type AccountService interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, []domain.DepositRecord, error)
	ListOthers(ctx context.Context, callerID int64) ([]domain.Account, error)
	SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error)
	// VerifyReceiver resolves a prospective transfer counterparty for display
	// before the caller commits to sending money.
	VerifyReceiver(ctx context.Context, receiverID int64) (*domain.Account, error)
	SetImageURL(ctx context.Context, accountID int64, imageURL string) error
	GetImageURL(ctx context.Context, accountID int64) (string, error)
}

type TransferService interface {
	Transfer(ctx context.Context, p TransferInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.Transaction, error)
}

// TransferInput is a caller-initiated movement of funds. IdempotencyKey is
// optional; a repeated key returns the original transaction.
type TransferInput struct {
	SenderID       int64
	ReceiverID     int64
	AmountCents    int64
	Type           domain.TransactionType
	Reference      string
	IdempotencyKey string
}

type DepositService interface {
	Deposit(ctx context.Context, p DepositInput) (*domain.DepositRecord, int64, error)
	ListDeposits(ctx context.Context, accountID int64) ([]domain.DepositRecord, error)
}

// DepositInput carries an external credit. Source is normalized to the known
// enumeration; unrecognized values fall back to the bank-transfer shape.
// IdempotencyKey is optional; a repeated key returns the original deposit.
type DepositInput struct {
	AccountID      int64
	AmountCents    int64
	Source         string
	AccountNumber  string
	IFSCCode       string
	CardNumber     string
	ChequeNumber   string
	IdempotencyKey string
}

type RequestService interface {
	CreateRequest(ctx context.Context, senderID, receiverID, amountCents int64, description string) (*domain.MoneyRequest, error)
	// UpdateStatus transitions a pending request. Accepting settles the
	// request and returns the created transaction; any other transition
	// returns the updated request.
	UpdateStatus(ctx context.Context, p StatusUpdateInput) (*domain.Transaction, *domain.MoneyRequest, error)
	ListRequests(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.MoneyRequest, error)
}

type StatusUpdateInput struct {
	CallerID       int64
	RequestID      int64
	Status         domain.RequestStatus
	Type           domain.TransactionType
	Reference      string
	IdempotencyKey string
}

type EmailService interface {
	SendRequestReceivedNotification(ctx context.Context, toEmail, toName, senderName string, amountCents int64, description string) error
	SendRequestResolvedNotification(ctx context.Context, toEmail, toName string, amountCents int64, status domain.RequestStatus) error
	SendTransferReceivedNotification(ctx context.Context, toEmail, toName, senderName string, amountCents int64) error
	SendPendingRequestReminder(ctx context.Context, toEmail, toName, senderName string, amountCents int64) error
}
