package service_test

import (
	"context"
	"time"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/repository"
	"swiftpay-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) ListOthers(ctx context.Context, excludeID int64) ([]domain.Account, error) {
	args := m.Called(ctx, excludeID)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepo) SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error) {
	args := m.Called(ctx, id, verified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) List(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, direction)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockDepositRepo
type MockDepositRepo struct {
	mock.Mock
}

func (m *MockDepositRepo) ListByAccount(ctx context.Context, accountID int64) ([]domain.DepositRecord, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.DepositRecord), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, request *domain.MoneyRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int64) (*domain.MoneyRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyRequest), args.Error(1)
}
func (m *MockRequestRepo) List(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.MoneyRequest, error) {
	args := m.Called(ctx, accountID, direction)
	return args.Get(0).([]domain.MoneyRequest), args.Error(1)
}
func (m *MockRequestRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.MoneyRequest, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.MoneyRequest), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Transfer(ctx context.Context, p repository.TransferParams) (*domain.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerRepo) Deposit(ctx context.Context, p repository.DepositParams) (*domain.DepositRecord, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*domain.DepositRecord), args.Get(1).(int64), args.Error(2)
}
func (m *MockLedgerRepo) SettleRequest(ctx context.Context, p repository.SettleParams) (*domain.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerRepo) UpdateRequestStatus(ctx context.Context, requestID int64, status domain.RequestStatus) (*domain.MoneyRequest, error) {
	args := m.Called(ctx, requestID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyRequest), args.Error(1)
}
func (m *MockLedgerRepo) AuditDrift(ctx context.Context) ([]repository.AccountDrift, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.AccountDrift), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestReceivedNotification(ctx context.Context, toEmail, toName, senderName string, amountCents int64, description string) error {
	args := m.Called(ctx, toEmail, toName, senderName, amountCents, description)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestResolvedNotification(ctx context.Context, toEmail, toName string, amountCents int64, status domain.RequestStatus) error {
	args := m.Called(ctx, toEmail, toName, amountCents, status)
	return args.Error(0)
}
func (m *MockEmailService) SendTransferReceivedNotification(ctx context.Context, toEmail, toName, senderName string, amountCents int64) error {
	args := m.Called(ctx, toEmail, toName, senderName, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingRequestReminder(ctx context.Context, toEmail, toName, senderName string, amountCents int64) error {
	args := m.Called(ctx, toEmail, toName, senderName, amountCents)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(accountID int64, email string, isAdmin bool) (string, error) {
	args := m.Called(accountID, email, isAdmin)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(accountID int64, email string) (string, error) {
	args := m.Called(accountID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.AccountClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.AccountClaims), args.Error(1)
}
