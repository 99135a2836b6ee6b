package service_test

import (
	"context"
	"testing"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/repository"
	"swiftpay-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransferService(allowOverdraft bool) (service.TransferService, *MockLedgerRepo, *MockTransactionRepo, *MockAccountRepo, *MockEmailService) {
	ledger := new(MockLedgerRepo)
	txns := new(MockTransactionRepo)
	accounts := new(MockAccountRepo)
	email := new(MockEmailService)
	svc := service.NewTransferService(ledger, txns, accounts, email, allowOverdraft)
	return svc, ledger, txns, accounts, email
}

func TestTransferService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, ledger, _, accounts, email := newTransferService(false)

		txn := &domain.Transaction{
			ID:            42,
			TransactionID: "abcdef0123",
			SenderID:      1,
			ReceiverID:    2,
			AmountCents:   2500,
			Type:          domain.TransactionTypeTransfer,
			Reference:     "lunch",
		}
		ledger.On("Transfer", ctx, repository.TransferParams{
			SenderID:    1,
			ReceiverID:  2,
			AmountCents: 2500,
			Type:        domain.TransactionTypeTransfer,
			Reference:   "lunch",
		}).Return(txn, nil)
		accounts.On("GetByID", ctx, int64(2)).Return(&domain.Account{ID: 2, Name: "Bob", Email: "bob@example.com"}, nil)
		accounts.On("GetByID", ctx, int64(1)).Return(&domain.Account{ID: 1, Name: "Alice"}, nil)
		email.On("SendTransferReceivedNotification", ctx, "bob@example.com", "Bob", "Alice", int64(2500)).Return(nil)

		got, err := svc.Transfer(ctx, service.TransferInput{
			SenderID:    1,
			ReceiverID:  2,
			AmountCents: 2500,
			Type:        domain.TransactionTypeTransfer,
			Reference:   "lunch",
		})
		require.NoError(t, err)
		assert.Equal(t, txn, got)
		ledger.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("Overdraft Flag Forwarded", func(t *testing.T) {
		svc, ledger, _, accounts, email := newTransferService(true)

		txn := &domain.Transaction{SenderID: 1, ReceiverID: 2, AmountCents: 100}
		ledger.On("Transfer", ctx, repository.TransferParams{
			SenderID:       1,
			ReceiverID:     2,
			AmountCents:    100,
			Type:           domain.TransactionTypeTransfer,
			Reference:      "x",
			AllowOverdraft: true,
		}).Return(txn, nil)
		accounts.On("GetByID", ctx, int64(2)).Return(&domain.Account{ID: 2}, nil)
		accounts.On("GetByID", ctx, int64(1)).Return(&domain.Account{ID: 1}, nil)
		email.On("SendTransferReceivedNotification", ctx, "", "", "", int64(100)).Return(nil)

		_, err := svc.Transfer(ctx, service.TransferInput{
			SenderID:    1,
			ReceiverID:  2,
			AmountCents: 100,
			Type:        domain.TransactionTypeTransfer,
			Reference:   "x",
		})
		require.NoError(t, err)
		ledger.AssertExpectations(t)
	})

	t.Run("Validation Failures Touch No Repositories", func(t *testing.T) {
		cases := []struct {
			name  string
			input service.TransferInput
			want  any
		}{
			{
				name:  "missing receiver",
				input: service.TransferInput{SenderID: 1, AmountCents: 100, Type: domain.TransactionTypeTransfer, Reference: "x"},
				want:  new(*domain.ErrValidation),
			},
			{
				name:  "missing reference",
				input: service.TransferInput{SenderID: 1, ReceiverID: 2, AmountCents: 100, Type: domain.TransactionTypeTransfer},
				want:  new(*domain.ErrValidation),
			},
			{
				name:  "zero amount",
				input: service.TransferInput{SenderID: 1, ReceiverID: 2, Type: domain.TransactionTypeTransfer, Reference: "x"},
				want:  new(*domain.ErrInvalidAmount),
			},
			{
				name:  "negative amount",
				input: service.TransferInput{SenderID: 1, ReceiverID: 2, AmountCents: -5, Type: domain.TransactionTypeTransfer, Reference: "x"},
				want:  new(*domain.ErrInvalidAmount),
			},
			{
				name:  "self transfer",
				input: service.TransferInput{SenderID: 2, ReceiverID: 2, AmountCents: 100, Type: domain.TransactionTypeTransfer, Reference: "x"},
				want:  new(*domain.ErrSelfTransfer),
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc, ledger, _, _, email := newTransferService(false)

				_, err := svc.Transfer(ctx, tc.input)
				require.Error(t, err)
				assert.ErrorAs(t, err, tc.want)
				ledger.AssertNotCalled(t, "Transfer")
				email.AssertNotCalled(t, "SendTransferReceivedNotification")
			})
		}
	})

	t.Run("Email Failure Does Not Fail Transfer", func(t *testing.T) {
		svc, ledger, _, accounts, email := newTransferService(false)

		txn := &domain.Transaction{SenderID: 1, ReceiverID: 2, AmountCents: 100}
		ledger.On("Transfer", ctx, mock.Anything).Return(txn, nil)
		accounts.On("GetByID", ctx, int64(2)).Return(&domain.Account{ID: 2, Email: "bob@example.com"}, nil)
		accounts.On("GetByID", ctx, int64(1)).Return(&domain.Account{ID: 1}, nil)
		email.On("SendTransferReceivedNotification", ctx, "bob@example.com", "", "", int64(100)).
			Return(assert.AnError)

		_, err := svc.Transfer(ctx, service.TransferInput{
			SenderID:    1,
			ReceiverID:  2,
			AmountCents: 100,
			Type:        domain.TransactionTypeTransfer,
			Reference:   "x",
		})
		assert.NoError(t, err)
	})
}

func TestTransferService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	svc, _, txns, _, _ := newTransferService(false)

	expected := []domain.Transaction{{ID: 1}, {ID: 2}}
	txns.On("List", ctx, int64(1), domain.DirectionSent).Return(expected, nil)

	got, err := svc.ListTransactions(ctx, 1, domain.DirectionSent)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
