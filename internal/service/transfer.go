package service

import (
	"context"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type transferService struct {
	ledgerRepo      repository.LedgerRepository
	transactionRepo repository.TransactionRepository
	accountRepo     repository.AccountRepository
	emailSvc        EmailService
	allowOverdraft  bool
}

func NewTransferService(
	ledgerRepo repository.LedgerRepository,
	transactionRepo repository.TransactionRepository,
	accountRepo repository.AccountRepository,
	emailSvc EmailService,
	allowOverdraft bool,
) TransferService {
	return &transferService{
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		emailSvc:        emailSvc,
		allowOverdraft:  allowOverdraft,
	}
}

func (s *transferService) Transfer(ctx context.Context, p TransferInput) (*domain.Transaction, error) {
	logger.EnterMethod("transferService.Transfer",
		"senderID", p.SenderID, "receiverID", p.ReceiverID, "amountCents", p.AmountCents)

	if err := validateTransferInput(p); err != nil {
		logger.ExitMethodWithError("transferService.Transfer", err, "senderID", p.SenderID)
		return nil, err
	}

	txn, err := s.ledgerRepo.Transfer(ctx, repository.TransferParams{
		SenderID:       p.SenderID,
		ReceiverID:     p.ReceiverID,
		AmountCents:    p.AmountCents,
		Type:           p.Type,
		Reference:      p.Reference,
		IdempotencyKey: p.IdempotencyKey,
		AllowOverdraft: s.allowOverdraft,
	})
	if err != nil {
		logger.ExitMethodWithError("transferService.Transfer", err, "senderID", p.SenderID)
		return nil, err
	}

	s.notifyReceiver(ctx, txn)

	logger.ExitMethod("transferService.Transfer", "transactionID", txn.TransactionID)
	return txn, nil
}

// notifyReceiver sends the courtesy mail after the ledger committed. Mail
// failures never affect the money path.
func (s *transferService) notifyReceiver(ctx context.Context, txn *domain.Transaction) {
	receiver, err := s.accountRepo.GetByID(ctx, txn.ReceiverID)
	if err != nil {
		return
	}
	sender, err := s.accountRepo.GetByID(ctx, txn.SenderID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendTransferReceivedNotification(ctx, receiver.Email, receiver.Name, sender.Name, txn.AmountCents)
}

func (s *transferService) ListTransactions(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.Transaction, error) {
	return s.transactionRepo.List(ctx, accountID, direction)
}

func validateTransferInput(p TransferInput) error {
	if p.ReceiverID == 0 {
		return &domain.ErrValidation{Field: "receiver", Message: "required"}
	}
	if p.Type == "" {
		return &domain.ErrValidation{Field: "transaction_type", Message: "required"}
	}
	if p.Reference == "" {
		return &domain.ErrValidation{Field: "reference", Message: "required"}
	}
	if p.AmountCents <= 0 {
		return &domain.ErrInvalidAmount{AmountCents: p.AmountCents}
	}
	if p.SenderID == p.ReceiverID {
		return &domain.ErrSelfTransfer{AccountID: p.SenderID}
	}
	return nil
}
