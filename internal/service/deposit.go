package service

import (
	"context"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type depositService struct {
	ledgerRepo  repository.LedgerRepository
	depositRepo repository.DepositRepository
}

func NewDepositService(ledgerRepo repository.LedgerRepository, depositRepo repository.DepositRepository) DepositService {
	return &depositService{
		ledgerRepo:  ledgerRepo,
		depositRepo: depositRepo,
	}
}

func (s *depositService) Deposit(ctx context.Context, p DepositInput) (*domain.DepositRecord, int64, error) {
	logger.EnterMethod("depositService.Deposit",
		"accountID", p.AccountID, "amountCents", p.AmountCents, "source", p.Source)

	if p.AmountCents <= 0 {
		err := &domain.ErrInvalidAmount{AmountCents: p.AmountCents}
		logger.ExitMethodWithError("depositService.Deposit", err, "accountID", p.AccountID)
		return nil, 0, err
	}

	params := normalizeDeposit(p)

	record, newBalance, err := s.ledgerRepo.Deposit(ctx, params)
	if err != nil {
		logger.ExitMethodWithError("depositService.Deposit", err, "accountID", p.AccountID)
		return nil, 0, err
	}

	logger.ExitMethod("depositService.Deposit", "accountID", p.AccountID, "newBalanceCents", newBalance)
	return record, newBalance, nil
}

// normalizeDeposit maps the caller-supplied source onto the closed
// enumeration, keeping only the identifying fields that belong to it.
// Unrecognized sources fall back to the bank-transfer shape.
func normalizeDeposit(p DepositInput) repository.DepositParams {
	params := repository.DepositParams{
		AccountID:      p.AccountID,
		AmountCents:    p.AmountCents,
		IdempotencyKey: p.IdempotencyKey,
	}

	switch domain.DepositSource(p.Source) {
	case domain.DepositSourceBankTransfer:
		params.Source = domain.DepositSourceBankTransfer
		params.AccountNumber = p.AccountNumber
		params.IFSCCode = p.IFSCCode
	case domain.DepositSourceCard:
		params.Source = domain.DepositSourceCard
		params.CardNumber = p.CardNumber
	case domain.DepositSourceCheque:
		params.Source = domain.DepositSourceCheque
		params.ChequeNumber = p.ChequeNumber
	default:
		params.Source = domain.DepositSourceBankTransfer
		params.AccountNumber = p.AccountNumber
	}

	return params
}

func (s *depositService) ListDeposits(ctx context.Context, accountID int64) ([]domain.DepositRecord, error) {
	return s.depositRepo.ListByAccount(ctx, accountID)
}
