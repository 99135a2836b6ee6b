package service

import (
	"context"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type accountService struct {
	accountRepo repository.AccountRepository
	depositRepo repository.DepositRepository
}

func NewAccountService(accountRepo repository.AccountRepository, depositRepo repository.DepositRepository) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		depositRepo: depositRepo,
	}
}

func (s *accountService) GetAccount(ctx context.Context, id int64) (*domain.Account, []domain.DepositRecord, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	deposits, err := s.depositRepo.ListByAccount(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return account, deposits, nil
}

func (s *accountService) ListOthers(ctx context.Context, callerID int64) ([]domain.Account, error) {
	return s.accountRepo.ListOthers(ctx, callerID)
}

func (s *accountService) SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error) {
	logger.EnterMethod("accountService.SetVerified", "accountID", id, "verified", verified)

	account, err := s.accountRepo.SetVerified(ctx, id, verified)
	if err != nil {
		logger.ExitMethodWithError("accountService.SetVerified", err, "accountID", id)
		return nil, err
	}

	logger.ExitMethod("accountService.SetVerified", "accountID", id)
	return account, nil
}

func (s *accountService) VerifyReceiver(ctx context.Context, receiverID int64) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

func (s *accountService) SetImageURL(ctx context.Context, accountID int64, imageURL string) error {
	return s.accountRepo.SetImageURL(ctx, accountID, imageURL)
}

func (s *accountService) GetImageURL(ctx context.Context, accountID int64) (string, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if account.ImageURL == "" {
		return "", &domain.ErrNotFound{Resource: "image", ID: accountID}
	}
	return account.ImageURL, nil
}
