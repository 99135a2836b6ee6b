package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
	"swiftpay-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

type authService struct {
	accountRepo  repository.AccountRepository
	tokenManager security.TokenManager
}

func NewAuthService(accountRepo repository.AccountRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		accountRepo:  accountRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Register(ctx context.Context, p RegisterParams) (*domain.Account, string, string, error) {
	logger.EnterMethod("authService.Register", "email", p.Email)

	if err := validateRegistration(p); err != nil {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	idNumber, err := generateIdentificationNumber()
	if err != nil {
		return nil, "", "", err
	}

	account := &domain.Account{
		Name:                 p.Name,
		Email:                strings.ToLower(strings.TrimSpace(p.Email)),
		PhoneNumber:          p.PhoneNumber,
		Address:              p.Address,
		IdentificationType:   p.IdentificationType,
		IdentificationNumber: idNumber,
		PasswordHash:         string(hash),
		BalanceCents:         p.InitialBalanceCents,
		IsAdmin:              false,
		// Accounts are verified on creation; an admin can revoke later.
		IsVerified: true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		var dup *domain.ErrDuplicate
		if errors.As(err, &dup) {
			err = ErrEmailTaken
		}
		logger.ExitMethodWithError("authService.Register", err, "email", p.Email)
		return nil, "", "", err
	}

	access, refresh, err := s.generateTokens(account)
	if err != nil {
		return nil, "", "", err
	}

	logger.ExitMethod("authService.Register", "accountID", account.ID)
	return account, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Account, string, string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	account, err := s.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.generateTokens(account)
	if err != nil {
		return nil, "", "", err
	}

	logger.ExitMethod("authService.Login", "accountID", account.ID)
	return account, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return "", "", &domain.ErrUnauthorized{Message: "invalid refresh token"}
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", &domain.ErrUnauthorized{Message: "wrong token type"}
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return "", "", &domain.ErrUnauthorized{Message: "account no longer exists"}
	}

	return s.generateTokens(account)
}

func (s *authService) generateTokens(account *domain.Account) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(account.ID, account.Email, account.IsAdmin)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(account.ID, account.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return access, refresh, nil
}

func validateRegistration(p RegisterParams) error {
	switch {
	case p.Name == "":
		return &domain.ErrValidation{Field: "name", Message: "required"}
	case p.Email == "":
		return &domain.ErrValidation{Field: "email", Message: "required"}
	case p.Password == "":
		return &domain.ErrValidation{Field: "password", Message: "required"}
	case p.PhoneNumber == "":
		return &domain.ErrValidation{Field: "phone_number", Message: "required"}
	case p.Address == "":
		return &domain.ErrValidation{Field: "address", Message: "required"}
	case p.IdentificationType == "":
		return &domain.ErrValidation{Field: "identification_type", Message: "required"}
	case p.InitialBalanceCents < 0:
		return &domain.ErrValidation{Field: "balance_cents", Message: "must not be negative"}
	}
	return nil
}

func generateIdentificationNumber() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate identification number: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
