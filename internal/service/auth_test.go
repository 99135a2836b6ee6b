package service_test

import (
	"context"
	"testing"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		accountRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Account).ID = 1
			}).Return(nil)
		tokens.On("GenerateAccessToken", int64(1), "jane@example.com", false).Return("access", nil)
		tokens.On("GenerateRefreshToken", int64(1), "jane@example.com").Return("refresh", nil)

		account, access, refresh, err := svc.Register(ctx, service.RegisterParams{
			Name:                "Jane Doe",
			Email:               "Jane@Example.com",
			PhoneNumber:         "5551234",
			Password:            "s3cret-pass",
			Address:             "1 Main St",
			IdentificationType:  "passport",
			InitialBalanceCents: 100000,
		})
		require.NoError(t, err)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
		assert.Equal(t, "jane@example.com", account.Email)
		assert.True(t, account.IsVerified)
		assert.Len(t, account.IdentificationNumber, 12)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret-pass")))
		accountRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		accountRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).
			Return(&domain.ErrDuplicate{Key: "accounts_email_key"})

		_, _, _, err := svc.Register(ctx, service.RegisterParams{
			Name:               "Jane Doe",
			Email:              "jane@example.com",
			PhoneNumber:        "5551234",
			Password:           "s3cret-pass",
			Address:            "1 Main St",
			IdentificationType: "passport",
		})
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		_, _, _, err := svc.Register(ctx, service.RegisterParams{Email: "jane@example.com"})
		var validation *domain.ErrValidation
		assert.ErrorAs(t, err, &validation)
		accountRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Negative Opening Balance", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		_, _, _, err := svc.Register(ctx, service.RegisterParams{
			Name:                "Jane Doe",
			Email:               "jane@example.com",
			PhoneNumber:         "5551234",
			Password:            "s3cret-pass",
			Address:             "1 Main St",
			IdentificationType:  "passport",
			InitialBalanceCents: -1,
		})
		var validation *domain.ErrValidation
		assert.ErrorAs(t, err, &validation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.DefaultCost)

	t.Run("Success", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		accountRepo.On("GetByEmail", ctx, "jane@example.com").Return(&domain.Account{
			ID:           1,
			Email:        "jane@example.com",
			PasswordHash: string(hash),
		}, nil)
		tokens.On("GenerateAccessToken", int64(1), "jane@example.com", false).Return("access", nil)
		tokens.On("GenerateRefreshToken", int64(1), "jane@example.com").Return("refresh", nil)

		account, access, _, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, int64(1), account.ID)
		assert.Equal(t, "access", access)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		accountRepo.On("GetByEmail", ctx, "jane@example.com").Return(&domain.Account{
			ID:           1,
			Email:        "jane@example.com",
			PasswordHash: string(hash),
		}, nil)

		_, _, _, err := svc.Login(ctx, "jane@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(accountRepo, tokens)

		accountRepo.On("GetByEmail", ctx, "nobody@example.com").
			Return(nil, &domain.ErrNotFound{Resource: "account"})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
