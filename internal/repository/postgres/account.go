package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `
	id, name, email, COALESCE(phone_number, ''), COALESCE(address, ''),
	COALESCE(identification_type, ''), COALESCE(identification_number, ''),
	password_hash, balance_cents, initial_balance_cents, money_sent_cents,
	money_received_cents, money_deposited_cents, request_received,
	is_admin, is_verified, COALESCE(image_url, ''), created_at, updated_at`

func scanAccount(row interface{ Scan(dest ...any) error }, a *domain.Account) error {
	return row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PhoneNumber, &a.Address,
		&a.IdentificationType, &a.IdentificationNumber,
		&a.PasswordHash, &a.BalanceCents, &a.InitialBalanceCents, &a.MoneySentCents,
		&a.MoneyReceivedCents, &a.MoneyDepositedCents, &a.RequestReceived,
		&a.IsAdmin, &a.IsVerified, &a.ImageURL, &a.CreatedOn, &a.UpdatedOn,
	)
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	logger.EnterMethod("accountRepository.Create", "email", account.Email)

	query := `
		INSERT INTO accounts (
			name, email, phone_number, address, identification_type,
			identification_number, password_hash, balance_cents,
			initial_balance_cents, is_admin, is_verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, $10, $11, $11)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PhoneNumber, account.Address,
		account.IdentificationType, account.IdentificationNumber,
		account.PasswordHash, account.BalanceCents,
		account.IsAdmin, account.IsVerified, now,
	).Scan(&account.ID, &account.CreatedOn, &account.UpdatedOn)

	if err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("accountRepository.Create", err, "email", account.Email)
		return err
	}
	account.InitialBalanceCents = account.BalanceCents

	logger.ExitMethod("accountRepository.Create", "accountID", account.ID)
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE id = $1`

	account := &domain.Account{}
	err := scanAccount(r.db.QueryRowContext(ctx, query, id), account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrNotFound{Resource: "account", ID: id}
		}
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE email = $1`

	account := &domain.Account{}
	err := scanAccount(r.db.QueryRowContext(ctx, query, email), account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrNotFound{Resource: "account"}
		}
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) ListOthers(ctx context.Context, excludeID int64) ([]domain.Account, error) {
	logger.EnterMethod("accountRepository.ListOthers", "excludeID", excludeID)

	query := `SELECT` + accountColumns + ` FROM accounts WHERE id <> $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, excludeID)
	if err != nil {
		logger.ExitMethodWithError("accountRepository.ListOthers", err, "excludeID", excludeID)
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := scanAccount(rows, &a); err != nil {
			logger.ExitMethodWithError("accountRepository.ListOthers", err, "excludeID", excludeID)
			return nil, err
		}
		a.PasswordHash = ""
		accounts = append(accounts, a)
	}

	logger.ExitMethod("accountRepository.ListOthers", "count", len(accounts))
	return accounts, rows.Err()
}

func (r *accountRepository) SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error) {
	logger.EnterMethod("accountRepository.SetVerified", "accountID", id, "verified", verified)

	// RETURNING the shared column list keeps the scan order stable.
	query := `UPDATE accounts SET is_verified = $1, updated_at = $2 WHERE id = $3 RETURNING` + accountColumns

	account := &domain.Account{}
	err := scanAccount(r.db.QueryRowContext(ctx, query, verified, time.Now(), id), account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = &domain.ErrNotFound{Resource: "account", ID: id}
		}
		logger.ExitMethodWithError("accountRepository.SetVerified", err, "accountID", id)
		return nil, err
	}

	logger.ExitMethod("accountRepository.SetVerified", "accountID", id)
	return account, nil
}

func (r *accountRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET image_url = $1, updated_at = $2 WHERE id = $3`,
		imageURL, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.ErrNotFound{Resource: "account", ID: id}
	}
	return nil
}
