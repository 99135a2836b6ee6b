package postgres

import (
	"context"
	"database/sql"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type depositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) repository.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.DepositRecord, error) {
	logger.EnterMethod("depositRepository.ListByAccount", "accountID", accountID)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, amount_cents, source,
		       COALESCE(account_number, ''), COALESCE(ifsc_code, ''),
		       COALESCE(card_number, ''), COALESCE(cheque_number, ''), created_at
		FROM deposits
		WHERE account_id = $1
		ORDER BY created_at DESC`,
		accountID)
	if err != nil {
		logger.ExitMethodWithError("depositRepository.ListByAccount", err, "accountID", accountID)
		return nil, err
	}
	defer rows.Close()

	records := []domain.DepositRecord{}
	for rows.Next() {
		var d domain.DepositRecord
		err := rows.Scan(
			&d.ID, &d.AccountID, &d.AmountCents, &d.Source,
			&d.AccountNumber, &d.IFSCCode, &d.CardNumber, &d.ChequeNumber, &d.CreatedOn,
		)
		if err != nil {
			logger.ExitMethodWithError("depositRepository.ListByAccount", err, "accountID", accountID)
			return nil, err
		}
		records = append(records, d)
	}

	logger.ExitMethod("depositRepository.ListByAccount", "accountID", accountID, "count", len(records))
	return records, rows.Err()
}
