package postgres

import (
	"context"
	"database/sql"
	"errors"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionSelect = `
	SELECT t.id, t.transaction_id, t.sender_id, t.receiver_id, t.amount_cents,
	       t.transaction_type, COALESCE(t.reference, ''), t.created_at,
	       s.name, COALESCE(s.image_url, ''), r.name, COALESCE(r.image_url, '')
	FROM transactions t
	JOIN accounts s ON s.id = t.sender_id
	JOIN accounts r ON r.id = t.receiver_id`

func scanTransaction(row interface{ Scan(dest ...any) error }, t *domain.Transaction) error {
	return row.Scan(
		&t.ID, &t.TransactionID, &t.SenderID, &t.ReceiverID, &t.AmountCents,
		&t.Type, &t.Reference, &t.CreatedOn,
		&t.SenderName, &t.SenderImage, &t.ReceiverName, &t.ReceiverImage,
	)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn := &domain.Transaction{}
	err := scanTransaction(r.db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = $1`, id), txn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
		}
		return nil, err
	}
	return txn, nil
}

func (r *transactionRepository) List(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.Transaction, error) {
	logger.EnterMethod("transactionRepository.List", "accountID", accountID, "direction", direction)

	var where string
	switch direction {
	case domain.DirectionSent:
		where = ` WHERE t.sender_id = $1`
	case domain.DirectionReceived:
		where = ` WHERE t.receiver_id = $1`
	default:
		where = ` WHERE (t.sender_id = $1 OR t.receiver_id = $1)`
	}

	rows, err := r.db.QueryContext(ctx, transactionSelect+where+` ORDER BY t.created_at DESC, t.id DESC`, accountID)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.List", err, "accountID", accountID)
		return nil, err
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			logger.ExitMethodWithError("transactionRepository.List", err, "accountID", accountID)
			return nil, err
		}
		txns = append(txns, t)
	}

	logger.ExitMethod("transactionRepository.List", "accountID", accountID, "count", len(txns))
	return txns, rows.Err()
}
