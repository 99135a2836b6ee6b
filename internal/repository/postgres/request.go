package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestSelect = `
	SELECT q.id, q.sender_id, q.receiver_id, q.amount_cents, COALESCE(q.description, ''),
	       q.status, q.created_at, q.updated_at,
	       s.name, COALESCE(s.image_url, ''), r.name, COALESCE(r.image_url, '')
	FROM requests q
	JOIN accounts s ON s.id = q.sender_id
	JOIN accounts r ON r.id = q.receiver_id`

func scanRequest(row interface{ Scan(dest ...any) error }, q *domain.MoneyRequest) error {
	return row.Scan(
		&q.ID, &q.SenderID, &q.ReceiverID, &q.AmountCents, &q.Description,
		&q.Status, &q.CreatedOn, &q.UpdatedOn,
		&q.SenderName, &q.SenderImage, &q.ReceiverName, &q.ReceiverImage,
	)
}

func (r *requestRepository) Create(ctx context.Context, request *domain.MoneyRequest) error {
	logger.EnterMethod("requestRepository.Create",
		"senderID", request.SenderID, "receiverID", request.ReceiverID, "amountCents", request.AmountCents)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO requests (sender_id, receiver_id, amount_cents, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at`,
		request.SenderID, request.ReceiverID, request.AmountCents, request.Description,
		domain.RequestStatusPending, now,
	).Scan(&request.ID, &request.CreatedOn, &request.UpdatedOn)
	if err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("requestRepository.Create", err, "senderID", request.SenderID)
		return err
	}
	request.Status = domain.RequestStatusPending

	// Counter bump rides the same transaction as the insert.
	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET request_received = request_received + 1, updated_at = $1 WHERE id = $2`,
		now, request.ReceiverID)
	if err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("requestRepository.Create", err, "senderID", request.SenderID)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		err = &domain.ErrNotFound{Resource: "account", ID: request.ReceiverID}
		logger.ExitMethodWithError("requestRepository.Create", err, "receiverID", request.ReceiverID)
		return err
	}

	if err := tx.Commit(); err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("requestRepository.Create", err, "senderID", request.SenderID)
		return err
	}

	logger.ExitMethod("requestRepository.Create", "requestID", request.ID)
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.MoneyRequest, error) {
	req := &domain.MoneyRequest{}
	err := scanRequest(r.db.QueryRowContext(ctx, requestSelect+` WHERE q.id = $1`, id), req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrNotFound{Resource: "request", ID: id}
		}
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) List(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.MoneyRequest, error) {
	logger.EnterMethod("requestRepository.List", "accountID", accountID, "direction", direction)

	var where string
	switch direction {
	case domain.DirectionSent:
		where = ` WHERE q.sender_id = $1`
	case domain.DirectionReceived:
		where = ` WHERE q.receiver_id = $1`
	default:
		where = ` WHERE (q.sender_id = $1 OR q.receiver_id = $1)`
	}

	rows, err := r.db.QueryContext(ctx, requestSelect+where+` ORDER BY q.created_at DESC, q.id DESC`, accountID)
	if err != nil {
		logger.ExitMethodWithError("requestRepository.List", err, "accountID", accountID)
		return nil, err
	}
	defer rows.Close()

	requests := []domain.MoneyRequest{}
	for rows.Next() {
		var q domain.MoneyRequest
		if err := scanRequest(rows, &q); err != nil {
			logger.ExitMethodWithError("requestRepository.List", err, "accountID", accountID)
			return nil, err
		}
		requests = append(requests, q)
	}

	logger.ExitMethod("requestRepository.List", "accountID", accountID, "count", len(requests))
	return requests, rows.Err()
}

func (r *requestRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.MoneyRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		requestSelect+` WHERE q.status = $1 AND q.created_at < $2 ORDER BY q.created_at`,
		domain.RequestStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.MoneyRequest{}
	for rows.Next() {
		var q domain.MoneyRequest
		if err := scanRequest(rows, &q); err != nil {
			return nil, err
		}
		requests = append(requests, q)
	}
	return requests, rows.Err()
}
