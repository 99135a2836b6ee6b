package postgres

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"

	"github.com/google/uuid"
)

// ledgerRepository owns every balance mutation. Each exported method is a
// single RepeatableRead transaction; account rows are locked FOR UPDATE in
// ascending id order so two concurrent movements over the same accounts
// cannot deadlock or lose an update.
type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// newTransactionRef generates the short externally visible reference carried
// by every ledger row (10 hex characters).
func newTransactionRef() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate transaction reference: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (r *ledgerRepository) Transfer(ctx context.Context, p repository.TransferParams) (*domain.Transaction, error) {
	logger.EnterMethod("ledgerRepository.Transfer",
		"senderID", p.SenderID, "receiverID", p.ReceiverID, "amountCents", p.AmountCents)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if p.IdempotencyKey != "" {
		existing, err := getByIdempotencyKey(ctx, tx, p.IdempotencyKey)
		if err == nil {
			// Replay: the original attempt already settled.
			logger.ExitMethod("ledgerRepository.Transfer", "replayed", true, "transactionID", existing.TransactionID)
			return existing, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethodWithError("ledgerRepository.Transfer", err, "senderID", p.SenderID)
			return nil, err
		}
	}

	txn, err := executeTransfer(ctx, tx, p)
	if err != nil {
		if existing := r.replayOnDuplicateKey(ctx, tx, p.IdempotencyKey, err); existing != nil {
			logger.ExitMethod("ledgerRepository.Transfer", "replayed", true, "transactionID", existing.TransactionID)
			return existing, nil
		}
		logger.ExitMethodWithError("ledgerRepository.Transfer", err, "senderID", p.SenderID)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("ledgerRepository.Transfer", err, "senderID", p.SenderID)
		return nil, err
	}

	logger.ExitMethod("ledgerRepository.Transfer", "transactionID", txn.TransactionID)
	return txn, nil
}

// executeTransfer performs the debit, credit and ledger append inside an open
// transaction. Callers own commit and rollback.
func executeTransfer(ctx context.Context, tx *sql.Tx, p repository.TransferParams) (*domain.Transaction, error) {
	if p.SenderID == p.ReceiverID {
		return nil, &domain.ErrSelfTransfer{AccountID: p.SenderID}
	}

	// Lock both accounts in ascending id order.
	firstID, secondID := p.SenderID, p.ReceiverID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	firstBalance, firstVerified, err := lockAccount(ctx, tx, firstID)
	if err != nil {
		return nil, err
	}
	secondBalance, secondVerified, err := lockAccount(ctx, tx, secondID)
	if err != nil {
		return nil, err
	}

	senderBalance, senderVerified := firstBalance, firstVerified
	receiverVerified := secondVerified
	if p.SenderID != firstID {
		senderBalance, senderVerified = secondBalance, secondVerified
		receiverVerified = firstVerified
	}

	if !senderVerified {
		return nil, &domain.ErrUnverifiedAccount{AccountID: p.SenderID}
	}
	if !receiverVerified {
		return nil, &domain.ErrUnverifiedAccount{AccountID: p.ReceiverID}
	}
	if !p.AllowOverdraft && senderBalance < p.AmountCents {
		return nil, &domain.ErrInsufficientFunds{AvailableCents: senderBalance, RequiredCents: p.AmountCents}
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance_cents = balance_cents - $1,
		    money_sent_cents = money_sent_cents + $1,
		    updated_at = $2
		WHERE id = $3`,
		p.AmountCents, now, p.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit sender: %w", mapError(err))
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance_cents = balance_cents + $1,
		    money_received_cents = money_received_cents + $1,
		    updated_at = $2
		WHERE id = $3`,
		p.AmountCents, now, p.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit receiver: %w", mapError(err))
	}

	ref, err := newTransactionRef()
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		TransactionID: ref,
		SenderID:      p.SenderID,
		ReceiverID:    p.ReceiverID,
		AmountCents:   p.AmountCents,
		Type:          p.Type,
		Reference:     p.Reference,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (
			transaction_id, sender_id, receiver_id, amount_cents,
			transaction_type, reference, idempotency_key, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		RETURNING id, created_at`,
		ref, p.SenderID, p.ReceiverID, p.AmountCents,
		p.Type, p.Reference, p.IdempotencyKey, now,
	).Scan(&txn.ID, &txn.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", mapError(err))
	}

	return txn, nil
}

// lockAccount acquires a row lock on the account and returns its balance and
// verification flag.
func lockAccount(ctx context.Context, tx *sql.Tx, id int64) (int64, bool, error) {
	var balance int64
	var verified bool
	err := tx.QueryRowContext(ctx,
		`SELECT balance_cents, is_verified FROM accounts WHERE id = $1 FOR UPDATE`,
		id).Scan(&balance, &verified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, &domain.ErrNotFound{Resource: "account", ID: id}
		}
		return 0, false, mapError(err)
	}
	return balance, verified, nil
}

// rowQueryer is satisfied by both *sql.DB and *sql.Tx, so replay lookups can
// run inside the posting transaction or against the pool after a rollback.
type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getByIdempotencyKey(ctx context.Context, q rowQueryer, key string) (*domain.Transaction, error) {
	txn := &domain.Transaction{}
	err := q.QueryRowContext(ctx, `
		SELECT id, transaction_id, sender_id, receiver_id, amount_cents,
		       transaction_type, COALESCE(reference, ''), created_at
		FROM transactions WHERE idempotency_key = $1`,
		key).Scan(
		&txn.ID, &txn.TransactionID, &txn.SenderID, &txn.ReceiverID,
		&txn.AmountCents, &txn.Type, &txn.Reference, &txn.CreatedOn)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// getDepositByIdempotencyKey returns the deposit recorded for the key and the
// account's current balance, for replaying a retried deposit.
func getDepositByIdempotencyKey(ctx context.Context, q rowQueryer, key string) (*domain.DepositRecord, int64, error) {
	d := &domain.DepositRecord{}
	var balance int64
	err := q.QueryRowContext(ctx, `
		SELECT d.id, d.account_id, d.amount_cents, d.source,
		       COALESCE(d.account_number, ''), COALESCE(d.ifsc_code, ''),
		       COALESCE(d.card_number, ''), COALESCE(d.cheque_number, ''), d.created_at,
		       a.balance_cents
		FROM deposits d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.idempotency_key = $1`,
		key).Scan(
		&d.ID, &d.AccountID, &d.AmountCents, &d.Source,
		&d.AccountNumber, &d.IFSCCode, &d.CardNumber, &d.ChequeNumber, &d.CreatedOn,
		&balance)
	if err != nil {
		return nil, 0, err
	}
	return d, balance, nil
}

// isIdempotencyCollision reports whether err is a unique violation on an
// idempotency-key index, meaning a concurrent attempt with the same key won
// the race after our pre-insert lookup came up empty.
func isIdempotencyCollision(key string, err error) bool {
	if key == "" {
		return false
	}
	var dup *domain.ErrDuplicate
	return errors.As(err, &dup) && strings.Contains(dup.Key, "idempotency_key")
}

// replayOnDuplicateKey resolves the race where two transfers carrying the same
// idempotency key both miss the pre-insert lookup: the loser's insert trips
// the unique index, and the winner's committed transaction is returned in its
// place.
func (r *ledgerRepository) replayOnDuplicateKey(ctx context.Context, tx *sql.Tx, key string, err error) *domain.Transaction {
	if !isIdempotencyCollision(key, err) {
		return nil
	}
	tx.Rollback()
	existing, readErr := getByIdempotencyKey(ctx, r.db, key)
	if readErr != nil {
		return nil
	}
	return existing
}

func (r *ledgerRepository) Deposit(ctx context.Context, p repository.DepositParams) (*domain.DepositRecord, int64, error) {
	logger.EnterMethod("ledgerRepository.Deposit",
		"accountID", p.AccountID, "amountCents", p.AmountCents, "source", p.Source)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if p.IdempotencyKey != "" {
		existing, balance, err := getDepositByIdempotencyKey(ctx, tx, p.IdempotencyKey)
		if err == nil {
			// Replay: the original attempt already credited the account.
			logger.ExitMethod("ledgerRepository.Deposit", "replayed", true, "depositID", existing.ID)
			return existing, balance, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethodWithError("ledgerRepository.Deposit", err, "accountID", p.AccountID)
			return nil, 0, err
		}
	}

	if _, _, err := lockAccount(ctx, tx, p.AccountID); err != nil {
		logger.ExitMethodWithError("ledgerRepository.Deposit", err, "accountID", p.AccountID)
		return nil, 0, err
	}

	record := &domain.DepositRecord{
		ID:            uuid.New().String(),
		AccountID:     p.AccountID,
		AmountCents:   p.AmountCents,
		Source:        p.Source,
		AccountNumber: p.AccountNumber,
		IFSCCode:      p.IFSCCode,
		CardNumber:    p.CardNumber,
		ChequeNumber:  p.ChequeNumber,
		CreatedOn:     time.Now(),
	}

	// The record append and the balance credit commit together; a failure of
	// either aborts the whole deposit.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO deposits (
			id, account_id, amount_cents, source,
			account_number, ifsc_code, card_number, cheque_number,
			idempotency_key, created_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10)`,
		record.ID, record.AccountID, record.AmountCents, record.Source,
		record.AccountNumber, record.IFSCCode, record.CardNumber, record.ChequeNumber,
		p.IdempotencyKey, record.CreatedOn)
	if err != nil {
		err = mapError(err)
		if isIdempotencyCollision(p.IdempotencyKey, err) {
			tx.Rollback()
			if existing, balance, readErr := getDepositByIdempotencyKey(ctx, r.db, p.IdempotencyKey); readErr == nil {
				logger.ExitMethod("ledgerRepository.Deposit", "replayed", true, "depositID", existing.ID)
				return existing, balance, nil
			}
		}
		err = fmt.Errorf("failed to append deposit record: %w", err)
		logger.ExitMethodWithError("ledgerRepository.Deposit", err, "accountID", p.AccountID)
		return nil, 0, err
	}

	var newBalance int64
	err = tx.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance_cents = balance_cents + $1,
		    money_deposited_cents = money_deposited_cents + $1,
		    updated_at = $2
		WHERE id = $3
		RETURNING balance_cents`,
		p.AmountCents, time.Now(), p.AccountID).Scan(&newBalance)
	if err != nil {
		err = fmt.Errorf("failed to credit balance: %w", mapError(err))
		logger.ExitMethodWithError("ledgerRepository.Deposit", err, "accountID", p.AccountID)
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("ledgerRepository.Deposit", err, "accountID", p.AccountID)
		return nil, 0, err
	}

	logger.ExitMethod("ledgerRepository.Deposit", "accountID", p.AccountID, "newBalanceCents", newBalance)
	return record, newBalance, nil
}

func (r *ledgerRepository) SettleRequest(ctx context.Context, p repository.SettleParams) (*domain.Transaction, error) {
	logger.EnterMethod("ledgerRepository.SettleRequest", "requestID", p.RequestID)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The row lock serializes concurrent transitions; the status check below
	// therefore sees the final word on whether the request is still pending.
	req, err := lockRequest(ctx, tx, p.RequestID)
	if err != nil {
		logger.ExitMethodWithError("ledgerRepository.SettleRequest", err, "requestID", p.RequestID)
		return nil, err
	}
	if req.Status.Terminal() {
		err = &domain.ErrTerminalState{RequestID: req.ID, Status: req.Status}
		logger.ExitMethodWithError("ledgerRepository.SettleRequest", err, "requestID", p.RequestID)
		return nil, err
	}

	txn, err := executeTransfer(ctx, tx, repository.TransferParams{
		SenderID:       req.SenderID,
		ReceiverID:     req.ReceiverID,
		AmountCents:    req.AmountCents,
		Type:           p.Type,
		Reference:      p.Reference,
		IdempotencyKey: p.IdempotencyKey,
		AllowOverdraft: p.AllowOverdraft,
	})
	if err != nil {
		logger.ExitMethodWithError("ledgerRepository.SettleRequest", err, "requestID", p.RequestID)
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3`,
		domain.RequestStatusAccepted, time.Now(), p.RequestID)
	if err != nil {
		err = fmt.Errorf("failed to update request status: %w", mapError(err))
		logger.ExitMethodWithError("ledgerRepository.SettleRequest", err, "requestID", p.RequestID)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("ledgerRepository.SettleRequest", err, "requestID", p.RequestID)
		return nil, err
	}

	logger.ExitMethod("ledgerRepository.SettleRequest", "requestID", p.RequestID, "transactionID", txn.TransactionID)
	return txn, nil
}

func (r *ledgerRepository) UpdateRequestStatus(ctx context.Context, requestID int64, status domain.RequestStatus) (*domain.MoneyRequest, error) {
	logger.EnterMethod("ledgerRepository.UpdateRequestStatus", "requestID", requestID, "status", status)

	if status == domain.RequestStatusAccepted {
		return nil, &domain.ErrValidation{Field: "status", Message: "acceptance must settle through SettleRequest"}
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	req, err := lockRequest(ctx, tx, requestID)
	if err != nil {
		logger.ExitMethodWithError("ledgerRepository.UpdateRequestStatus", err, "requestID", requestID)
		return nil, err
	}
	if req.Status.Terminal() {
		err = &domain.ErrTerminalState{RequestID: req.ID, Status: req.Status}
		logger.ExitMethodWithError("ledgerRepository.UpdateRequestStatus", err, "requestID", requestID)
		return nil, err
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3`,
		status, now, requestID)
	if err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("ledgerRepository.UpdateRequestStatus", err, "requestID", requestID)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		err = mapError(err)
		logger.ExitMethodWithError("ledgerRepository.UpdateRequestStatus", err, "requestID", requestID)
		return nil, err
	}

	req.Status = status
	req.UpdatedOn = now
	logger.ExitMethod("ledgerRepository.UpdateRequestStatus", "requestID", requestID, "status", status)
	return req, nil
}

func lockRequest(ctx context.Context, tx *sql.Tx, id int64) (*domain.MoneyRequest, error) {
	req := &domain.MoneyRequest{}
	err := tx.QueryRowContext(ctx, `
		SELECT id, sender_id, receiver_id, amount_cents, COALESCE(description, ''),
		       status, created_at, updated_at
		FROM requests WHERE id = $1 FOR UPDATE`,
		id).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.AmountCents, &req.Description,
		&req.Status, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrNotFound{Resource: "request", ID: id}
		}
		return nil, mapError(err)
	}
	return req, nil
}

func (r *ledgerRepository) AuditDrift(ctx context.Context) ([]repository.AccountDrift, error) {
	logger.EnterMethod("ledgerRepository.AuditDrift")

	// For every account: balance must equal the initial balance plus deposits
	// plus money received minus money sent. Anything else is drift.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,
		       balance_cents - initial_balance_cents - money_deposited_cents
		           - money_received_cents + money_sent_cents AS drift_cents
		FROM accounts
		WHERE balance_cents - initial_balance_cents - money_deposited_cents
		          - money_received_cents + money_sent_cents <> 0
		ORDER BY id`)
	if err != nil {
		logger.ExitMethodWithError("ledgerRepository.AuditDrift", err)
		return nil, err
	}
	defer rows.Close()

	drifts := []repository.AccountDrift{}
	for rows.Next() {
		var d repository.AccountDrift
		if err := rows.Scan(&d.AccountID, &d.DriftCents); err != nil {
			logger.ExitMethodWithError("ledgerRepository.AuditDrift", err)
			return nil, err
		}
		drifts = append(drifts, d)
	}

	logger.ExitMethod("ledgerRepository.AuditDrift", "driftCount", len(drifts))
	return drifts, rows.Err()
}
