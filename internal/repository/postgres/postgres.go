package postgres

import (
	"database/sql"
	"errors"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/repository"

	"github.com/lib/pq"
)

// Store bundles one repository per aggregate over a shared connection pool.
type Store struct {
	db *sql.DB

	Accounts     repository.AccountRepository
	Transactions repository.TransactionRepository
	Deposits     repository.DepositRepository
	Requests     repository.RequestRepository
	Ledger       repository.LedgerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Accounts:     NewAccountRepository(db),
		Transactions: NewTransactionRepository(db),
		Deposits:     NewDepositRepository(db),
		Requests:     NewRequestRepository(db),
		Ledger:       NewLedgerRepository(db),
	}
}

// Postgres error codes that have a domain meaning.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
)

// mapError translates driver errors into the domain taxonomy. Serialization
// failures and deadlocks become retryable conflicts; unique violations become
// duplicates. Every foreign key in the schema points at accounts, so a
// foreign-key violation means a referenced account does not exist.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqSerializationFailure, pqDeadlockDetected:
			return &domain.ErrConflict{Message: "concurrent update conflict, retry the operation"}
		case pqUniqueViolation:
			return &domain.ErrDuplicate{Key: pqErr.Constraint}
		case pqForeignKeyViolation:
			return &domain.ErrNotFound{Resource: "account"}
		}
	}
	return err
}
