package domain

import "fmt"

// Error types shared across services and the HTTP layer. Every error below is
// reported only when the operation had no effect; the ledger never commits a
// partial movement.

// ErrNotFound indicates a referenced account or request does not exist.
type ErrNotFound struct {
	Resource string
	ID       int64
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}

// ErrValidation indicates missing or malformed input.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrUnverifiedAccount indicates a transfer party failed the verification gate.
type ErrUnverifiedAccount struct {
	AccountID int64
}

func (e *ErrUnverifiedAccount) Error() string {
	return fmt.Sprintf("account not verified: %d", e.AccountID)
}

// ErrInvalidAmount indicates a non-positive or absent amount.
type ErrInvalidAmount struct {
	AmountCents int64
}

func (e *ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount: %d", e.AmountCents)
}

// ErrSelfTransfer indicates sender and receiver are the same account.
type ErrSelfTransfer struct {
	AccountID int64
}

func (e *ErrSelfTransfer) Error() string {
	return fmt.Sprintf("cannot transfer to self: %d", e.AccountID)
}

// ErrInsufficientFunds indicates the sender's balance does not cover the amount.
type ErrInsufficientFunds struct {
	AvailableCents int64
	RequiredCents  int64
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: available=%d required=%d", e.AvailableCents, e.RequiredCents)
}

// ErrConflict indicates concurrent-update contention. It is the only error a
// caller may retry automatically.
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "concurrent update conflict"
}

// ErrTerminalState indicates a transition was attempted on a request that is
// already accepted or rejected.
type ErrTerminalState struct {
	RequestID int64
	Status    RequestStatus
}

func (e *ErrTerminalState) Error() string {
	return fmt.Sprintf("request %d is already %s", e.RequestID, e.Status)
}

// ErrDuplicate indicates an idempotency-key collision with a different payload.
type ErrDuplicate struct {
	Key string
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("duplicate operation: %s", e.Key)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}
