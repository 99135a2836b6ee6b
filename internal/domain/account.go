package domain

import "time"

// DepositSource identifies where externally deposited funds came from.
type DepositSource string

const (
	DepositSourceBankTransfer DepositSource = "bankTransfer"
	DepositSourceCard         DepositSource = "card"
	DepositSourceCheque       DepositSource = "cheque"
)

type Account struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	PhoneNumber          string    `json:"phone_number"`
	Address              string    `json:"address"`
	IdentificationType   string    `json:"identification_type"`
	IdentificationNumber string    `json:"identification_number"`
	PasswordHash         string    `json:"-"`
	BalanceCents         int64     `json:"balance_cents"`
	InitialBalanceCents  int64     `json:"-"`
	MoneySentCents       int64     `json:"money_sent_cents"`
	MoneyReceivedCents   int64     `json:"money_received_cents"`
	MoneyDepositedCents  int64     `json:"money_deposited_cents"`
	RequestReceived      int32     `json:"request_received"`
	IsAdmin              bool      `json:"is_admin"`
	IsVerified           bool      `json:"is_verified"`
	ImageURL             string    `json:"image_url"`
	CreatedOn            time.Time `json:"created_on"`
	UpdatedOn            time.Time `json:"updated_on"`
}

// DepositRecord is one entry in an account's append-only deposit history.
// Records are written in the same database transaction as the balance credit
// and are never edited afterwards.
type DepositRecord struct {
	ID           string        `json:"id"`
	AccountID    int64         `json:"account_id"`
	AmountCents  int64         `json:"amount_cents"`
	Source       DepositSource `json:"source"`
	// Source-specific identifying fields. Only the ones matching Source are set.
	AccountNumber string    `json:"account_number,omitempty"`
	IFSCCode      string    `json:"ifsc_code,omitempty"`
	CardNumber    string    `json:"card_number,omitempty"`
	ChequeNumber  string    `json:"cheque_number,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
}
