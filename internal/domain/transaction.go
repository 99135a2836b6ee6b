package domain

import "time"

type TransactionType string

const (
	TransactionTypeTransfer          TransactionType = "TRANSFER"
	TransactionTypeRequestSettlement TransactionType = "REQUEST_SETTLEMENT"
)

// Transaction is the immutable ledger record of one completed, zero-sum
// balance movement: the sender was debited and the receiver credited by
// AmountCents in the same database transaction that inserted this row.
type Transaction struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transaction_id"` // short external reference
	SenderID      int64           `json:"sender_id"`
	ReceiverID    int64           `json:"receiver_id"`
	AmountCents   int64           `json:"amount_cents"`
	Type          TransactionType `json:"transaction_type"`
	Reference     string          `json:"reference"`
	CreatedOn     time.Time       `json:"created_on"`

	// Display fields populated on listing reads only.
	SenderName    string `json:"sender_name,omitempty"`
	SenderImage   string `json:"sender_image,omitempty"`
	ReceiverName  string `json:"receiver_name,omitempty"`
	ReceiverImage string `json:"receiver_image,omitempty"`
}

// ListDirection selects which side of the ledger a listing covers.
type ListDirection string

const (
	DirectionSent     ListDirection = "sent"
	DirectionReceived ListDirection = "received"
	DirectionBoth     ListDirection = "both"
)
