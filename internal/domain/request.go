package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

// MoneyRequest is a pending offer of AmountCents from the sender to the
// receiver, resolved by the receiver. Accepting settles it: exactly one
// Transaction debiting the sender is created and the status flips to accepted
// in the same database transaction.
type MoneyRequest struct {
	ID          int64         `json:"id"`
	SenderID    int64         `json:"sender_id"`
	ReceiverID  int64         `json:"receiver_id"`
	AmountCents int64         `json:"amount_cents"`
	Description string        `json:"description"`
	Status      RequestStatus `json:"status"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`

	SenderName    string `json:"sender_name,omitempty"`
	SenderImage   string `json:"sender_image,omitempty"`
	ReceiverName  string `json:"receiver_name,omitempty"`
	ReceiverImage string `json:"receiver_image,omitempty"`
}
