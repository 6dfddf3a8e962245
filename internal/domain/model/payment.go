package model

import (
	"time"
)

const PaymentStatusPaid = "paid"

// Payment is created exactly once per confirmed external payment. The
// transaction id comes from the payment provider and is the idempotency key.
// ContestID is a logical reference resolved by value, never validated for
// existence.
type Payment struct {
	ID            string    `json:"id"`
	ContestID     string    `json:"contest_id"`
	ContestName   string    `json:"contest_name"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transaction_id"`
	PaymentStatus string    `json:"payment_status"`
	PaidAt        time.Time `json:"paid_at"`
}
