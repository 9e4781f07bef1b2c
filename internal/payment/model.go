// Package payment provides Stripe integration for the premium unlock purchase.
package payment

import "time"

// PaymentStatus represents the status of a payment record.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// PaymentRecord represents a provisional payment record for a Stripe Checkout Session.
type PaymentRecord struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"` // Stripe Checkout Session ID
	Status    string     `json:"status"`     // pending, succeeded, failed, canceled
	Amount    int64      `json:"amount"`     // Total amount in the smallest currency unit
	Currency  string     `json:"currency"`
	Customer  string     `json:"customer,omitempty"` // Stripe customer reference, set once paid
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
