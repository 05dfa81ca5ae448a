package models

import "time"

// Subscriber represents a monthly subscriber ("mensalista") whose
// vehicle is exempt from per-visit charges
type Subscriber struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Plate      string    `json:"plate"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	MonthlyFee float64   `json:"monthly_fee"`
	DueDay     int       `json:"due_day"`
	Active     bool      `json:"active"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubscriberPayment represents one monthly charge for a subscriber
type SubscriberPayment struct {
	ID             int64         `json:"id"`
	SubscriberID   int64         `json:"subscriber_id"`
	ReferenceMonth string        `json:"reference_month"` // YYYY-MM
	Amount         float64       `json:"amount"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	Paid           bool          `json:"paid"`
	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CreateSubscriberRequest represents the request body for registering a subscriber
type CreateSubscriberRequest struct {
	Name       string  `json:"name"`
	Plate      string  `json:"plate"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty"`
	MonthlyFee float64 `json:"monthly_fee"`
	DueDay     int     `json:"due_day"`
	Notes      string  `json:"notes,omitempty"`
}

// UpdateSubscriberRequest represents the request body for updating a subscriber
type UpdateSubscriberRequest struct {
	Name       *string  `json:"name,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Email      *string  `json:"email,omitempty"`
	MonthlyFee *float64 `json:"monthly_fee,omitempty"`
	DueDay     *int     `json:"due_day,omitempty"`
	Active     *bool    `json:"active,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// RecordPaymentRequest represents the request body for recording a monthly payment
type RecordPaymentRequest struct {
	ReferenceMonth string        `json:"reference_month"` // YYYY-MM
	Amount         float64       `json:"amount"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Notes          string        `json:"notes,omitempty"`
}
