package models

import "time"

// VehicleType classifies a parked vehicle for billing
type VehicleType string

const (
	VehicleSmall  VehicleType = "small"  // passenger car
	VehicleMedium VehicleType = "medium" // SUV
	VehicleLarge  VehicleType = "large"  // van
	VehicleTruck  VehicleType = "truck"
	VehicleBus    VehicleType = "bus"
)

// VehicleTypes lists every valid vehicle type
var VehicleTypes = []VehicleType{VehicleSmall, VehicleMedium, VehicleLarge, VehicleTruck, VehicleBus}

// Valid reports whether t is a known vehicle type
func (t VehicleType) Valid() bool {
	for _, v := range VehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// PaymentMethod is how a charge was settled
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentPix    PaymentMethod = "pix"
	PaymentDebit  PaymentMethod = "debit"
	PaymentCredit PaymentMethod = "credit"
)

// PaymentMethods lists every valid payment method
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentPix, PaymentDebit, PaymentCredit}

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Vehicle represents one stay: a check-in and, once closed, a check-out
type Vehicle struct {
	ID            int64         `json:"id"`
	Plate         string        `json:"plate"`
	Type          VehicleType   `json:"type"`
	SubscriberID  *int64        `json:"subscriber_id,omitempty"`
	TicketCode    string        `json:"ticket_code"`
	EnteredAt     time.Time     `json:"entered_at"`
	ExitedAt      *time.Time    `json:"exited_at,omitempty"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Paid          bool          `json:"paid"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`

	// Joined from subscribers when present
	SubscriberName string `json:"subscriber_name,omitempty"`
}

// Open reports whether the vehicle is still in the lot
func (v *Vehicle) Open() bool {
	return v.ExitedAt == nil
}

// CheckInRequest represents the request body for registering an entry
type CheckInRequest struct {
	Plate        string      `json:"plate"`
	Type         VehicleType `json:"type"`
	SubscriberID *int64      `json:"subscriber_id,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// CheckOutRequest represents the request body for registering an exit
type CheckOutRequest struct {
	VehicleID     int64         `json:"vehicle_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
