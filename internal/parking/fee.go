package parking

import (
	"math"
	"time"

	"github.com/dantetesta/estacionamento/internal/models"
)

// Fee is the charge computed for a stay at exit time.
type Fee struct {
	Hours  int     `json:"hours"`
	Amount float64 `json:"amount"`
	Exempt bool    `json:"exempt"`
}

// CalculateFee computes the fee for a stay. Hours are rounded up to the
// next whole hour. Billing is the class's daily rate; subscriber vehicles
// are exempt.
func CalculateFee(enteredAt, exitAt time.Time, vtype models.VehicleType, rates *models.Settings, subscriber bool) Fee {
	elapsed := exitAt.Sub(enteredAt)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := int(math.Ceil(elapsed.Hours()))
	if hours < 1 {
		hours = 1
	}

	if subscriber {
		return Fee{Hours: hours, Amount: 0, Exempt: true}
	}
	return Fee{Hours: hours, Amount: rates.RateFor(vtype)}
}
