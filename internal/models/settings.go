package models

// Settings holds the lot configuration, including the daily rate per
// vehicle class
type Settings struct {
	LotName     string  `json:"lot_name"`
	RateSmall   float64 `json:"rate_small"`
	RateMedium  float64 `json:"rate_medium"`
	RateLarge   float64 `json:"rate_large"`
	RateTruck   float64 `json:"rate_truck"`
	RateBus     float64 `json:"rate_bus"`
}

// RateFor returns the daily rate for the given vehicle type
func (s *Settings) RateFor(t VehicleType) float64 {
	switch t {
	case VehicleSmall:
		return s.RateSmall
	case VehicleMedium:
		return s.RateMedium
	case VehicleLarge:
		return s.RateLarge
	case VehicleTruck:
		return s.RateTruck
	case VehicleBus:
		return s.RateBus
	}
	return 0
}
