package database

import (
	"github.com/dantetesta/estacionamento/internal/models"
)

// SettingsRepo handles the single-row lot settings
type SettingsRepo struct{}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{}
}

// Get retrieves the lot settings
func (r *SettingsRepo) Get() (*models.Settings, error) {
	s := &models.Settings{}
	err := DB.QueryRow(`
		SELECT lot_name, rate_small, rate_medium, rate_large, rate_truck, rate_bus
		FROM settings WHERE id = 1
	`).Scan(&s.LotName, &s.RateSmall, &s.RateMedium, &s.RateLarge, &s.RateTruck, &s.RateBus)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the lot settings
func (r *SettingsRepo) Update(s *models.Settings) error {
	_, err := DB.Exec(`
		UPDATE settings
		SET lot_name = ?, rate_small = ?, rate_medium = ?, rate_large = ?,
		    rate_truck = ?, rate_bus = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, s.LotName, s.RateSmall, s.RateMedium, s.RateLarge, s.RateTruck, s.RateBus)
	return err
}
