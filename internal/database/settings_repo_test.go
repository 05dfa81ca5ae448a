package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantetesta/estacionamento/internal/models"
)

func TestSettingsRepoDefaults(t *testing.T) {
	repo := NewSettingsRepo()

	s, err := repo.Get()
	require.NoError(t, err)
	require.Equal(t, "EstacionaFacil", s.LotName)
	require.Equal(t, 10.0, s.RateSmall)
	require.Equal(t, 20.0, s.RateMedium)
	require.Equal(t, 30.0, s.RateLarge)
	require.Equal(t, 50.0, s.RateTruck)
	require.Equal(t, 60.0, s.RateBus)
}

func TestSettingsRepoUpdate(t *testing.T) {
	repo := NewSettingsRepo()

	orig, err := repo.Get()
	require.NoError(t, err)
	defer repo.Update(orig)

	updated := &models.Settings{
		LotName:    "Patio Central",
		RateSmall:  12,
		RateMedium: 22,
		RateLarge:  32,
		RateTruck:  55,
		RateBus:    65,
	}
	require.NoError(t, repo.Update(updated))

	got, err := repo.Get()
	require.NoError(t, err)
	require.Equal(t, "Patio Central", got.LotName)
	require.Equal(t, 12.0, got.RateSmall)
	require.Equal(t, 65.0, got.RateBus)
}
