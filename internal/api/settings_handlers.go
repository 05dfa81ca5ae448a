package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dantetesta/estacionamento/internal/models"
)

// getSettingsHandler handles GET /api/settings
func getSettingsHandler(c echo.Context) error {
	s, err := settingsRepo.Get()
	if err != nil {
		return internalError(c, "settings lookup failed", err)
	}
	return c.JSON(http.StatusOK, s)
}

// updateSettingsHandler handles PUT /api/settings
func updateSettingsHandler(c echo.Context) error {
	var req models.Settings
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	req.LotName = strings.TrimSpace(req.LotName)
	if req.LotName == "" {
		return badRequest(c, "lot name is required")
	}
	for _, rate := range []float64{req.RateSmall, req.RateMedium, req.RateLarge, req.RateTruck, req.RateBus} {
		if rate < 0 {
			return badRequest(c, "rates cannot be negative")
		}
	}

	if err := settingsRepo.Update(&req); err != nil {
		return internalError(c, "settings update failed", err)
	}

	return c.JSON(http.StatusOK, &req)
}
