package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dantetesta/estacionamento/internal/database"
	"github.com/dantetesta/estacionamento/internal/models"
	"github.com/dantetesta/estacionamento/internal/parking"
)

// checkInHandler handles POST /api/vehicles/checkin
func checkInHandler(c echo.Context) error {
	var req models.CheckInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	plate := parking.NormalizePlate(req.Plate)
	if plate == "" {
		return badRequest(c, "plate is required")
	}
	if !parking.ValidPlate(plate) {
		return badRequest(c, "invalid plate")
	}
	if !req.Type.Valid() {
		return badRequest(c, "invalid vehicle type")
	}

	// A subscriber id may come from the form; otherwise recognise the
	// plate of a registered active subscriber automatically
	subscriberID := req.SubscriberID
	if subscriberID == nil {
		if sub, err := subscriberRepo.GetByPlate(plate); err == nil && sub.Active {
			subscriberID = &sub.ID
		}
	} else {
		if _, err := subscriberRepo.GetByID(*subscriberID); err != nil {
			if errors.Is(err, database.ErrSubscriberNotFound) {
				return badRequest(c, "unknown subscriber")
			}
			return internalError(c, "subscriber lookup failed", err)
		}
	}

	v := &models.Vehicle{
		Plate:        plate,
		Type:         req.Type,
		SubscriberID: subscriberID,
		TicketCode:   uuid.NewString(),
		EnteredAt:    time.Now(),
		Notes:        req.Notes,
	}

	if err := vehicleRepo.CheckIn(v); err != nil {
		if errors.Is(err, database.ErrAlreadyParked) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "this vehicle is already in the lot",
			})
		}
		return internalError(c, "check-in failed", err)
	}

	return c.JSON(http.StatusCreated, v)
}

// getOpenStayHandler handles GET /api/vehicles/open?plate= and returns
// the open stay together with a fee preview
func getOpenStayHandler(c echo.Context) error {
	plate := parking.NormalizePlate(c.QueryParam("plate"))
	if plate == "" {
		return badRequest(c, "plate is required")
	}

	v, err := vehicleRepo.GetOpenByPlate(plate)
	if err != nil {
		if errors.Is(err, database.ErrVehicleNotFound) {
			return notFound(c, "vehicle not found or already left the lot")
		}
		return internalError(c, "stay lookup failed", err)
	}

	rates, err := settingsRepo.Get()
	if err != nil {
		return internalError(c, "settings lookup failed", err)
	}

	fee := parking.CalculateFee(v.EnteredAt, time.Now(), v.Type, rates, v.SubscriberID != nil)

	return c.JSON(http.StatusOK, map[string]any{
		"vehicle": v,
		"fee":     fee,
	})
}

// checkOutHandler handles POST /api/vehicles/checkout
func checkOutHandler(c echo.Context) error {
	var req models.CheckOutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.VehicleID == 0 {
		return badRequest(c, "vehicle_id is required")
	}
	if !req.PaymentMethod.Valid() {
		return badRequest(c, "invalid payment method")
	}
	if req.Amount < 0 {
		return badRequest(c, "invalid amount")
	}

	if err := vehicleRepo.CheckOut(req.VehicleID, time.Now(), req.Amount, req.PaymentMethod); err != nil {
		switch {
		case errors.Is(err, database.ErrVehicleNotFound):
			return notFound(c, "vehicle not found")
		case errors.Is(err, database.ErrStayClosed):
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "this stay is already closed",
			})
		default:
			return internalError(c, "check-out failed", err)
		}
	}

	v, err := vehicleRepo.GetByID(req.VehicleID)
	if err != nil {
		return internalError(c, "stay lookup failed", err)
	}

	return c.JSON(http.StatusOK, v)
}

// listVehiclesHandler handles GET /api/vehicles with optional filters
// open=1, plate= and date=YYYY-MM-DD
func listVehiclesHandler(c echo.Context) error {
	f := database.VehicleFilter{
		OpenOnly: c.QueryParam("open") == "1",
		Plate:    parking.NormalizePlate(c.QueryParam("plate")),
		Date:     c.QueryParam("date"),
		Limit:    pageSize,
		Offset:   pageOffset(c),
	}
	if f.Date != "" && !parking.ValidDate(f.Date) {
		return badRequest(c, "invalid date, expected YYYY-MM-DD")
	}

	vehicles, err := vehicleRepo.List(f)
	if err != nil {
		return internalError(c, "vehicle list failed", err)
	}

	return c.JSON(http.StatusOK, vehicles)
}
