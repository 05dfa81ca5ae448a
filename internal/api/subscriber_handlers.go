package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dantetesta/estacionamento/internal/database"
	"github.com/dantetesta/estacionamento/internal/models"
	"github.com/dantetesta/estacionamento/internal/parking"
)

// createSubscriberHandler handles POST /api/subscribers
func createSubscriberHandler(c echo.Context) error {
	var req models.CreateSubscriberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest(c, "name is required")
	}

	plate := parking.NormalizePlate(req.Plate)
	if !parking.ValidPlate(plate) {
		return badRequest(c, "invalid plate")
	}
	if req.Phone != "" && !parking.ValidPhone(req.Phone) {
		return badRequest(c, "invalid phone")
	}
	if req.Email != "" && !parking.ValidEmail(req.Email) {
		return badRequest(c, "invalid email")
	}
	if req.MonthlyFee <= 0 {
		return badRequest(c, "monthly fee must be greater than zero")
	}
	if req.DueDay < 1 || req.DueDay > 31 {
		return badRequest(c, "due day must be between 1 and 31")
	}

	s := &models.Subscriber{
		Name:       req.Name,
		Plate:      plate,
		Phone:      req.Phone,
		Email:      req.Email,
		MonthlyFee: req.MonthlyFee,
		DueDay:     req.DueDay,
		Notes:      req.Notes,
	}

	if err := subscriberRepo.Create(s); err != nil {
		if errors.Is(err, database.ErrPlateTaken) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "this plate is already registered to a subscriber",
			})
		}
		return internalError(c, "subscriber create failed", err)
	}

	return c.JSON(http.StatusCreated, s)
}

// listSubscribersHandler handles GET /api/subscribers?active=1
func listSubscribersHandler(c echo.Context) error {
	subs, err := subscriberRepo.List(c.QueryParam("active") == "1")
	if err != nil {
		return internalError(c, "subscriber list failed", err)
	}
	return c.JSON(http.StatusOK, subs)
}

// getSubscriberHandler handles GET /api/subscribers/:id
func getSubscriberHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscriber ID")
	}

	s, err := subscriberRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrSubscriberNotFound) {
			return notFound(c, "subscriber not found")
		}
		return internalError(c, "subscriber lookup failed", err)
	}

	return c.JSON(http.StatusOK, s)
}

// updateSubscriberHandler handles PUT /api/subscribers/:id
func updateSubscriberHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscriber ID")
	}

	s, err := subscriberRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrSubscriberNotFound) {
			return notFound(c, "subscriber not found")
		}
		return internalError(c, "subscriber lookup failed", err)
	}

	var req models.UpdateSubscriberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return badRequest(c, "name is required")
		}
		s.Name = name
	}
	if req.Phone != nil {
		if *req.Phone != "" && !parking.ValidPhone(*req.Phone) {
			return badRequest(c, "invalid phone")
		}
		s.Phone = *req.Phone
	}
	if req.Email != nil {
		if *req.Email != "" && !parking.ValidEmail(*req.Email) {
			return badRequest(c, "invalid email")
		}
		s.Email = *req.Email
	}
	if req.MonthlyFee != nil {
		if *req.MonthlyFee <= 0 {
			return badRequest(c, "monthly fee must be greater than zero")
		}
		s.MonthlyFee = *req.MonthlyFee
	}
	if req.DueDay != nil {
		if *req.DueDay < 1 || *req.DueDay > 31 {
			return badRequest(c, "due day must be between 1 and 31")
		}
		s.DueDay = *req.DueDay
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}

	if err := subscriberRepo.Update(s); err != nil {
		return internalError(c, "subscriber update failed", err)
	}

	return c.JSON(http.StatusOK, s)
}

// deleteSubscriberHandler handles DELETE /api/subscribers/:id
func deleteSubscriberHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscriber ID")
	}

	if err := subscriberRepo.Delete(id); err != nil {
		if errors.Is(err, database.ErrSubscriberNotFound) {
			return notFound(c, "subscriber not found")
		}
		return internalError(c, "subscriber delete failed", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "subscriber removed"})
}

// listPaymentsHandler handles GET /api/subscribers/:id/payments
func listPaymentsHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscriber ID")
	}

	payments, err := subscriberRepo.ListPayments(id)
	if err != nil {
		return internalError(c, "payment list failed", err)
	}

	return c.JSON(http.StatusOK, payments)
}

// recordPaymentHandler handles POST /api/subscribers/:id/payments
func recordPaymentHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscriber ID")
	}

	sub, err := subscriberRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrSubscriberNotFound) {
			return notFound(c, "subscriber not found")
		}
		return internalError(c, "subscriber lookup failed", err)
	}

	var req models.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if !parking.ValidMonth(req.ReferenceMonth) {
		return badRequest(c, "invalid reference month, expected YYYY-MM")
	}
	if !req.PaymentMethod.Valid() {
		return badRequest(c, "invalid payment method")
	}

	amount := req.Amount
	if amount <= 0 {
		amount = sub.MonthlyFee
	}

	now := time.Now()
	p := &models.SubscriberPayment{
		SubscriberID:   id,
		ReferenceMonth: req.ReferenceMonth,
		Amount:         amount,
		PaidAt:         &now,
		Paid:           true,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	}

	if err := subscriberRepo.RecordPayment(p); err != nil {
		if errors.Is(err, database.ErrMonthAlreadyBilled) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "this month is already recorded for the subscriber",
			})
		}
		return internalError(c, "payment record failed", err)
	}

	return c.JSON(http.StatusCreated, p)
}

// markPaymentPaidHandler handles PUT /api/subscribers/:id/payments/:paymentId/pay
func markPaymentPaidHandler(c echo.Context) error {
	paymentID, err := parseID(c.Param("paymentId"))
	if err != nil {
		return badRequest(c, "invalid payment ID")
	}

	method := models.PaymentMethod(c.QueryParam("method"))
	if !method.Valid() {
		return badRequest(c, "invalid payment method")
	}

	if err := subscriberRepo.MarkPaymentPaid(paymentID, time.Now(), method); err != nil {
		if errors.Is(err, database.ErrPaymentNotFound) {
			return notFound(c, "payment not found")
		}
		return internalError(c, "payment update failed", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "payment settled"})
}
