package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dantetesta/estacionamento/internal/database"
	"github.com/dantetesta/estacionamento/internal/parking"
)

// dailyReportHandler handles GET /api/reports/daily?date=YYYY-MM-DD
// (defaults to today)
func dailyReportHandler(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !parking.ValidDate(date) {
		return badRequest(c, "invalid date, expected YYYY-MM-DD")
	}

	report, err := reportRepo.Daily(date)
	if err != nil {
		return internalError(c, "daily report failed", err)
	}

	return c.JSON(http.StatusOK, report)
}

// weeklyReportHandler handles GET /api/reports/weekly?start=YYYY-MM-DD
// covering seven days from start (defaults to the current week,
// starting Monday)
func weeklyReportHandler(c echo.Context) error {
	start := c.QueryParam("start")
	if start == "" {
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7 // days since Monday
		start = now.AddDate(0, 0, -offset).Format("2006-01-02")
	}
	if !parking.ValidDate(start) {
		return badRequest(c, "invalid start date, expected YYYY-MM-DD")
	}

	startDay, _ := time.Parse("2006-01-02", start)
	end := startDay.AddDate(0, 0, 6).Format("2006-01-02")

	report, err := reportRepo.Range(start, end)
	if err != nil {
		return internalError(c, "weekly report failed", err)
	}

	return c.JSON(http.StatusOK, report)
}

// monthlyReportHandler handles GET /api/reports/monthly?month=YYYY-MM
// (defaults to the current month)
func monthlyReportHandler(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if !parking.ValidMonth(month) {
		return badRequest(c, "invalid month, expected YYYY-MM")
	}

	report, err := reportRepo.Monthly(month)
	if err != nil {
		return internalError(c, "monthly report failed", err)
	}

	byMethod, err := reportRepo.RevenueByMethod(month)
	if err != nil {
		return internalError(c, "monthly report failed", err)
	}
	byType, err := reportRepo.RevenueByType(month)
	if err != nil {
		return internalError(c, "monthly report failed", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"report":    report,
		"by_method": byMethod,
		"by_type":   byType,
	})
}

// dashboardHandler handles GET /api/dashboard
func dashboardHandler(c echo.Context) error {
	now := time.Now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	daily, err := reportRepo.Daily(today)
	if err != nil {
		return internalError(c, "dashboard failed", err)
	}
	monthly, err := reportRepo.Monthly(month)
	if err != nil {
		return internalError(c, "dashboard failed", err)
	}

	parked, err := vehicleRepo.CountOpen()
	if err != nil {
		return internalError(c, "dashboard failed", err)
	}

	recent, err := vehicleRepo.List(database.VehicleFilter{Limit: 10})
	if err != nil {
		return internalError(c, "dashboard failed", err)
	}

	unpaid, err := subscriberRepo.ListUnpaidForMonth(month)
	if err != nil {
		return internalError(c, "dashboard failed", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"currently_parked":    parked,
		"entries_today":       daily.Entries,
		"exits_today":         daily.Exits,
		"revenue_today":       daily.Revenue,
		"expenses_today":      daily.Expenses,
		"revenue_month":       monthly.Revenue,
		"expenses_month":      monthly.Expenses,
		"by_type":             daily.ByType,
		"recent_vehicles":     recent,
		"unpaid_subscribers":  unpaid,
	})
}
