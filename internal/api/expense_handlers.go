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

func validateExpense(req *models.ExpenseRequest) string {
	if !req.Category.Valid() {
		return "invalid expense category"
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return "description is required"
	}
	if req.Amount <= 0 {
		return "amount must be greater than zero"
	}
	if !parking.ValidDate(req.Date) {
		return "invalid date, expected YYYY-MM-DD"
	}
	return ""
}

// createExpenseHandler handles POST /api/expenses
func createExpenseHandler(c echo.Context) error {
	var req models.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := validateExpense(&req); msg != "" {
		return badRequest(c, msg)
	}

	e := &models.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Recurring:   req.Recurring,
	}

	if err := expenseRepo.Create(e); err != nil {
		return internalError(c, "expense create failed", err)
	}

	return c.JSON(http.StatusCreated, e)
}

// listExpensesHandler handles GET /api/expenses?month=YYYY-MM
// (defaults to the current month)
func listExpensesHandler(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if !parking.ValidMonth(month) {
		return badRequest(c, "invalid month, expected YYYY-MM")
	}

	expenses, err := expenseRepo.ListByMonth(month)
	if err != nil {
		return internalError(c, "expense list failed", err)
	}

	return c.JSON(http.StatusOK, expenses)
}

// updateExpenseHandler handles PUT /api/expenses/:id
func updateExpenseHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense ID")
	}

	var req models.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := validateExpense(&req); msg != "" {
		return badRequest(c, msg)
	}

	e := &models.Expense{
		ID:          id,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Recurring:   req.Recurring,
	}

	if err := expenseRepo.Update(e); err != nil {
		if errors.Is(err, database.ErrExpenseNotFound) {
			return notFound(c, "expense not found")
		}
		return internalError(c, "expense update failed", err)
	}

	return c.JSON(http.StatusOK, e)
}

// deleteExpenseHandler handles DELETE /api/expenses/:id
func deleteExpenseHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense ID")
	}

	if err := expenseRepo.Delete(id); err != nil {
		if errors.Is(err, database.ErrExpenseNotFound) {
			return notFound(c, "expense not found")
		}
		return internalError(c, "expense delete failed", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "expense removed"})
}
