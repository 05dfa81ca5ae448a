package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Listing page size
const pageSize = 20

// healthCheck handles GET /api/health
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// parseID parses a numeric path parameter
func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// pageOffset converts the ?page= query parameter (1-based) to an offset
func pageOffset(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": msg})
}

func internalError(c echo.Context, what string, err error) error {
	log.Errorw(what, "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "an internal error occurred, please try again",
	})
}
