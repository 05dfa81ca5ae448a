package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dantetesta/estacionamento/internal/auth"
	"github.com/dantetesta/estacionamento/internal/config"
	"github.com/dantetesta/estacionamento/internal/database"
)

// Package-level services shared by the handlers, set in RegisterRoutes
var (
	authService    *auth.Service
	userRepo       *database.UserRepo
	vehicleRepo    *database.VehicleRepo
	subscriberRepo *database.SubscriberRepo
	expenseRepo    *database.ExpenseRepo
	settingsRepo   *database.SettingsRepo
	reportRepo     *database.ReportRepo
	auditRepo      *database.AuditRepo
	cfg            config.Config
	log            *zap.SugaredLogger
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api *echo.Group, authSvc *auth.Service, conf config.Config, logger *zap.SugaredLogger) {
	authService = authSvc
	userRepo = database.NewUserRepo()
	vehicleRepo = database.NewVehicleRepo()
	subscriberRepo = database.NewSubscriberRepo()
	expenseRepo = database.NewExpenseRepo()
	settingsRepo = database.NewSettingsRepo()
	reportRepo = database.NewReportRepo()
	auditRepo = database.NewAuditRepo()
	cfg = conf
	log = logger

	// Health check (public, no session)
	api.GET("/health", healthCheck)

	// Every other route runs the session bootstrap first, then the
	// anti-forgery check for state-changing methods
	api.Use(auth.Bootstrap(authSvc))
	api.Use(auth.RequireCSRF())

	// Auth routes (login/logout/me need a session but not authentication)
	authGroup := api.Group("/auth")
	authGroup.POST("/login", loginHandler)
	authGroup.POST("/logout", logoutHandler)
	authGroup.GET("/me", getCurrentUser)

	// Profile (own account) routes
	profile := api.Group("/profile")
	profile.Use(auth.RequireAuth())
	profile.GET("", getProfileHandler)
	profile.PUT("", updateProfileHandler)

	// Vehicle movement routes
	vehicles := api.Group("/vehicles")
	vehicles.Use(auth.RequireAuth())
	vehicles.GET("", listVehiclesHandler)
	vehicles.POST("/checkin", checkInHandler)
	vehicles.POST("/checkout", checkOutHandler)
	vehicles.GET("/open", getOpenStayHandler)

	// Subscriber ("mensalista") routes
	subscribers := api.Group("/subscribers")
	subscribers.Use(auth.RequireAuth())
	subscribers.GET("", listSubscribersHandler)
	subscribers.POST("", createSubscriberHandler)
	subscribers.GET("/:id", getSubscriberHandler)
	subscribers.PUT("/:id", updateSubscriberHandler)
	subscribers.DELETE("/:id", deleteSubscriberHandler)
	subscribers.GET("/:id/payments", listPaymentsHandler)
	subscribers.POST("/:id/payments", recordPaymentHandler)
	subscribers.PUT("/:id/payments/:paymentId/pay", markPaymentPaidHandler)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.Use(auth.RequireAuth())
	expenses.GET("", listExpensesHandler)
	expenses.POST("", createExpenseHandler)
	expenses.PUT("/:id", updateExpenseHandler)
	expenses.DELETE("/:id", deleteExpenseHandler)

	// Report routes
	reports := api.Group("/reports")
	reports.Use(auth.RequireAuth())
	reports.GET("/daily", dailyReportHandler)
	reports.GET("/weekly", weeklyReportHandler)
	reports.GET("/monthly", monthlyReportHandler)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboard.Use(auth.RequireAuth())
	dashboard.GET("", dashboardHandler)

	// Lot settings (tariffs)
	settings := api.Group("/settings")
	settings.Use(auth.RequireAuth())
	settings.GET("", getSettingsHandler)
	settings.PUT("", updateSettingsHandler)

	// Audit log
	audit := api.Group("/audit")
	audit.Use(auth.RequireAuth())
	audit.GET("", listAuditLogsHandler)
}
