package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mealbridge/internal/auth"
	"mealbridge/internal/handler"
	"mealbridge/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	donationHandler *handler.DonationHandler,
	requestHandler *handler.RequestHandler,
	adminHandler *handler.AdminHandler,
	messageHandler *handler.MessageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/signin", authHandler.Signin)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/donations", donationHandler.List)
	api.GET("/donations/:id", donationHandler.Get)
	api.POST("/messages", messageHandler.Submit)

	// Authenticated routes
	secured := api.Group("", auth.Middleware(jwtService))
	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/users/:id", userHandler.Get)
	secured.PUT("/users/:id", userHandler.Update)

	// Donor routes
	donor := secured.Group("", auth.RequireRole(model.RoleDonor))
	donor.POST("/donations", donationHandler.Create)
	donor.PUT("/donations/:id", donationHandler.Update)
	donor.DELETE("/donations/:id", donationHandler.Delete)
	donor.GET("/donations/my/list", donationHandler.ListMine)
	donor.PUT("/requests/:id/respond", requestHandler.Respond)
	donor.PUT("/requests/:id/complete", requestHandler.Complete)
	donor.GET("/requests/donor/my", requestHandler.ListForDonor)

	// Receiver routes
	receiver := secured.Group("", auth.RequireRole(model.RoleReceiver))
	receiver.POST("/requests", requestHandler.Create)
	receiver.GET("/requests/receiver/my", requestHandler.ListForReceiver)

	// Admin routes
	admin := secured.Group("/admin", auth.RequireRole(model.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.PUT("/stats", adminHandler.UpdateStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/donations", adminHandler.ListDonations)
	admin.PUT("/donations/:id/soft-delete", adminHandler.SoftDeleteDonation)
	admin.PUT("/donations/:id/restore", adminHandler.RestoreDonation)
	admin.DELETE("/donations/:id", adminHandler.HardDeleteDonation)
	admin.GET("/audit-logs", adminHandler.AuditLogs)
	admin.GET("/messages", adminHandler.ListMessages)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
