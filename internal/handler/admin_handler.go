package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mealbridge/internal/auth"
	"mealbridge/internal/errors"
	"mealbridge/internal/repository"
	"mealbridge/internal/service"
)

// AdminHandler handles the moderation endpoints.
type AdminHandler struct {
	adminService   service.AdminService
	messageService service.MessageService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, messageService service.MessageService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		messageService: messageService,
	}
}

// UpdateStatsRequest represents a platform counter patch.
type UpdateStatsRequest struct {
	MealsServed     *int64 `json:"meals_served"`
	DonorsJoined    *int64 `json:"donors_joined"`
	ReceiversHelped *int64 `json:"receivers_helped"`
	CitiesCovered   *int64 `json:"cities_covered"`
}

// Stats godoc
// @Summary Platform counters with derived totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StatsOverview
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	overview, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, overview)
}

// UpdateStats godoc
// @Summary Patch platform counters
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateStatsRequest true "Counters to overwrite"
// @Success 200 {object} map[string]string
// @Router /admin/stats [put]
func (h *AdminHandler) UpdateStats(c echo.Context) error {
	var req UpdateStatsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.adminService.UpdateStats(c.Request().Context(), repository.StatsPatch{
		MealsServed:     req.MealsServed,
		DonorsJoined:    req.DonorsJoined,
		ReceiversHelped: req.ReceiversHelped,
		CitiesCovered:   req.CitiesCovered,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Stats updated successfully"})
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// ListDonations godoc
// @Summary List all donations including soft-deleted ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Donation
// @Router /admin/donations [get]
func (h *AdminHandler) ListDonations(c echo.Context) error {
	donations, err := h.adminService.ListDonations(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, donations)
}

// SoftDeleteDonation godoc
// @Summary Soft delete any donation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/donations/{id}/soft-delete [put]
func (h *AdminHandler) SoftDeleteDonation(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.adminService.SoftDeleteDonation(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Donation deleted successfully"})
}

// RestoreDonation godoc
// @Summary Restore a soft-deleted donation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/donations/{id}/restore [put]
func (h *AdminHandler) RestoreDonation(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.adminService.RestoreDonation(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Donation restored successfully"})
}

// HardDeleteDonation godoc
// @Summary Permanently delete a donation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/donations/{id} [delete]
func (h *AdminHandler) HardDeleteDonation(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.adminService.HardDeleteDonation(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Donation deleted permanently"})
}

// DeleteUser godoc
// @Summary Delete a non-admin user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// AuditLogs godoc
// @Summary Most recent audit entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AuditLogRow
// @Router /admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(c echo.Context) error {
	logs, err := h.adminService.AuditLogs(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, logs)
}

// ListMessages godoc
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ContactMessage
// @Router /admin/messages [get]
func (h *AdminHandler) ListMessages(c echo.Context) error {
	messages, err := h.messageService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}
