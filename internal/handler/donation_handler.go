package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mealbridge/internal/auth"
	"mealbridge/internal/errors"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
	"mealbridge/internal/service"
)

// DonationHandler handles donation endpoints.
type DonationHandler struct {
	donationService service.DonationService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateDonationRequest represents a donation creation request.
type CreateDonationRequest struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Quantity       string     `json:"quantity" validate:"required"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	PickupLocation string     `json:"pickup_location" validate:"required"`
	ImageURL       string     `json:"image_url"`
}

// UpdateDonationRequest represents a partial donation update. Omitted
// fields keep their prior value.
type UpdateDonationRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	Quantity       *string    `json:"quantity"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	PickupLocation *string    `json:"pickup_location"`
	ImageURL       *string    `json:"image_url"`
	Status         *string    `json:"status"`
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// List godoc
// @Summary List visible donations
// @Tags donations
// @Produce json
// @Param status query string false "Status filter (defaults to available)"
// @Param category query string false "Category filter"
// @Param search query string false "Substring match on title/description"
// @Success 200 {array} model.DonationListing
// @Router /donations [get]
func (h *DonationHandler) List(c echo.Context) error {
	filter := repository.DonationFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}

	listings, err := h.donationService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}

// Get godoc
// @Summary Get a single visible donation
// @Tags donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} model.DonationListing
// @Failure 404 {object} errors.ErrorResponse
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	listing, err := h.donationService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listing)
}

// Create godoc
// @Summary Post a new donation
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDonationRequest true "Donation data"
// @Success 201 {object} model.Donation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	donation, err := h.donationService.Create(c.Request().Context(), claims.UserID, service.CreateDonationInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Quantity:       req.Quantity,
		ExpiryDate:     req.ExpiryDate,
		PickupLocation: req.PickupLocation,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, donation)
}

// Update godoc
// @Summary Edit an owned donation
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param request body UpdateDonationRequest true "Fields to update"
// @Success 200 {object} model.Donation
// @Failure 404 {object} errors.ErrorResponse
// @Router /donations/{id} [put]
func (h *DonationHandler) Update(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := service.UpdateDonationInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Quantity:       req.Quantity,
		ExpiryDate:     req.ExpiryDate,
		PickupLocation: req.PickupLocation,
		ImageURL:       req.ImageURL,
	}
	if req.Status != nil {
		status := model.DonationStatus(*req.Status)
		input.Status = &status
	}

	donation, err := h.donationService.Update(c.Request().Context(), claims.UserID, id, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, donation)
}

// Delete godoc
// @Summary Soft delete an owned donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /donations/{id} [delete]
func (h *DonationHandler) Delete(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.donationService.SoftDelete(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Donation deleted successfully"})
}

// ListMine godoc
// @Summary List the donor's own donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Donation
// @Router /donations/my/list [get]
func (h *DonationHandler) ListMine(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	donations, err := h.donationService.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, donations)
}
