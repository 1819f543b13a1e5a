package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mealbridge/internal/auth"
	"mealbridge/internal/errors"
	"mealbridge/internal/model"
	"mealbridge/internal/service"
)

// RequestHandler handles food request endpoints.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequestRequest represents a request creation payload.
type CreateRequestRequest struct {
	DonationID string `json:"donation_id" validate:"required,uuid"`
	Message    string `json:"message"`
}

// RespondRequest represents the donor's decision payload.
type RespondRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// Create godoc
// @Summary Request an available donation
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestRequest true "Request data"
// @Success 201 {object} model.Request
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	donationID, err := uuid.Parse(req.DonationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid donation_id",
			Code:  "INVALID_UUID",
		})
	}

	request, err := h.requestService.Create(c.Request().Context(), claims.UserID, donationID, req.Message)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, request)
}

// Respond godoc
// @Summary Accept or reject a request on an owned donation
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body RespondRequest true "Decision"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /requests/{id}/respond [put]
func (h *RequestHandler) Respond(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req RespondRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	decision := model.RequestStatus(req.Status)
	if err := h.requestService.Respond(c.Request().Context(), claims.UserID, id, decision); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Request " + req.Status + " successfully"})
}

// Complete godoc
// @Summary Mark an accepted request as completed
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /requests/{id}/complete [put]
func (h *RequestHandler) Complete(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.requestService.Complete(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Request marked as completed"})
}

// ListForDonor godoc
// @Summary List requests against the donor's donations
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DonorRequestRow
// @Router /requests/donor/my [get]
func (h *RequestHandler) ListForDonor(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	rows, err := h.requestService.ListForDonor(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rows)
}

// ListForReceiver godoc
// @Summary List the receiver's own requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ReceiverRequestRow
// @Router /requests/receiver/my [get]
func (h *RequestHandler) ListForReceiver(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	rows, err := h.requestService.ListForReceiver(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rows)
}
