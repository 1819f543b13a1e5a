package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidRole is returned when the signup role is not a known role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidDecision is returned when a respond decision is neither accepted nor rejected.
	ErrInvalidDecision = errors.New("decision must be accepted or rejected")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrForbidden is returned when the caller lacks the role or ownership for the operation.
	ErrForbidden = errors.New("access denied")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDonationNotFound is returned when a donation is absent or soft-deleted.
	ErrDonationNotFound = errors.New("donation not found")
	// ErrRequestNotFound is returned when a request is not found.
	ErrRequestNotFound = errors.New("request not found")
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDonationNotAvailable is returned when a donation is not in the available state.
	ErrDonationNotAvailable = errors.New("donation is not available")
	// ErrDonationNotReserved is returned when completing a donation that is not reserved.
	ErrDonationNotReserved = errors.New("donation is not reserved")
	// ErrDuplicateRequest is returned when the receiver already has a pending request for the donation.
	ErrDuplicateRequest = errors.New("request already sent")
	// ErrRequestNotPending is returned when responding to a request that is no longer pending.
	ErrRequestNotPending = errors.New("request is not pending")
	// ErrRequestNotAccepted is returned when completing a request that was never accepted.
	ErrRequestNotAccepted = errors.New("request is not accepted")
	// ErrAdminUndeletable is returned when an admin account is targeted for deletion.
	ErrAdminUndeletable = errors.New("cannot delete admin users")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidDecision):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DECISION")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrAdminUndeletable):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_UNDELETABLE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDonationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DONATION_NOT_FOUND")
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrDonationNotAvailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "DONATION_NOT_AVAILABLE")
	case errors.Is(err, ErrDonationNotReserved):
		return NewHTTPError(http.StatusConflict, err.Error(), "DONATION_NOT_RESERVED")
	case errors.Is(err, ErrDuplicateRequest):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REQUEST")
	case errors.Is(err, ErrRequestNotPending):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_NOT_PENDING")
	case errors.Is(err, ErrRequestNotAccepted):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_NOT_ACCEPTED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
