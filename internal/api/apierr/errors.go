package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/validation"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeRevisionConflict   = "REVISION_CONFLICT"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeHabitNotFound      = "HABIT_NOT_FOUND"
	CodeCropNotFound       = "CROP_NOT_FOUND"
	CodeRecipeNotFound     = "RECIPE_NOT_FOUND"
	CodeHabitLimit         = "HABIT_LIMIT"
	CodeAlreadyCheckedIn   = "ALREADY_CHECKED_IN"
	CodeCropActive         = "CROP_ACTIVE"
	CodeNoActiveCrop       = "NO_ACTIVE_CROP"
	CodeCropNotMature      = "CROP_NOT_MATURE"
	CodeRecipeUnlocked     = "RECIPE_ALREADY_UNLOCKED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *validation.Error
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidation, ve.Error()}}
	}

	switch {
	// Validation and idempotency guards
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusBadRequest, APIError{CodeValidation, err.Error()}}
	case errors.Is(err, model.ErrHabitLimit):
		return &httpError{http.StatusBadRequest, APIError{CodeHabitLimit, err.Error()}}
	case errors.Is(err, model.ErrAlreadyCheckedIn):
		return &httpError{http.StatusBadRequest, APIError{CodeAlreadyCheckedIn, "Already checked in today"}}
	case errors.Is(err, model.ErrNoActiveCrop):
		return &httpError{http.StatusBadRequest, APIError{CodeNoActiveCrop, "No crop is growing"}}
	case errors.Is(err, model.ErrCropNotMature):
		return &httpError{http.StatusBadRequest, APIError{CodeCropNotMature, "Crop is not ready to harvest"}}
	case errors.Is(err, model.ErrRecipeUnlocked):
		return &httpError{http.StatusBadRequest, APIError{CodeRecipeUnlocked, "Recipe already unlocked"}}

	// Conflicts
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrCropActive):
		return &httpError{http.StatusConflict, APIError{CodeCropActive, "A crop is already planted"}}
	case errors.Is(err, model.ErrRevisionConflict):
		return &httpError{http.StatusConflict, APIError{CodeRevisionConflict, "Data was changed by another request, please retry"}}

	// Not found
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrHabitNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeHabitNotFound, "Habit not found"}}
	case errors.Is(err, model.ErrCropNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCropNotFound, "Crop not found"}}
	case errors.Is(err, model.ErrRecipeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecipeNotFound, "Recipe not found"}}

	// Auth
	case errors.Is(err, model.ErrMissingToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidToken, "Invalid token"}}
	case errors.Is(err, model.ErrSessionExpired):
		return &httpError{http.StatusForbidden, APIError{CodeSessionExpired, "Session expired, please log in again"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
