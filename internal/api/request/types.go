package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/validation"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// errInvalidBody is returned for bodies that are not valid JSON
var errInvalidBody = errors.New("invalid request body")

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddHabitRequest is the request body for creating a habit
type AddHabitRequest struct {
	HabitName string `json:"habitName" validate:"required"`
}

// CheckInRequest is the request body for checking in a habit
type CheckInRequest struct {
	HabitID string `json:"habitId" validate:"required"`
}

// PlantCropRequest is the request body for planting a crop
type PlantCropRequest struct {
	CropID string `json:"cropId" validate:"required"`
}

// ResearchRequest is the request body for a recipe research attempt
type ResearchRequest struct {
	RecipeID        string   `json:"recipeId" validate:"required"`
	UsedIngredients []string `json:"usedIngredients" validate:"max=20,dive,required"`
}

// HabitUpdate renames an existing habit
type HabitUpdate struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// SaveDataRequest is the request body for the save-data endpoint.
// Only the habit list is client-writable.
type SaveDataRequest struct {
	Habits *[]HabitUpdate `json:"habits" validate:"required,dive"`
}

// Decode reads a JSON body into dst and validates it
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.NewError("body", "is required")
		}
		return errInvalidBody
	}
	return validation.Struct(dst)
}

// IsInvalidBody reports whether err came from malformed JSON
func IsInvalidBody(err error) bool {
	return errors.Is(err, errInvalidBody)
}
