package model

import "errors"

// Common errors used across the application
var (
	// Validation errors
	ErrValidation = errors.New("validation failed")

	// User errors
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameExists   = errors.New("username already exists")
	ErrRevisionConflict = errors.New("user record was modified concurrently")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing credential")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")

	// Habit errors
	ErrHabitNotFound    = errors.New("habit not found")
	ErrHabitLimit       = errors.New("habit limit reached")
	ErrAlreadyCheckedIn = errors.New("habit already checked in today")

	// Crop errors
	ErrCropNotFound  = errors.New("crop not found")
	ErrCropActive    = errors.New("a crop is already growing")
	ErrNoActiveCrop  = errors.New("no growing crop")
	ErrCropNotMature = errors.New("crop is not mature yet")

	// Recipe errors
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrRecipeUnlocked = errors.New("recipe already unlocked")

	// Catalog errors
	ErrInvalidCatalog = errors.New("invalid catalog")
)
