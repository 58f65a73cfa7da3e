package services

import "errors"

// Service-level errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrValidation marks missing or malformed input (400)
	ErrValidation = errors.New("validation failed")
	// ErrPhoneNumberExists is returned on signup with a taken phone number (409)
	ErrPhoneNumberExists = errors.New("phone number already registered")
	// ErrInvalidCredentials is returned on login with an unknown phone number
	// or a wrong password (401). Both cases map to the same error so callers
	// cannot probe which phone numbers are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a refresh token is missing, invalid,
	// expired or no longer matches the stored one (401)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller is authenticated but does not
	// own the requested crop (403)
	ErrForbidden = errors.New("forbidden")
	// ErrCropNotFound is returned when a crop does not exist (404)
	ErrCropNotFound = errors.New("crop not found")
)
