package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired, please sign in again")

	// Player directory errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidPlayer  = errors.New("invalid player data")
)
