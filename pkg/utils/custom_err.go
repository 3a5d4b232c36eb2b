package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAgentUnavailable   = errors.New("agent invocation failed")
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPlanNotFound       = errors.New("plan not found")
)
