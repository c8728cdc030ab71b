package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSlotTaken          = errors.New("the selected time is no longer available")
	ErrNoServices         = errors.New("select at least one service")
	ErrInvalidTransition  = errors.New("booking cannot change to that status")
	ErrServiceExists      = errors.New("a service with this name already exists")
	ErrServiceStillActive = errors.New("deactivate the service before deleting it")
)

// ValidationError is a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
