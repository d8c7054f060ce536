package domain

import "errors"

// Domain-specific errors for due-date calculation and task storage.
var (
	// Input errors
	ErrInvalidFormat           = errors.New("Invalid date format. Date must be in ISO8601 format.")
	ErrInvalidSubmissionWindow = errors.New("Invalid submit date/time.")
	ErrInvalidTurnaround       = errors.New("Invalid turnaround time. Turnaround time must be positive number.")

	// Task errors
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTitle = errors.New("invalid task title")
)
