package service

import (
	"math"
	"time"

	"github.com/mtlprog/duedate/internal/config"
)

// DueDateLayout is the output format: UTC, millisecond precision, Z suffix.
const DueDateLayout = "2006-01-02T15:04:05.000Z"

// Calculator computes due instants on a business calendar.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	calendar  config.Calendar
	validator *Validator
}

// NewCalculator creates a new Calculator bound to the given calendar.
func NewCalculator(calendar config.Calendar) *Calculator {
	return &Calculator{
		calendar:  calendar,
		validator: NewValidator(calendar),
	}
}

// Validator returns the validator sharing this calculator's calendar.
func (c *Calculator) Validator() *Validator {
	return c.validator
}

// CalculateDueDate validates the inputs and returns the due instant formatted
// with DueDateLayout.
func (c *Calculator) CalculateDueDate(submitted string, turnaroundHours float64) (string, error) {
	submittedAt, err := c.validator.ValidateInput(submitted, turnaroundHours)
	if err != nil {
		return "", err
	}

	return FormatDueDate(c.ComputeDueDate(submittedAt, turnaroundHours)), nil
}

// ComputeDueDate advances a validated submission instant by the given number
// of working hours. Inputs must already have passed validation.
//
// Whole weeks are added as seven calendar days. The remaining whole days and
// hours may overflow closing time (moving to the next day with a negative
// hour offset) and may cross one weekend, which adds two calendar days.
func (c *Calculator) ComputeDueDate(submittedAt time.Time, turnaroundHours float64) time.Time {
	return advance(c.calendar, submittedAt, turnaroundHours)
}

func advance(calendar config.Calendar, submittedAt time.Time, turnaroundHours float64) time.Time {
	hoursPerDay := float64(calendar.HoursPerDay())
	daysPerWeek := float64(calendar.WorkDaysPerWeek)

	workDays := math.Floor(turnaroundHours / hoursPerDay)
	weeks := math.Floor(workDays / daysPerWeek)
	days := workDays - daysPerWeek*weeks
	hours := turnaroundHours - workDays*hoursPerDay

	if float64(submittedAt.Hour())+hours >= float64(calendar.EndHour) {
		days++
		hours -= hoursPerDay
	}

	// Monday is 1 and Friday is 5, matching time.Weekday
	if float64(submittedAt.Weekday())+days > daysPerWeek {
		days += 2
	}

	totalHours := (weeks*7+days)*24 + hours
	offset := time.Duration(totalHours*float64(time.Hour/time.Millisecond)) * time.Millisecond

	return submittedAt.Add(offset).UTC()
}

// FormatDueDate renders an instant with DueDateLayout.
func FormatDueDate(t time.Time) string {
	return t.UTC().Format(DueDateLayout)
}

var defaultCalculator = NewCalculator(config.DefaultCalendar())

// CalculateDueDate computes a due date on the default calendar.
func CalculateDueDate(submitted string, turnaroundHours float64) (string, error) {
	return defaultCalculator.CalculateDueDate(submitted, turnaroundHours)
}

// ValidateSubmitDate validates a submission timestamp against the default calendar.
func ValidateSubmitDate(submitted string) error {
	_, err := defaultCalculator.validator.ValidateSubmitDate(submitted)
	return err
}

// ValidateTurnaroundTime validates a turnaround value.
func ValidateTurnaroundTime(turnaroundHours float64) error {
	return defaultCalculator.validator.ValidateTurnaroundTime(turnaroundHours)
}
