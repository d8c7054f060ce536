package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/mtlprog/duedate/internal/config"
	"github.com/mtlprog/duedate/internal/domain"
)

// iso8601Pattern is the extended ISO8601 shape accepted for submission timestamps.
// A timezone designator is mandatory; fractional seconds are optional.
var iso8601Pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`)

const (
	// maxTurnaroundHours keeps the calendar offset (at most 4.2x the
	// turnaround plus a weekend) inside time.Duration's ~292 years.
	maxTurnaroundHours = 600_000

	// maxDueYear is the last year DueDateLayout can render with four digits.
	maxDueYear = 9999
)

// Validator checks calculation inputs against a business calendar.
type Validator struct {
	calendar config.Calendar
}

// NewValidator creates a new Validator bound to the given calendar.
func NewValidator(calendar config.Calendar) *Validator {
	return &Validator{
		calendar: calendar,
	}
}

// ValidateInput checks a submission timestamp and a turnaround value.
// Checks run in order (format, turnaround, submission window) and only the
// first violation is reported. On success the parsed UTC instant is returned.
func (v *Validator) ValidateInput(submitted string, turnaroundHours float64) (time.Time, error) {
	t, err := v.parse(submitted)
	if err != nil {
		return time.Time{}, err
	}

	if err := v.ValidateTurnaroundTime(turnaroundHours); err != nil {
		return time.Time{}, err
	}

	if err := v.checkWindow(t); err != nil {
		return time.Time{}, err
	}

	if due := advance(v.calendar, t, turnaroundHours); due.Year() > maxDueYear {
		return time.Time{}, fmt.Errorf("%w: %v hours from %s is past year %d",
			domain.ErrInvalidTurnaround, turnaroundHours, t.Format(time.RFC3339), maxDueYear)
	}

	return t, nil
}

// ValidateSubmitDate checks that the timestamp is well-formed ISO8601 and
// falls inside the business window. It returns the parsed UTC instant.
func (v *Validator) ValidateSubmitDate(submitted string) (time.Time, error) {
	t, err := v.parse(submitted)
	if err != nil {
		return time.Time{}, err
	}

	if err := v.checkWindow(t); err != nil {
		return time.Time{}, err
	}

	return t, nil
}

// ValidateTurnaroundTime checks that the turnaround is a positive number of
// hours no larger than maxTurnaroundHours.
func (v *Validator) ValidateTurnaroundTime(turnaroundHours float64) error {
	// NaN fails the comparison as well
	if !(turnaroundHours > 0) {
		return fmt.Errorf("%w: got %v", domain.ErrInvalidTurnaround, turnaroundHours)
	}
	if turnaroundHours > maxTurnaroundHours {
		return fmt.Errorf("%w: got %v, maximum is %d", domain.ErrInvalidTurnaround, turnaroundHours, maxTurnaroundHours)
	}
	return nil
}

// parse converts the timestamp to UTC with millisecond precision.
func (v *Validator) parse(submitted string) (time.Time, error) {
	if !iso8601Pattern.MatchString(submitted) {
		return time.Time{}, fmt.Errorf("%w: got %q", domain.ErrInvalidFormat, submitted)
	}

	// The pattern admits impossible dates such as month 13
	t, err := time.Parse(time.RFC3339Nano, submitted)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date: %v", domain.ErrInvalidFormat, submitted, err)
	}

	return t.UTC().Truncate(time.Millisecond), nil
}

// checkWindow rejects weekends and hours outside [StartHour, EndHour).
// Minutes and seconds are ignored, so 16:59 passes and 17:00 does not.
func (v *Validator) checkWindow(t time.Time) error {
	if isWeekend(t.Weekday()) {
		return fmt.Errorf("%w: %s falls on %s", domain.ErrInvalidSubmissionWindow, t.Format(time.RFC3339), t.Weekday())
	}

	hour := t.Hour()
	if hour < v.calendar.StartHour || hour >= v.calendar.EndHour {
		return fmt.Errorf("%w: %s is outside %02d:00-%02d:00 UTC",
			domain.ErrInvalidSubmissionWindow, t.Format(time.RFC3339), v.calendar.StartHour, v.calendar.EndHour)
	}

	return nil
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
