package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/duedate/internal/config"
	"github.com/mtlprog/duedate/internal/domain"
	"github.com/mtlprog/duedate/internal/service"
)

func TestValidateSubmitDate(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		wantErr   error
	}{
		{"utc designator", "2025-05-20T10:00:00Z", nil},
		{"fractional seconds", "2025-05-20T10:00:00.5Z", nil},
		{"positive offset", "2025-05-20T12:30:00+02:00", nil},
		{"last minute of the day", "2025-05-20T16:59:59Z", nil},
		{"opening instant", "2025-05-20T09:00:00Z", nil},
		{"empty", "", domain.ErrInvalidFormat},
		{"natural language", "March 15, 2025", domain.ErrInvalidFormat},
		{"natural language with time", "March 15, 2025 14:30:00", domain.ErrInvalidFormat},
		{"missing designator", "2025-05-20T10:00:00", domain.ErrInvalidFormat},
		{"date only", "2025-05-20", domain.ErrInvalidFormat},
		{"impossible month", "2025-13-20T10:00:00Z", domain.ErrInvalidFormat},
		{"after closing", "2025-05-20T17:00:00Z", domain.ErrInvalidSubmissionWindow},
		{"before opening", "2025-05-20T08:59:00Z", domain.ErrInvalidSubmissionWindow},
		{"saturday", "2025-05-24T10:00:00Z", domain.ErrInvalidSubmissionWindow},
		{"sunday", "2025-05-25T10:00:00Z", domain.ErrInvalidSubmissionWindow},
		{"offset moves into window", "2025-05-20T18:00:00+02:00", nil},
		{"offset moves out of window", "2025-05-20T10:00:00+02:00", domain.ErrInvalidSubmissionWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateSubmitDate(tt.submitted)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateTurnaroundTime(t *testing.T) {
	assert.NoError(t, service.ValidateTurnaroundTime(5))
	assert.NoError(t, service.ValidateTurnaroundTime(0.01))
	assert.NoError(t, service.ValidateTurnaroundTime(600_000))

	for _, hours := range []float64{-8, 0, 600_000.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := service.ValidateTurnaroundTime(hours)
		assert.ErrorIs(t, err, domain.ErrInvalidTurnaround, "hours=%v", hours)
		assert.ErrorContains(t, err, "Invalid turnaround time. Turnaround time must be positive number.")
	}
}

func TestValidator_ValidateInput(t *testing.T) {
	v := service.NewValidator(config.DefaultCalendar())

	got, err := v.ValidateInput("2025-05-20T12:30:00.250+02:00", 1)
	require.NoError(t, err)
	assert.True(t, time.Date(2025, time.May, 20, 10, 30, 0, 250_000_000, time.UTC).Equal(got), "got %s", got)
	assert.Equal(t, time.UTC, got.Location())

	_, err = v.ValidateInput("2025-05-20", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.NotErrorIs(t, err, domain.ErrInvalidTurnaround)

	_, err = v.ValidateInput("2025-05-24T10:00:00Z", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidTurnaround)
	assert.NotErrorIs(t, err, domain.ErrInvalidSubmissionWindow)
}
