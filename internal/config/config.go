package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; storing tasks is optional.
	DefaultDatabaseURL = ""
)

// Calendar describes the business week used for due-date arithmetic.
// Hours are whole UTC hours; the working window is [StartHour, EndHour).
type Calendar struct {
	StartHour       int
	EndHour         int
	WorkDaysPerWeek int
}

// DefaultCalendar returns the Monday-Friday, 09:00-17:00 UTC calendar.
func DefaultCalendar() Calendar {
	return Calendar{
		StartHour:       9,
		EndHour:         17,
		WorkDaysPerWeek: 5,
	}
}

// HoursPerDay returns the number of working hours in one business day.
func (c Calendar) HoursPerDay() int {
	return c.EndHour - c.StartHour
}
