package domain

import "time"

// Task is a submitted piece of work together with its computed due instant.
type Task struct {
	ID              string
	Title           string
	SubmittedAt     time.Time
	TurnaroundHours float64
	DueAt           time.Time
	CreatedAt       time.Time
}

// IsOverdue checks if the due instant has passed at the given time.
func (t *Task) IsOverdue(now time.Time) bool {
	return now.After(t.DueAt)
}
