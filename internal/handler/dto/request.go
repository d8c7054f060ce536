package dto

// CalculateDueDateRequest represents the request body for POST /due-date.
type CalculateDueDateRequest struct {
	SubmittedAt     string  `json:"submitted_at"`
	TurnaroundHours float64 `json:"turnaround_hours"`
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title           string  `json:"title"`
	SubmittedAt     string  `json:"submitted_at"`
	TurnaroundHours float64 `json:"turnaround_hours"`
}
