package dto

import (
	"time"

	"github.com/mtlprog/duedate/internal/domain"
	"github.com/mtlprog/duedate/internal/service"
)

// DueDateResponse represents the response for POST /due-date.
type DueDateResponse struct {
	SubmittedAt     string  `json:"submitted_at"`
	TurnaroundHours float64 `json:"turnaround_hours"`
	DueAt           string  `json:"due_at"`
}

// TaskDetail represents a stored task.
type TaskDetail struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	SubmittedAt     string    `json:"submitted_at"`
	TurnaroundHours float64   `json:"turnaround_hours"`
	DueAt           string    `json:"due_at"`
	IsOverdue       bool      `json:"is_overdue"`
	CreatedAt       time.Time `json:"created_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskDetail `json:"tasks"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ToTaskDetail converts a domain task, evaluating overdue status at now.
func ToTaskDetail(task *domain.Task, now time.Time) TaskDetail {
	return TaskDetail{
		ID:              task.ID,
		Title:           task.Title,
		SubmittedAt:     service.FormatDueDate(task.SubmittedAt),
		TurnaroundHours: task.TurnaroundHours,
		DueAt:           service.FormatDueDate(task.DueAt),
		IsOverdue:       task.IsOverdue(now),
		CreatedAt:       task.CreatedAt,
	}
}

// ToTaskDetails converts a slice of domain tasks.
func ToTaskDetails(tasks []*domain.Task, now time.Time) []TaskDetail {
	details := make([]TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		details = append(details, ToTaskDetail(task, now))
	}
	return details
}
