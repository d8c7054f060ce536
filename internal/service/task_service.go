package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mtlprog/duedate/internal/domain"
)

const (
	maxTitleLength   = 200
	defaultListLimit = 50
	maxListLimit     = 200
)

// TaskStore persists tasks. *repository.TaskRepository implements it.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Task, int, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error)
}

// TaskService computes due dates for submitted tasks and stores them.
type TaskService struct {
	store      TaskStore
	calculator *Calculator
	now        func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(store TaskStore, calculator *Calculator) *TaskService {
	return &TaskService{
		store:      store,
		calculator: calculator,
		now:        time.Now,
	}
}

// CreateTaskParams contains parameters for creating a task.
type CreateTaskParams struct {
	Title           string
	SubmittedAt     string
	TurnaroundHours float64
}

// CreateTask validates the submission, computes its due instant and stores it.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be between 1 and %d characters", domain.ErrInvalidTitle, maxTitleLength)
	}

	submittedAt, err := s.calculator.Validator().ValidateInput(params.SubmittedAt, params.TurnaroundHours)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:           title,
		SubmittedAt:     submittedAt,
		TurnaroundHours: params.TurnaroundHours,
		DueAt:           s.calculator.ComputeDueDate(submittedAt, params.TurnaroundHours),
	}

	if err := s.store.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("store task: %w", err)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"submitted_at", FormatDueDate(task.SubmittedAt),
		"turnaround_hours", task.TurnaroundHours,
		"due_at", FormatDueDate(task.DueAt),
	)

	return task, nil
}

// GetTask retrieves a stored task.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	return task, nil
}

// NormalizePage clamps limit to [1, 200] with 50 as default and turns
// negative offsets into 0.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListTasks returns a page of tasks and the total count.
func (s *TaskService) ListTasks(ctx context.Context, limit, offset int) ([]*domain.Task, int, error) {
	limit, offset = NormalizePage(limit, offset)

	tasks, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListOverdue returns tasks whose due instant has already passed.
func (s *TaskService) ListOverdue(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.ListOverdue(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}
