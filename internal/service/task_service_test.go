package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/duedate/internal/config"
	"github.com/mtlprog/duedate/internal/domain"
	"github.com/mtlprog/duedate/internal/service"
)

// memoryStore is an in-memory TaskStore.
type memoryStore struct {
	mu         sync.Mutex
	tasks      map[string]*domain.Task
	nextID     int
	createErr  error
	lastLimit  int
	lastOffset int
	lastNow    time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tasks: make(map[string]*domain.Task)}
}

func (m *memoryStore) Create(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}

	m.nextID++
	task.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.nextID)
	task.CreatedAt = time.Now().UTC()
	m.tasks[task.ID] = task
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (m *memoryStore) List(_ context.Context, limit, offset int) ([]*domain.Task, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLimit = limit
	m.lastOffset = offset

	var tasks []*domain.Task
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks, len(tasks), nil
}

func (m *memoryStore) ListOverdue(_ context.Context, now time.Time) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastNow = now

	var tasks []*domain.Task
	for _, task := range m.tasks {
		if task.IsOverdue(now) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// TaskServiceTestSuite is the test suite for TaskService.
type TaskServiceTestSuite struct {
	suite.Suite
	store       *memoryStore
	taskService *service.TaskService
}

// SetupTest runs before each test.
func (s *TaskServiceTestSuite) SetupTest() {
	s.store = newMemoryStore()
	s.taskService = service.NewTaskService(s.store, service.NewCalculator(config.DefaultCalendar()))
}

// TestCreateTask_Success tests that a stored task carries its due date.
func (s *TaskServiceTestSuite) TestCreateTask_Success() {
	ctx := context.Background()

	task, err := s.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:           "  Review contract  ",
		SubmittedAt:     "2025-05-20T16:45:00Z",
		TurnaroundHours: 45,
	})
	s.Require().NoError(err)
	s.NotEmpty(task.ID)
	s.Equal("Review contract", task.Title)
	s.Equal("2025-05-20T16:45:00.000Z", service.FormatDueDate(task.SubmittedAt))
	s.Equal("2025-05-28T13:45:00.000Z", service.FormatDueDate(task.DueAt))
	s.Equal(45.0, task.TurnaroundHours)

	stored, err := s.taskService.GetTask(ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(task, stored)
}

// TestCreateTask_ValidationErrors tests that invalid input never reaches the store.
func (s *TaskServiceTestSuite) TestCreateTask_ValidationErrors() {
	ctx := context.Background()

	tests := []struct {
		name    string
		params  service.CreateTaskParams
		wantErr error
	}{
		{"empty title", service.CreateTaskParams{Title: " ", SubmittedAt: "2025-05-20T10:00:00Z", TurnaroundHours: 8}, domain.ErrInvalidTitle},
		{"long title", service.CreateTaskParams{Title: strings.Repeat("x", 201), SubmittedAt: "2025-05-20T10:00:00Z", TurnaroundHours: 8}, domain.ErrInvalidTitle},
		{"bad format", service.CreateTaskParams{Title: "Task", SubmittedAt: "March 15, 2025", TurnaroundHours: 8}, domain.ErrInvalidFormat},
		{"weekend", service.CreateTaskParams{Title: "Task", SubmittedAt: "2025-05-25T10:00:00Z", TurnaroundHours: 8}, domain.ErrInvalidSubmissionWindow},
		{"negative turnaround", service.CreateTaskParams{Title: "Task", SubmittedAt: "2025-05-20T10:00:00Z", TurnaroundHours: -8}, domain.ErrInvalidTurnaround},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.taskService.CreateTask(ctx, tt.params)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	s.Empty(s.store.tasks)
}

// TestCreateTask_StoreError tests that storage failures are wrapped.
func (s *TaskServiceTestSuite) TestCreateTask_StoreError() {
	storeErr := errors.New("connection refused")
	s.store.createErr = storeErr

	_, err := s.taskService.CreateTask(context.Background(), service.CreateTaskParams{
		Title:           "Task",
		SubmittedAt:     "2025-05-20T10:00:00Z",
		TurnaroundHours: 8,
	})
	s.ErrorIs(err, storeErr)
	s.ErrorContains(err, "store task")
}

// TestGetTask_NotFound tests that missing tasks keep the domain error.
func (s *TaskServiceTestSuite) TestGetTask_NotFound() {
	_, err := s.taskService.GetTask(context.Background(), "00000000-0000-0000-0000-000000000099")
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

// TestListTasks_Pagination tests limit and offset clamping.
func (s *TaskServiceTestSuite) TestListTasks_Pagination() {
	ctx := context.Background()

	_, _, err := s.taskService.ListTasks(ctx, 0, -5)
	s.Require().NoError(err)
	s.Equal(50, s.store.lastLimit)
	s.Equal(0, s.store.lastOffset)

	_, _, err = s.taskService.ListTasks(ctx, 1000, 10)
	s.Require().NoError(err)
	s.Equal(200, s.store.lastLimit)
	s.Equal(10, s.store.lastOffset)
}

// TestListOverdue tests that only tasks past their due instant are returned.
func (s *TaskServiceTestSuite) TestListOverdue() {
	ctx := context.Background()

	past, err := s.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:           "Old task",
		SubmittedAt:     "2025-05-20T10:00:00Z",
		TurnaroundHours: 8,
	})
	s.Require().NoError(err)

	_, err = s.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:           "Future task",
		SubmittedAt:     "2099-05-20T10:00:00Z",
		TurnaroundHours: 8,
	})
	s.Require().NoError(err)

	overdue, err := s.taskService.ListOverdue(ctx)
	s.Require().NoError(err)
	s.Require().Len(overdue, 1)
	s.Equal(past.ID, overdue[0].ID)
	s.WithinDuration(time.Now(), s.store.lastNow, time.Minute)
}

func TestTaskServiceSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
