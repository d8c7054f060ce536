package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/duedate/internal/domain"
)

// psql renders task queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var taskColumns = []string{"id", "title", "submitted_at", "turnaround_hours", "due_at", "created_at"}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// Create inserts a task and fills in its generated ID and creation time.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query, args, err := psql.
		Insert("tasks").
		Columns("title", "submitted_at", "turnaround_hours", "due_at").
		Values(task.Title, task.SubmittedAt, task.TurnaroundHours, task.DueAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task %s: %w", taskID, err)
	}

	task, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("query task %s: %w", taskID, err)
	}

	return task, nil
}

// List returns tasks ordered by due instant, soonest first.
func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]*domain.Task, int, error) {
	countQuery, countArgs, err := psql.
		Select("COUNT(*)").
		From("tasks").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		OrderBy("due_at ASC", "created_at ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	tasks, err := r.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListOverdue returns tasks whose due instant is before now.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Lt{"due_at": now}).
		OrderBy("due_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListOverdue query: %w", err)
	}

	return r.queryTasks(ctx, query, args...)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return tasks, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.SubmittedAt,
		&task.TurnaroundHours,
		&task.DueAt,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.SubmittedAt = task.SubmittedAt.UTC()
	task.DueAt = task.DueAt.UTC()
	task.CreatedAt = task.CreatedAt.UTC()

	return &task, nil
}
