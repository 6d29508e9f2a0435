package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-task-manager/internal/db"
)

var ErrInvalidTask = errors.New("invalid task")

// Store is the persistence boundary for tasks. Every call is a round trip;
// nothing is cached.
type Store interface {
	ListTasks(ctx context.Context, f Filter) ([]Task, error)
	CreateTask(ctx context.Context, in NewTask) (Task, error)
	// CompleteTask reports whether an active task was transitioned. Unknown
	// ids and already completed tasks are not errors.
	CompleteTask(ctx context.Context, id string) (bool, error)
}

type SQLStore struct {
	DB    *db.DB
	Now   func() time.Time
	NewID func() string
}

func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{
		DB:    database,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

func (s *SQLStore) ListTasks(ctx context.Context, f Filter) ([]Task, error) {
	query := `
		SELECT id, title, description, workflow, priority, status, created_at, completed_at
		FROM tasks`
	var args []any
	if f.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.QueryContext(ctx, s.DB.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	result := []Task{}
	for rows.Next() {
		var (
			t         Task
			completed sql.NullTime
		)
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Workflow,
			&t.Priority,
			&t.Status,
			&t.CreatedAt,
			&completed,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if completed.Valid {
			c := completed.Time
			t.CompletedAt = &c
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result, nil
}

func (s *SQLStore) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Task{}, fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if !in.Workflow.Valid() {
		return Task{}, fmt.Errorf("%w: unknown workflow %q", ErrInvalidTask, in.Workflow)
	}
	if !in.Priority.Valid() {
		return Task{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, in.Priority)
	}

	t := Task{
		ID:          s.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Workflow:    in.Workflow,
		Priority:    in.Priority,
		Status:      StatusActive,
		CreatedAt:   s.Now().UTC(),
	}

	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
		INSERT INTO tasks (id, title, description, workflow, priority, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`), t.ID, t.Title, t.Description, string(t.Workflow), string(t.Priority), string(t.Status), t.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *SQLStore) CompleteTask(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
		UPDATE tasks
		SET status = $1, completed_at = $2
		WHERE id = $3 AND status = $4
	`), string(StatusCompleted), s.Now().UTC(), id, string(StatusActive))
	if err != nil {
		return false, fmt.Errorf("complete task %s: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}
