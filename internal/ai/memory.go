package ai

import (
	"context"
	"fmt"
	"time"

	"ai-task-manager/internal/db"
)

const ContextTaskProcessing = "task_processing"

// Record is one classification exchange kept for diagnostics. The
// application writes these and never reads them back.
type Record struct {
	Input       string
	Response    string
	ContextType string
	Provider    string
	Model       string
	Error       string
	CreatedAt   time.Time
}

type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// SQLRecorder appends to the ai_memory table.
type SQLRecorder struct {
	DB *db.DB
}

func (r SQLRecorder) Record(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO ai_memory (input, response, context_type, provider, model, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`), rec.Input, rec.Response, rec.ContextType, rec.Provider, rec.Model, rec.Error, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ai_memory: %w", err)
	}
	return nil
}
