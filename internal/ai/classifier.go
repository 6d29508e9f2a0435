package ai

import (
	"context"
	"log"

	"ai-task-manager/internal/tasks"
)

type Classifier struct {
	Model       ChatModel
	Recorder    Recorder
	Provider    Provider
	ModelName   string
	Temperature float32
	MaxTokens   int
}

func NewClassifier(m ChatModel, rec Recorder, cfg Config) *Classifier {
	return &Classifier{
		Model:       m,
		Recorder:    rec,
		Provider:    cfg.Provider,
		ModelName:   cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

// Classify asks the model whether input completes one of active or creates
// a new task. On any failure it returns Fallback(input) together with the
// error, so the decision is always usable. Every call leaves a Record.
//
// A complete decision is not checked against active here; that is the
// caller's job.
func (c *Classifier) Classify(ctx context.Context, input string, active []tasks.Task) (Decision, error) {
	d, err := c.decide(ctx, input, active)
	if err != nil {
		d = Fallback(input)
	}
	c.record(ctx, input, d, err)
	return d, err
}

func (c *Classifier) decide(ctx context.Context, input string, active []tasks.Task) (Decision, error) {
	raw, err := complete(ctx, c.Model, BuildPrompt(input, active), c.Temperature, c.MaxTokens)
	if err != nil {
		return Decision{}, err
	}
	return ParseDecision(raw, input)
}

func (c *Classifier) record(ctx context.Context, input string, d Decision, classifyErr error) {
	if c.Recorder == nil {
		return
	}
	rec := Record{
		Input:       input,
		Response:    d.Marshal(),
		ContextType: ContextTaskProcessing,
		Provider:    string(c.Provider),
		Model:       c.ModelName,
	}
	if classifyErr != nil {
		rec.Error = classifyErr.Error()
	}
	if err := c.Recorder.Record(ctx, rec); err != nil {
		log.Printf("[WARN] ai_memory insert failed: %v", err)
	}
}
