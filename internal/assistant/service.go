package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ai-task-manager/internal/ai"
	"ai-task-manager/internal/analytics"
	"ai-task-manager/internal/tasks"
)

// DismissAfterMS is how long the client shows the status message.
const DismissAfterMS = 5000

const (
	MsgCompleted = "✅ Task marked as completed!"
	MsgNoMatch   = "⚠️ No matching active task found"
)

var ErrNoMatchingTask = errors.New("no matching active task")

type Classifier interface {
	Classify(ctx context.Context, input string, active []tasks.Task) (ai.Decision, error)
}

type Service struct {
	Classifier Classifier
	Store      tasks.Store
	Events     *analytics.Logger
}

func New(c Classifier, store tasks.Store, events *analytics.Logger) *Service {
	return &Service{Classifier: c, Store: store, Events: events}
}

// Result is what one submission produces. Error is set when the decision
// was not the one the model gave (fallback) or could not be applied.
type Result struct {
	Decision       ai.Decision  `json:"decision"`
	Error          string       `json:"error,omitempty"`
	Message        string       `json:"message"`
	DismissAfterMS int          `json:"dismiss_after_ms"`
	Task           *tasks.Task  `json:"task,omitempty"`
	Tasks          []tasks.Task `json:"tasks"`
	Urgent         []tasks.Task `json:"urgent"`
}

// Classify runs the classifier against the current active tasks without
// changing the store. The decision is always usable: if the active tasks
// cannot be loaded the model sees an empty list and the load error is
// returned alongside the decision.
func (s *Service) Classify(ctx context.Context, env analytics.Envelope, input string) (ai.Decision, error) {
	active, listErr := s.Store.ListTasks(ctx, tasks.Filter{Status: tasks.StatusActive})
	if listErr != nil {
		log.Printf("[WARN] list active tasks, classifying without them: %v", listErr)
		listErr = fmt.Errorf("list active tasks: %w", listErr)
		active = nil
	}
	d, err := s.classify(ctx, env, input, active)
	return d, errors.Join(listErr, err)
}

func (s *Service) classify(ctx context.Context, env analytics.Envelope, input string, active []tasks.Task) (ai.Decision, error) {
	d, err := s.Classifier.Classify(ctx, input, active)
	if err != nil {
		log.Printf("[WARN] classification failed, using fallback: %v", err)
		s.Events.Log(ctx, env, analytics.EventClassificationFailed, map[string]any{
			"reason":       failureReason(err),
			"input_length": len([]rune(input)),
		}, "")
	}
	return d, err
}

// Process handles one submission end to end: classify, apply the decision,
// reload the list and derive the urgent view. A store failure is returned
// as error; the classification error is only reported in Result.Error.
func (s *Service) Process(ctx context.Context, env analytics.Envelope, input string) (Result, error) {
	active, err := s.Store.ListTasks(ctx, tasks.Filter{Status: tasks.StatusActive})
	if err != nil {
		return Result{}, fmt.Errorf("list active tasks: %w", err)
	}

	d, classifyErr := s.classify(ctx, env, input, active)
	res := Result{Decision: d, DismissAfterMS: DismissAfterMS}
	if classifyErr != nil {
		res.Error = classifyErr.Error()
	}

	switch d.Action {
	case ai.ActionComplete:
		if _, ok := tasks.IDSet(active)[d.TaskID]; !ok {
			log.Printf("[WARN] complete decision for unknown task_id=%s", d.TaskID)
			res.Error = ErrNoMatchingTask.Error()
			res.Message = MsgNoMatch
			break
		}
		changed, err := s.Store.CompleteTask(ctx, d.TaskID)
		if err != nil {
			return res, fmt.Errorf("complete task %s: %w", d.TaskID, err)
		}
		if changed {
			s.Events.Log(ctx, env, analytics.EventTaskCompleted, map[string]any{
				"source": "assistant",
			}, "")
		}
		res.Message = MsgCompleted

	case ai.ActionCreate:
		in := d.Task.NewTask()
		if in.Description == "" {
			in.Description = input
		}
		created, err := s.Store.CreateTask(ctx, in)
		if err != nil {
			return res, fmt.Errorf("create task: %w", err)
		}
		s.Events.Log(ctx, env, analytics.EventTaskCreated, map[string]any{
			"workflow": string(created.Workflow),
			"priority": string(created.Priority),
			"fallback": classifyErr != nil,
		}, "")
		res.Task = &created
		res.Message = CreatedMessage(created)

	default:
		// Classifier contract guarantees one of the two shapes.
		return res, fmt.Errorf("%w: unknown action %q", ai.ErrInvalidDecision, d.Action)
	}

	list, err := s.Store.ListTasks(ctx, tasks.Filter{})
	if err != nil {
		return res, fmt.Errorf("reload tasks: %w", err)
	}
	res.Tasks = list
	res.Urgent = tasks.UrgentActive(list)
	return res, nil
}

func CreatedMessage(t tasks.Task) string {
	return fmt.Sprintf("🎯 Created new %s task in %s!", t.Priority, t.Workflow)
}

// ErrorMessage is the status line shown when a submission could not be
// applied.
func ErrorMessage(err error) string {
	return "❌ Error: " + err.Error()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ai.ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ai.ErrInvalidDecision):
		return "invalid_decision"
	default:
		return "transport"
	}
}
