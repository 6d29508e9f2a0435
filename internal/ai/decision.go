package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-task-manager/internal/tasks"
)

var (
	ErrEmptyResponse   = errors.New("empty model response")
	ErrInvalidDecision = errors.New("invalid decision")
)

type Action string

const (
	ActionComplete Action = "complete"
	ActionCreate   Action = "create"
)

// Decision is the classifier output: either complete TaskID or create Task.
type Decision struct {
	Action Action    `json:"action"`
	TaskID string    `json:"taskId,omitempty"`
	Task   *TaskSpec `json:"task,omitempty"`
}

type TaskSpec struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Workflow    tasks.Workflow `json:"workflow" validate:"workflow"`
	Priority    tasks.Priority `json:"priority" validate:"priority"`
}

func (s TaskSpec) NewTask() tasks.NewTask {
	return tasks.NewTask{
		Title:       s.Title,
		Description: s.Description,
		Workflow:    s.Workflow,
		Priority:    s.Priority,
	}
}

func Complete(taskID string) Decision {
	return Decision{Action: ActionComplete, TaskID: taskID}
}

func Create(spec TaskSpec) Decision {
	return Decision{Action: ActionCreate, Task: &spec}
}

const fallbackTitleLen = 50

// Fallback is the deterministic decision used whenever classification
// fails: a Personal/normal task titled with the first 50 characters.
func Fallback(input string) Decision {
	title := input
	if r := []rune(input); len(r) > fallbackTitleLen {
		title = string(r[:fallbackTitleLen])
	}
	return Create(TaskSpec{
		Title:       title,
		Description: input,
		Workflow:    tasks.WorkflowPersonal,
		Priority:    tasks.PriorityNormal,
	})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("workflow", func(fl validator.FieldLevel) bool {
		return tasks.Workflow(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return tasks.Priority(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks that d matches exactly one of the two decision shapes.
func (d Decision) Validate() error {
	switch d.Action {
	case ActionComplete:
		if strings.TrimSpace(d.TaskID) == "" {
			return fmt.Errorf("%w: complete without taskId", ErrInvalidDecision)
		}
		if d.Task != nil {
			return fmt.Errorf("%w: complete carries a task", ErrInvalidDecision)
		}
		return nil
	case ActionCreate:
		if d.Task == nil {
			return fmt.Errorf("%w: create without task", ErrInvalidDecision)
		}
		if d.TaskID != "" {
			return fmt.Errorf("%w: create carries a taskId", ErrInvalidDecision)
		}
		if err := validate.Struct(d.Task); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDecision, err)
		}
		if strings.TrimSpace(d.Task.Title) == "" {
			return fmt.Errorf("%w: blank title", ErrInvalidDecision)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidDecision, d.Action)
	}
}

// ParseDecision decodes a model reply. The reply must hold exactly one JSON
// object (a surrounding markdown fence is tolerated). An empty description
// defaults to input.
func ParseDecision(raw, input string) (Decision, error) {
	body := stripFence(raw)
	if body == "" {
		return Decision{}, ErrEmptyResponse
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var d Decision
	if err := dec.Decode(&d); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrInvalidDecision, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Decision{}, fmt.Errorf("%w: trailing content after JSON object", ErrInvalidDecision)
	}
	if err := checkKeys([]byte(body)); err != nil {
		return Decision{}, err
	}

	if err := d.Validate(); err != nil {
		return Decision{}, err
	}
	if d.Action == ActionCreate && strings.TrimSpace(d.Task.Description) == "" {
		d.Task.Description = input
	}
	return d, nil
}

var (
	decisionKeys = []string{"action", "taskId", "task"}
	taskKeys     = []string{"title", "description", "workflow", "priority"}
)

// checkKeys rejects keys that only match a known field case-insensitively,
// which encoding/json would otherwise accept. Unknown keys are ignored.
func checkKeys(body []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDecision, err)
	}
	if err := matchKeys(top, decisionKeys); err != nil {
		return err
	}
	raw, ok := top["task"]
	if !ok {
		return nil
	}
	var task map[string]json.RawMessage
	if err := json.Unmarshal(raw, &task); err != nil {
		return fmt.Errorf("%w: task: %v", ErrInvalidDecision, err)
	}
	return matchKeys(task, taskKeys)
}

func matchKeys(obj map[string]json.RawMessage, known []string) error {
	for k := range obj {
		for _, want := range known {
			if k != want && strings.EqualFold(k, want) {
				return fmt.Errorf("%w: key %q must be spelled %q", ErrInvalidDecision, k, want)
			}
		}
	}
	return nil
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Marshal serializes d for the classification trail.
func (d Decision) Marshal() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(d)
	return strings.TrimSpace(buf.String())
}
