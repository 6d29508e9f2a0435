package tasks

import "time"

type Workflow string

const (
	WorkflowDistributed Workflow = "Distributed"
	WorkflowKonfidants  Workflow = "Konfidants"
	WorkflowCareerWheel Workflow = "Career Wheel"
	WorkflowPersonal    Workflow = "Personal"
)

// Workflows lists every workflow in display order.
var Workflows = []Workflow{WorkflowDistributed, WorkflowKonfidants, WorkflowCareerWheel, WorkflowPersonal}

func (w Workflow) Valid() bool {
	for _, known := range Workflows {
		if w == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityImportant Priority = "important"
	PriorityNormal    Priority = "normal"
)

var Priorities = []Priority{PriorityUrgent, PriorityImportant, PriorityNormal}

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityImportant, PriorityNormal:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCompleted
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Workflow    Workflow   `json:"workflow"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (t Task) IsUrgentActive() bool {
	return t.Priority == PriorityUrgent && t.Status == StatusActive
}
