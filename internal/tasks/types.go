package tasks

// NewTask carries the fields a caller supplies on creation. The store
// assigns id, created_at and status.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Workflow    Workflow `json:"workflow"`
	Priority    Priority `json:"priority"`
}

// Filter narrows ListTasks. The zero value lists everything.
type Filter struct {
	Status Status
}
