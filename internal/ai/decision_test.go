package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-task-manager/internal/tasks"
)

func TestParseDecision_Valid(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		input string
		want  Decision
	}{
		{
			name:  "complete",
			raw:   `{"action": "complete", "taskId": "t1"}`,
			input: "Done with ISO review",
			want:  Complete("t1"),
		},
		{
			name:  "create",
			raw:   `{"action": "create", "task": {"title": "Client meeting", "description": "Urgent client meeting needed", "workflow": "Konfidants", "priority": "urgent"}}`,
			input: "Urgent client meeting needed",
			want: Create(TaskSpec{
				Title:       "Client meeting",
				Description: "Urgent client meeting needed",
				Workflow:    tasks.WorkflowKonfidants,
				Priority:    tasks.PriorityUrgent,
			}),
		},
		{
			name:  "markdown fence and whitespace",
			raw:   "\n```json\n{\"action\": \"complete\", \"taskId\": \"abc\"}\n```\n",
			input: "finished abc",
			want:  Complete("abc"),
		},
		{
			name:  "empty description defaults to input",
			raw:   `{"action": "create", "task": {"title": "Gym", "description": "", "workflow": "Personal", "priority": "normal"}}`,
			input: "go to the gym tonight",
			want: Create(TaskSpec{
				Title:       "Gym",
				Description: "go to the gym tonight",
				Workflow:    tasks.WorkflowPersonal,
				Priority:    tasks.PriorityNormal,
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecision(tt.raw, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecision_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", `Sure! Here is the JSON you asked for.`},
		{"trailing prose", `{"action": "complete", "taskId": "t1"} Let me know if you need more.`},
		{"two objects", `{"action": "complete", "taskId": "t1"}{"action": "complete", "taskId": "t2"}`},
		{"array", `[{"action": "complete", "taskId": "t1"}]`},
		{"null", `null`},
		{"unknown action", `{"action": "delete", "taskId": "t1"}`},
		{"complete without id", `{"action": "complete"}`},
		{"complete with numeric id", `{"action": "complete", "taskId": 7}`},
		{"complete with task", `{"action": "complete", "taskId": "t1", "task": {"title": "x", "workflow": "Personal", "priority": "normal"}}`},
		{"create without task", `{"action": "create"}`},
		{"create with taskId", `{"action": "create", "taskId": "t1", "task": {"title": "x", "workflow": "Personal", "priority": "normal"}}`},
		{"workflow outside enum", `{"action": "create", "task": {"title": "x", "workflow": "Hobbies", "priority": "normal"}}`},
		{"workflow wrong case", `{"action": "create", "task": {"title": "x", "workflow": "career wheel", "priority": "normal"}}`},
		{"priority outside enum", `{"action": "create", "task": {"title": "x", "workflow": "Personal", "priority": "critical"}}`},
		{"missing title", `{"action": "create", "task": {"workflow": "Personal", "priority": "normal"}}`},
		{"blank title", `{"action": "create", "task": {"title": "   ", "workflow": "Personal", "priority": "normal"}}`},
		{"upper-case keys", `{"ACTION": "complete", "TASKID": "t1"}`},
		{"taskid spelled lower", `{"action": "complete", "taskid": "t1"}`},
		{"task key wrong case", `{"action": "create", "task": {"Title": "x", "workflow": "Personal", "priority": "normal"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDecision(tt.raw, "input")
			assert.ErrorIs(t, err, ErrInvalidDecision)
		})
	}
}

func TestParseDecision_IgnoresUnknownKeys(t *testing.T) {
	d, err := ParseDecision(`{"action": "complete", "taskId": "t1", "confidence": 0.9}`, "input")
	require.NoError(t, err)
	assert.Equal(t, Complete("t1"), d)
}

func TestParseDecision_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "```\n```"} {
		_, err := ParseDecision(raw, "input")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
}

func TestFallback(t *testing.T) {
	input := strings.Repeat("a", 60) + " the rest of a long sentence"

	d := Fallback(input)

	require.NoError(t, d.Validate())
	assert.Equal(t, ActionCreate, d.Action)
	assert.Equal(t, strings.Repeat("a", 50), d.Task.Title)
	assert.Equal(t, input, d.Task.Description)
	assert.Equal(t, tasks.WorkflowPersonal, d.Task.Workflow)
	assert.Equal(t, tasks.PriorityNormal, d.Task.Priority)
}

func TestFallback_ShortAndMultibyte(t *testing.T) {
	assert.Equal(t, "call mum", Fallback("call mum").Task.Title)

	input := strings.Repeat("é", 55)
	title := Fallback(input).Task.Title
	assert.Equal(t, 50, len([]rune(title)))
	assert.True(t, strings.HasPrefix(input, title))
}

func TestDecision_Marshal(t *testing.T) {
	assert.Equal(t, `{"action":"complete","taskId":"t1"}`, Complete("t1").Marshal())
	assert.Equal(t,
		`{"action":"create","task":{"title":"R&D","description":"R&D <soon>","workflow":"Career Wheel","priority":"important"}}`,
		Create(TaskSpec{Title: "R&D", Description: "R&D <soon>", Workflow: tasks.WorkflowCareerWheel, Priority: tasks.PriorityImportant}).Marshal())
}
