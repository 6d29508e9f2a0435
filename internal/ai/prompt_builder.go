package ai

import (
	"fmt"
	"strings"

	"ai-task-manager/internal/tasks"
)

// BuildPrompt renders the classification instructions for one utterance
// against the current active tasks.
func BuildPrompt(input string, active []tasks.Task) string {
	r := strings.NewReplacer(
		"{{active_tasks}}", renderActiveTasks(active),
		"{{workflows}}", renderWorkflowList(),
		"{{input}}", input,
		"{{completion_cues}}", quoteList(completionCues),
		"{{workflow_keywords}}", renderWorkflowKeywords(),
		"{{priority_triggers}}", renderPriorityTriggers(),
	)
	return r.Replace(instructionsTemplate)
}

func renderActiveTasks(active []tasks.Task) string {
	if len(active) == 0 {
		return noActiveTasks
	}

	var b strings.Builder
	for i, t := range active {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- ID: %s, Title: %s, Workflow: %s, Priority: %s", t.ID, t.Title, t.Workflow, t.Priority)
	}
	return b.String()
}

func renderWorkflowList() string {
	parts := make([]string, 0, len(workflowKeywords))
	for _, w := range workflowKeywords {
		if w.Label == "" {
			parts = append(parts, string(w.Workflow))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", w.Workflow, w.Label))
	}
	return strings.Join(parts, ", ")
}

func renderWorkflowKeywords() string {
	var b strings.Builder
	for i, w := range workflowKeywords {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s", w.Workflow, strings.Join(w.Keywords, ", "))
	}
	return b.String()
}

func renderPriorityTriggers() string {
	var b strings.Builder
	for i, p := range priorityTriggers {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: contains %s", p.Priority, quoteList(p.Triggers))
	}
	return b.String()
}

func quoteList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + w + `"`
	}
	return strings.Join(quoted, ", ")
}
