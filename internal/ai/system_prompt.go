package ai

import "ai-task-manager/internal/tasks"

// Keyword tables rendered into the instructions. Matching is left to the
// model; the service never applies them itself.
var workflowKeywords = []struct {
	Workflow tasks.Workflow
	Label    string
	Keywords []string
}{
	{tasks.WorkflowDistributed, "PMO & Operations", []string{"iso", "project", "pmo", "tempo", "vendor", "billing", "wiki"}},
	{tasks.WorkflowKonfidants, "Strategic Consulting", []string{"employee", "consulting", "client", "crm", "proposal"}},
	{tasks.WorkflowCareerWheel, "M&E Coaching", []string{"coaching", "wheeler", "career", "dashboard", "mentor"}},
	{tasks.WorkflowPersonal, "", []string{"home", "gym", "date", "anniversary", "council", "tv"}},
}

var priorityTriggers = []struct {
	Priority tasks.Priority
	Triggers []string
}{
	{tasks.PriorityUrgent, []string{"urgent", "asap", "emergency", "immediately"}},
	{tasks.PriorityImportant, []string{"important", "priority", "should"}},
}

var completionCues = []string{"done", "finished", "completed", "sorted"}

const noActiveTasks = "None"

const instructionsTemplate = `You are an ADHD-friendly task management AI assistant.

Current active tasks:
{{active_tasks}}

Available workflows: {{workflows}}

User input: "{{input}}"

Analyze if this input is:
1. Completing an existing task (look for completion words like {{completion_cues}})
2. Creating a new task

If completing a task, match it to an existing task by keywords and respond with:
{"action": "complete", "taskId": "EXACT_TASK_ID_FROM_LIST"}

If creating a new task, determine the workflow based on keywords:
{{workflow_keywords}}

Determine priority:
{{priority_triggers}}
- normal: everything else

Respond with:
{"action": "create", "task": {"title": "brief title", "description": "full description", "workflow": "workflow name", "priority": "urgent|important|normal"}}

Only respond with valid JSON. No additional text.`
