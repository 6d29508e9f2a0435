package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrgentActive(t *testing.T) {
	list := []Task{
		{ID: "1", Priority: PriorityUrgent, Status: StatusActive},
		{ID: "2", Priority: PriorityUrgent, Status: StatusCompleted},
		{ID: "3", Priority: PriorityImportant, Status: StatusActive},
		{ID: "4", Priority: PriorityUrgent, Status: StatusActive},
		{ID: "5", Priority: PriorityNormal, Status: StatusCompleted},
	}

	got := UrgentActive(list)

	ids := []string{}
	for _, task := range got {
		ids = append(ids, task.ID)
		assert.Equal(t, StatusActive, task.Status, "completed tasks never show in the alert")
	}
	assert.Equal(t, []string{"1", "4"}, ids)
}

func TestUrgentActive_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, UrgentActive(nil))
	assert.Empty(t, UrgentActive(nil))
}

func TestActiveAndIDSet(t *testing.T) {
	list := []Task{
		{ID: "a", Status: StatusActive},
		{ID: "b", Status: StatusCompleted},
	}

	active := Active(list)
	assert.Len(t, active, 1)

	set := IDSet(active)
	_, okA := set["a"]
	_, okB := set["b"]
	assert.True(t, okA)
	assert.False(t, okB)
}

func TestEnumValidity(t *testing.T) {
	for _, w := range Workflows {
		assert.True(t, w.Valid(), w)
	}
	assert.False(t, Workflow("career wheel").Valid())
	assert.False(t, Workflow("").Valid())

	for _, p := range Priorities {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Priority("Urgent").Valid())

	assert.True(t, StatusActive.Valid())
	assert.False(t, Status("archived").Valid())
}
