package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-task-manager/internal/db"
)

func TestSQLRecorder_Appends(t *testing.T) {
	database, err := db.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.Migrate(context.Background()))

	c := newTestClassifier(&fakeModel{reply: "not json"}, SQLRecorder{DB: database})
	_, _ = c.Classify(context.Background(), "first", nil)
	c.Model = &fakeModel{reply: `{"action": "complete", "taskId": "t9"}`}
	_, _ = c.Classify(context.Background(), "done with t9", nil)

	rows, err := database.Query(`SELECT input, response, context_type, model, error FROM ai_memory ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct{ input, response, contextType, model, errText string }
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.input, &r.response, &r.contextType, &r.model, &r.errText))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 2)

	assert.Equal(t, "first", got[0].input)
	assert.Contains(t, got[0].response, `"workflow":"Personal"`)
	assert.NotEmpty(t, got[0].errText)

	assert.Equal(t, "done with t9", got[1].input)
	assert.Equal(t, `{"action":"complete","taskId":"t9"}`, got[1].response)
	assert.Equal(t, "task_processing", got[1].contextType)
	assert.Equal(t, "claude-3-haiku-20240307", got[1].model)
	assert.Empty(t, got[1].errText)
}
