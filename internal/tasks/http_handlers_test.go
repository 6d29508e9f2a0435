package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *SQLStore, in ...NewTask) []Task {
	t.Helper()
	var out []Task
	for _, n := range in {
		created, err := s.CreateTask(context.Background(), n)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestGetTasksHandler(t *testing.T) {
	s := newTestStore(t)
	seeded := seed(t, s,
		NewTask{Title: "ISO review", Workflow: WorkflowDistributed, Priority: PriorityNormal},
		NewTask{Title: "Client call", Workflow: WorkflowKonfidants, Priority: PriorityUrgent},
	)
	_, err := s.CompleteTask(context.Background(), seeded[0].ID)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	GetTasksHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tasks       []Task `json:"tasks"`
		ActiveCount int    `json:"active_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tasks, 2)
	assert.Equal(t, 1, body.ActiveCount)
	assert.Equal(t, "Client call", body.Tasks[0].Title)
}

func TestGetTasksHandler_StatusFilter(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, NewTask{Title: "a", Workflow: WorkflowPersonal, Priority: PriorityNormal})

	rec := httptest.NewRecorder()
	GetTasksHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/api/tasks?status=completed", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tasks":[]`)

	rec = httptest.NewRecorder()
	GetTasksHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/api/tasks?status=archived", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUrgentTasksHandler(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		NewTask{Title: "urgent one", Workflow: WorkflowKonfidants, Priority: PriorityUrgent},
		NewTask{Title: "normal one", Workflow: WorkflowPersonal, Priority: PriorityNormal},
	)

	rec := httptest.NewRecorder()
	GetUrgentTasksHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/urgent", nil))

	var urgent []Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &urgent))
	require.Len(t, urgent, 1)
	assert.Equal(t, "urgent one", urgent[0].Title)
}

func TestCompleteTaskHandler(t *testing.T) {
	s := newTestStore(t)
	seeded := seed(t, s, NewTask{Title: "Client call", Workflow: WorkflowKonfidants, Priority: PriorityUrgent})

	var hooked []string
	hook := func(r *http.Request, id string) { hooked = append(hooked, id) }

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tasks/{id}/complete", CompleteTaskHandler(s, hook))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks/"+seeded[0].ID+"/complete", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Completed bool   `json:"completed"`
			Tasks     []Task `json:"tasks"`
			Urgent    []Task `json:"urgent"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, i == 0, body.Completed)
		assert.Equal(t, StatusCompleted, body.Tasks[0].Status)
		assert.Empty(t, body.Urgent)
	}

	assert.Equal(t, []string{seeded[0].ID}, hooked, "hook fires only on the real transition")
}
