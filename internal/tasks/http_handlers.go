package tasks

import (
	"encoding/json"
	"log"
	"net/http"
)

// CompletionHook runs after a task was actually transitioned to completed.
type CompletionHook func(r *http.Request, taskID string)

// -------------------------------
// HANDLERS
// -------------------------------

func GetTasksHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := Status(r.URL.Query().Get("status"))
		if status != "" && !status.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		list, err := store.ListTasks(r.Context(), Filter{Status: status})
		if err != nil {
			log.Printf("[ERROR] list tasks: %v", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tasks":        list,
			"active_count": len(Active(list)),
		})
	}
}

func GetUrgentTasksHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListTasks(r.Context(), Filter{Status: StatusActive})
		if err != nil {
			log.Printf("[ERROR] list urgent tasks: %v", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UrgentActive(list))
	}
}

// CompleteTaskHandler backs the check-mark button. Completing an unknown or
// already completed task answers 200 with "completed": false.
func CompleteTaskHandler(store Store, onComplete CompletionHook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			http.Error(w, "task id required", http.StatusBadRequest)
			return
		}

		changed, err := store.CompleteTask(r.Context(), id)
		if err != nil {
			log.Printf("[ERROR] complete task_id=%s: %v", id, err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if changed && onComplete != nil {
			onComplete(r, id)
		}

		list, err := store.ListTasks(r.Context(), Filter{})
		if err != nil {
			log.Printf("[ERROR] reload tasks after complete: %v", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        id,
			"completed": changed,
			"tasks":     list,
			"urgent":    UrgentActive(list),
		})
	}
}
