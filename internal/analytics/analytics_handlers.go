package analytics

import (
	"encoding/json"
	"net/http"
)

// Client-reported events. The server only accepts a fixed set of names and
// small, known properties.

// app_opened: the task list was opened
func AppOpenedHandler(l *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ColdStart bool   `json:"cold_start"`
			From      string `json:"from"` // push/deeplink/icon/unknown
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		l.LogRequest(r, "app_opened", map[string]any{
			"cold_start": body.ColdStart,
			"from":       body.From,
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

// urgent_alert_shown: the urgent block was rendered with N tasks
func UrgentAlertShownHandler(l *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l.LogRequest(r, "urgent_alert_shown", map[string]any{
			"count": body.Count,
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
