package assistant

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"ai-task-manager/internal/ai"
	"ai-task-manager/internal/analytics"
)

type inputBody struct {
	Input string `json:"input"`
}

func decodeInput(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body inputBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return "", false
	}
	if strings.TrimSpace(body.Input) == "" {
		http.Error(w, "input is required", http.StatusBadRequest)
		return "", false
	}
	return body.Input, true
}

// -------------------------------
// AI PROCESS (classify only)
// -------------------------------

type aiProcessResponse struct {
	ai.Decision
	Error string `json:"error,omitempty"`
}

// AIProcessHandler returns the classifier decision. Any failure still
// answers 200 with a usable decision, an "error" field and the X-AI-Error
// header.
func AIProcessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeInput(w, r)
		if !ok {
			return
		}

		d, err := svc.Classify(r.Context(), analytics.FromRequest(r), input)
		resp := aiProcessResponse{Decision: d}
		if err != nil {
			resp.Error = err.Error()
			w.Header().Set("X-AI-Error", "1")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// -------------------------------
// PROCESS (classify + apply)
// -------------------------------

func ProcessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeInput(w, r)
		if !ok {
			return
		}

		res, err := svc.Process(r.Context(), analytics.FromRequest(r), input)
		if err != nil {
			log.Printf("[ERROR] process: %v", err)
			writeError(w, err)
			return
		}
		if res.Error != "" {
			w.Header().Set("X-AI-Error", "1")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":            err.Error(),
		"message":          ErrorMessage(err),
		"dismiss_after_ms": DismissAfterMS,
	})
}
