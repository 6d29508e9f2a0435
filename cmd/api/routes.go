package main

import (
	"net/http"
	"slices"

	"github.com/rs/cors"

	"ai-task-manager/internal/analytics"
	"ai-task-manager/internal/assistant"
	"ai-task-manager/internal/auth"
	"ai-task-manager/internal/tasks"
)

type routerDeps struct {
	Store             tasks.Store
	Service           *assistant.Service
	Events            *analytics.Logger
	JWTSecret         []byte
	OwnerPasswordHash string
	AllowedOrigins    []string
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()
	authMW := auth.New(d.JWTSecret)

	// -------------------------------
	// PUBLIC
	// -------------------------------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("POST /auth/login", auth.LoginHandler(d.JWTSecret, d.OwnerPasswordHash))
	mux.HandleFunc("POST /auth/logout", auth.LogoutHandler())

	// -------------------------------
	// AUTHORIZED
	// -------------------------------
	mux.HandleFunc("GET /auth/me", authMW.Wrap(auth.MeHandler()))

	mux.HandleFunc("POST /api/ai-process", authMW.Wrap(assistant.AIProcessHandler(d.Service)))
	mux.HandleFunc("POST /api/process", authMW.Wrap(assistant.ProcessHandler(d.Service)))

	mux.HandleFunc("GET /api/tasks", authMW.Wrap(tasks.GetTasksHandler(d.Store)))
	mux.HandleFunc("GET /api/tasks/urgent", authMW.Wrap(tasks.GetUrgentTasksHandler(d.Store)))
	mux.HandleFunc("POST /api/tasks/{id}/complete", authMW.Wrap(tasks.CompleteTaskHandler(d.Store,
		func(r *http.Request, taskID string) {
			d.Events.LogRequest(r, analytics.EventTaskCompleted, map[string]any{
				"source": "manual",
			})
		},
	)))

	mux.HandleFunc("POST /api/events/app-opened", authMW.Wrap(analytics.AppOpenedHandler(d.Events)))
	mux.HandleFunc("POST /api/events/urgent-alert-shown", authMW.Wrap(analytics.UrgentAlertShownHandler(d.Events)))

	// a wildcard origin never gets credentials
	allowCredentials := len(d.AllowedOrigins) > 0 && !slices.Contains(d.AllowedOrigins, "*")

	c := cors.New(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type", "Authorization",
			"X-Platform", "X-App-Version", "X-Session-Id", "X-Device-Locale",
			"Idempotency-Key",
		},
		ExposedHeaders:   []string{"X-AI-Error"},
		AllowCredentials: allowCredentials,
	})

	return c.Handler(mux)
}
