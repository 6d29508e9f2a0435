package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"ai-task-manager/internal/db"
)

const (
	EventTaskCreated          = "task_created"
	EventTaskCompleted        = "task_completed"
	EventClassificationFailed = "classification_failed"
)

// Envelope is what we store with every event.
type Envelope struct {
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// FromRequest extracts event envelope fields from request.
// Backend-trustable fields only.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "ios", "android", "web", "cli":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

// Client-provided idempotency key (optional)
// If present and duplicates, insert is ignored.
func SourceEventKeyFromRequest(r *http.Request) string {
	k := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Sink receives a copy of every logged event.
type Sink interface {
	Capture(event string, env Envelope, props map[string]any)
}

// Logger appends events to analytics_events. A nil *Logger drops events.
type Logger struct {
	DB   *db.DB
	Sink Sink
	Now  func() time.Time
}

func New(database *db.DB, sink Sink) *Logger {
	return &Logger{DB: database, Sink: sink, Now: time.Now}
}

// Log inserts one analytics event.
// Never logs sensitive raw text; caller passes sanitized props.
// Failures are logged and swallowed so the core flow never breaks.
func (l *Logger) Log(ctx context.Context, env Envelope, eventName string, props map[string]any, sourceEventKey string) {
	if l == nil || eventName == "" {
		return
	}

	b, err := json.Marshal(props)
	if err != nil {
		log.Printf("[WARN] analytics %s: marshal props: %v", eventName, err)
		return
	}

	if l.Sink != nil {
		l.Sink.Capture(eventName, env, props)
	}

	if l.DB == nil {
		return
	}

	query := `
		INSERT INTO analytics_events (
			event_name, event_time,
			session_id, platform, app_version, device_locale,
			source_event_key,
			properties
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (source_event_key) DO NOTHING
	`
	_, err = l.DB.ExecContext(ctx, l.DB.Rebind(query),
		eventName, l.Now().UTC(),
		nullIfEmpty(env.SessionID), env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
		nullIfEmpty(sourceEventKey),
		string(b),
	)
	if err != nil {
		log.Printf("[WARN] analytics %s: %v", eventName, err)
	}
}

// LogRequest is Log with the envelope and idempotency key taken from r.
func (l *Logger) LogRequest(r *http.Request, eventName string, props map[string]any) {
	l.Log(r.Context(), FromRequest(r), eventName, props, SourceEventKeyFromRequest(r))
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
