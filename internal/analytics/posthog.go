package analytics

import (
	"io"
	"log"
	"time"

	"github.com/posthog/posthog-go"
)

// enqueuer is the part of the PostHog client we use, so tests can swap it.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogSink mirrors events to PostHog. The owner is a single anonymous
// distinct id; raw task text never leaves the service.
type PostHogSink struct {
	client     enqueuer
	distinctID string
}

func NewPostHogSink(apiKey, endpoint, distinctID string) (*PostHogSink, error) {
	cfg := posthog.Config{
		BatchSize: 10,
		Interval:  5 * time.Second,
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}

	client, err := posthog.NewWithConfig(apiKey, cfg)
	if err != nil {
		return nil, err
	}
	return &PostHogSink{client: client, distinctID: distinctID}, nil
}

func (s *PostHogSink) Capture(event string, env Envelope, props map[string]any) {
	p := posthog.NewProperties()
	for k, v := range props {
		p.Set(k, v)
	}
	p.Set("platform", env.Platform)
	if env.AppVersion != "" {
		p.Set("app_version", env.AppVersion)
	}
	p.Set("$process_person_profile", false)

	if err := s.client.Enqueue(posthog.Capture{
		DistinctId: s.distinctID,
		Event:      event,
		Properties: p,
	}); err != nil {
		log.Printf("[WARN] posthog enqueue %s: %v", event, err)
	}
}

// Close flushes pending events.
func (s *PostHogSink) Close() error {
	return s.client.Close()
}
