package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
)

type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]posthog.Capture, len(m.events))
	copy(result, m.events)
	return result
}

func newTestClient(cfg *Config, version string) (*PostHogClient, *mockEnqueuer) {
	mock := &mockEnqueuer{}
	return newPostHogClientWithEnqueuer(mock, cfg, version), mock
}

func TestPostHogClient_Track_WhenEnabled(t *testing.T) {
	cfg := &Config{Enabled: true, AnonymousID: "anon-123"}
	client, mock := newTestClient(cfg, "0.3.0")

	client.Track(EventGenerationCompleted, GenerationProps("twitter_aphorisms", "gpt-4o", 15, 1200))

	events := mock.getEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]

	if event.Event != EventGenerationCompleted {
		t.Errorf("event name = %q, want %q", event.Event, EventGenerationCompleted)
	}
	if event.DistinctId != "anon-123" {
		t.Errorf("distinct_id = %q, want %q", event.DistinctId, "anon-123")
	}
	if event.Properties["generator"] != "twitter_aphorisms" {
		t.Errorf("generator = %v", event.Properties["generator"])
	}
	if event.Properties["item_count"] != 15 {
		t.Errorf("item_count = %v, want 15", event.Properties["item_count"])
	}
	if event.Properties["model"] != "gpt-4o" {
		t.Errorf("model = %v", event.Properties["model"])
	}
	if event.Properties["os"] != runtime.GOOS {
		t.Errorf("os = %v, want %q", event.Properties["os"], runtime.GOOS)
	}
	if event.Properties["app_version"] != "0.3.0" {
		t.Errorf("app_version = %v", event.Properties["app_version"])
	}
	if event.Properties["$process_person_profile"] != false {
		t.Error("person profiles must be disabled")
	}
}

func TestPostHogClient_Track_WhenDisabled(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: false, AnonymousID: "anon"}, "0.3.0")

	client.Track(EventGenerationFailed, nil)

	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected 0 events when disabled, got %d", n)
	}
}

func TestPostHogClient_Track_NilConfig(t *testing.T) {
	mock := &mockEnqueuer{}
	client := &PostHogClient{client: mock, initialized: true}

	client.Track("test_event", nil)

	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected 0 events with nil config, got %d", n)
	}
}

func TestPostHogClient_Close(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: true}, "0.3.0")

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("underlying client should be closed")
	}
}

func TestPostHogClient_Close_NotInitialized(t *testing.T) {
	client := &PostHogClient{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewPostHogClient_EmptyAPIKey(t *testing.T) {
	client, err := NewPostHogClient(ClientConfig{Version: "0.3.0", Config: &Config{Enabled: true}})
	if err != nil {
		t.Fatalf("should not error with empty API key, got %v", err)
	}
	if client.initialized {
		t.Error("should not be initialized with empty API key")
	}
	client.Track("event", nil)
}

func TestNew_FallsBackToNoop(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		apiKey string
	}{
		{"nil config", nil, "key"},
		{"disabled", &Config{Enabled: false}, "key"},
		{"no key", &Config{Enabled: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := New(tt.cfg, tt.apiKey, "", "dev").(*NoopClient); !ok {
				t.Error("expected NoopClient")
			}
		})
	}
}

func TestPostHogClient_Track_Concurrent(t *testing.T) {
	client, mock := newTestClient(&Config{Enabled: true, AnonymousID: "anon"}, "0.3.0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client.Track(EventGenerationCompleted, Properties{"iteration": n})
		}(i)
	}
	wg.Wait()

	if n := len(mock.getEvents()); n != 50 {
		t.Errorf("expected 50 events, got %d", n)
	}
}
