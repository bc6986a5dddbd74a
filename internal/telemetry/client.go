package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client records anonymous generation events.
type Client interface {
	// Track enqueues an event and returns without waiting for delivery.
	Track(event string, properties map[string]any)

	// Close flushes pending events.
	Close() error
}

// Properties is a type alias for event properties.
type Properties = map[string]any

// enqueuer is the subset of the PostHog client we use; tests swap it out.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogClient sends events to PostHog.
type PostHogClient struct {
	client      enqueuer
	config      *Config
	version     string
	mu          sync.RWMutex
	initialized bool
}

// ClientConfig holds configuration for initializing the telemetry client.
type ClientConfig struct {
	APIKey  string
	Version string
	Config  *Config

	// Endpoint overrides the PostHog cloud endpoint (self-hosted).
	Endpoint string
}

// NewPostHogClient creates a PostHog client. Without an API key or config the
// returned client is inert.
func NewPostHogClient(cfg ClientConfig) (*PostHogClient, error) {
	if cfg.APIKey == "" || cfg.Config == nil {
		return &PostHogClient{
			config:  cfg.Config,
			version: cfg.Version,
		}, nil
	}

	phConfig := posthog.Config{
		BatchSize: 10,
		Interval:  2 * time.Second,
		Logger:    quietPostHogLogger{},
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}

	return &PostHogClient{
		client:      client,
		config:      cfg.Config,
		version:     cfg.Version,
		initialized: true,
	}, nil
}

func newPostHogClientWithEnqueuer(enq enqueuer, cfg *Config, version string) *PostHogClient {
	return &PostHogClient{
		client:      enq,
		config:      cfg,
		version:     version,
		initialized: true,
	}
}

// Track enqueues an event. No-op when disabled or not initialized.
func (c *PostHogClient) Track(event string, properties map[string]any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized || c.config == nil || !c.config.IsEnabled() {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("app_version", c.version)
	// Anonymous only: no person profiles.
	props.Set("$process_person_profile", false)

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.config.AnonymousID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes the PostHog queue.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// NoopClient discards every event.
type NoopClient struct{}

func (c *NoopClient) Track(event string, properties map[string]any) {}

func (c *NoopClient) Close() error { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// New returns a PostHog client when cfg enables telemetry and carries an API
// key, and a NoopClient otherwise.
func New(cfg *Config, apiKey, endpoint, version string) Client {
	if cfg == nil || !cfg.IsEnabled() || apiKey == "" {
		return NewNoopClient()
	}
	client, err := NewPostHogClient(ClientConfig{
		APIKey:   apiKey,
		Version:  version,
		Config:   cfg,
		Endpoint: endpoint,
	})
	if err != nil {
		return NewNoopClient()
	}
	return client
}

// quietPostHogLogger keeps transport warnings out of CLI and server output.
type quietPostHogLogger struct{}

func (quietPostHogLogger) Debugf(string, ...interface{}) {}
func (quietPostHogLogger) Logf(string, ...interface{})   {}
func (quietPostHogLogger) Warnf(string, ...interface{})  {}
func (quietPostHogLogger) Errorf(string, ...interface{}) {}
