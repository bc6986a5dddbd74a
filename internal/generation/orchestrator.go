package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/monadgen/internal/telemetry"
)

// GenerateFunc produces a result. Returning a nil result without an error
// still counts as a failed generation.
type GenerateFunc func(ctx context.Context, opts Options) (*Result, error)

// PersistFunc writes result in one format and returns the artifact path.
type PersistFunc func(result *Result, format Format) (string, error)

// Preflight gates generation on credentials being present.
type Preflight interface {
	CheckCredentials() error
}

// PreflightFunc adapts a plain function to Preflight.
type PreflightFunc func() error

func (f PreflightFunc) CheckCredentials() error { return f() }

// Job is one unit of work handed to the Orchestrator.
type Job struct {
	// Name identifies the generator in logs and telemetry.
	Name     string
	Generate GenerateFunc
	Persist  PersistFunc
	// SuccessMessage is reported once both artifacts are written.
	SuccessMessage string
	// Describe, when set, builds the success message from the result
	// instead.
	Describe func(*Result) string
}

func (j Job) message(result *Result) string {
	if j.Describe != nil {
		return j.Describe(result)
	}
	return j.SuccessMessage
}

// Outcome is what a successful run reports back.
type Outcome struct {
	Result    *Result
	Artifacts []string
	Message   string
}

// Orchestrator runs the check → generate → persist(markdown) →
// persist(json) sequence shared by every generator.
type Orchestrator struct {
	Preflight Preflight
	Logger    *slog.Logger
	Telemetry telemetry.Client
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Orchestrator) track(event string, props telemetry.Properties) {
	if o.Telemetry != nil {
		o.Telemetry.Track(event, props)
	}
}

// Run executes job once. The credential check happens before Generate is
// called and an Orchestrator without one refuses to run; a failed generation
// never reaches Persist. Persistence errors are
// returned as *PersistenceError and earlier artifacts stay on disk.
func (o *Orchestrator) Run(ctx context.Context, job Job, opts Options) (*Outcome, error) {
	log := o.logger().With("generator", job.Name)

	if o.Preflight == nil {
		log.Error("generation refused", "error", ErrNoPreflight)
		return nil, ErrNoPreflight
	}
	if err := o.Preflight.CheckCredentials(); err != nil {
		log.Warn("preflight failed", "error", err)
		return nil, err
	}
	if job.Generate == nil || job.Persist == nil {
		return nil, fmt.Errorf("%w: job %q is incomplete", ErrGenerationFailed, job.Name)
	}

	start := time.Now()
	log.Info("generation started", "options", len(opts))

	result, err := job.Generate(ctx, opts)
	elapsed := time.Since(start).Milliseconds()
	if err != nil || result == nil {
		if err == nil {
			err = fmt.Errorf("%w: %s returned no result", ErrGenerationFailed, job.Name)
		} else {
			err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
		log.Error("generation failed", "error", err, "duration_ms", elapsed)
		o.track(telemetry.EventGenerationFailed, telemetry.GenerationProps(job.Name, opts.String(OptModel, ""), 0, elapsed))
		return nil, err
	}

	artifacts := make([]string, 0, 2)
	for _, format := range []Format{FormatMarkdown, FormatJSON} {
		path, err := job.Persist(result, format)
		if err != nil {
			log.Error("persist failed", "format", format, "error", err, "written", artifacts)
			return nil, &PersistenceError{Format: format, Written: artifacts, Err: err}
		}
		artifacts = append(artifacts, path)
	}

	log.Info("generation completed",
		"items", result.Count(),
		"model", result.ModelUsed,
		"tokens", result.Usage.TotalTokens(),
		"duration_ms", elapsed,
	)
	o.track(telemetry.EventGenerationCompleted, telemetry.GenerationProps(job.Name, result.ModelUsed, result.Count(), elapsed))

	return &Outcome{
		Result:    result,
		Artifacts: artifacts,
		Message:   job.message(result),
	}, nil
}
