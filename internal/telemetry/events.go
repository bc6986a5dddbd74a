package telemetry

// Event names.
const (
	EventGenerationCompleted = "generation_completed"
	EventGenerationFailed    = "generation_failed"
	EventServerStarted       = "server_started"
)

// GenerationProps builds the property set shared by generation events.
func GenerationProps(generator, model string, items int, durationMs int64) Properties {
	props := Properties{
		"generator":   generator,
		"item_count":  items,
		"duration_ms": durationMs,
	}
	if model != "" {
		props["model"] = model
	}
	return props
}
