package config

import (
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

const redacted = "********"

// Redacted returns a copy of c with every secret masked.
func (c *Config) Redacted() Config {
	out := *c
	out.LLM.Defaults = maps.Clone(c.LLM.Defaults)
	for k, v := range out.LLM.Defaults {
		if v == "" {
			delete(out.LLM.Defaults, k)
		}
	}
	if out.LLM.APIKey != "" {
		out.LLM.APIKey = redacted
	}
	if out.Telemetry.APIKey != "" {
		out.Telemetry.APIKey = redacted
	}
	return out
}

// WriteYAML renders the redacted configuration as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Redacted()); err != nil {
		return err
	}
	return enc.Close()
}
