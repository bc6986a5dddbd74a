// Package config builds the process configuration once at startup from
// .env files, an optional YAML config file, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/monadgen/internal/llm"
	"github.com/spf13/viper"
)

const (
	configName = AppName
	envPrefix  = "MONADGEN"
)

// DotEnvFiles are loaded in order; earlier files win because godotenv never
// overrides variables that are already set.
var DotEnvFiles = []string{".env.local", ".env"}

// envBindings maps config keys to the environment variables the service
// has always honoured, in addition to MONADGEN_* names.
var envBindings = map[string][]string{
	"llm.provider":            {"LLM_PROVIDER"},
	"llm.model":               {"LLM_MODEL"},
	"llm.baseURL":             {"LLM_BASE_URL"},
	"llm.apiKeys.openai":      {"OPENAI_API_KEY"},
	"llm.apiKeys.openrouter":  {"OPENROUTER_API_KEY"},
	"llm.apiKeys.anthropic":   {"ANTHROPIC_API_KEY"},
	"llm.apiKeys.gemini":      {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"llm.defaults.openai":     {"OPENAI_DEFAULT_MODEL"},
	"llm.defaults.openrouter": {"OPENROUTER_DEFAULT_MODEL"},
	"llm.openrouter.referer":  {"OPENROUTER_REFERER"},
	"llm.openrouter.title":    {"OPENROUTER_TITLE"},
	"server.port":             {"PORT"},
	"telemetry.apiKey":        {"POSTHOG_API_KEY"},
}

// apiKeyEnv names the variable a user is told to set for each provider.
var apiKeyEnv = map[string]string{
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
	llm.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	llm.ProviderGemini:     "GEMINI_API_KEY",
}

// LLMSettings selects the provider and model.
type LLMSettings struct {
	Provider string `yaml:"provider" validate:"required,oneof=openai openrouter anthropic gemini ollama"`
	// APIKeySelector is the environment variable holding the provider's key.
	APIKeySelector string `yaml:"apiKeySelector,omitempty"`
	APIKey         string `yaml:"apiKey,omitempty"`
	// ModelOverride beats every per-provider default when set.
	ModelOverride string            `yaml:"model,omitempty"`
	Defaults      map[string]string `yaml:"defaults,omitempty"`
	BaseURL       string            `yaml:"baseURL,omitempty" validate:"omitempty,url"`
	Referer       string            `yaml:"referer,omitempty"`
	Title         string            `yaml:"title,omitempty"`
}

// ServerSettings configures the HTTP front-end.
type ServerSettings struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port" validate:"min=1,max=65535"`
	StaticDir string `yaml:"staticDir"`
}

// OutputSettings configures where artifacts are written.
type OutputSettings struct {
	Dir string `yaml:"dir" validate:"required"`
}

// TelemetrySettings configures anonymous usage events.
type TelemetrySettings struct {
	Enabled  bool   `yaml:"enabled"`
	APIKey   string `yaml:"apiKey,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
}

// Config is built once by Load and passed by pointer from there on.
type Config struct {
	LLM       LLMSettings       `yaml:"llm"`
	Server    ServerSettings    `yaml:"server"`
	Output    OutputSettings    `yaml:"output"`
	Telemetry TelemetrySettings `yaml:"telemetry"`
	Verbose   bool              `yaml:"verbose"`
	LogFormat string            `yaml:"logFormat" validate:"oneof=text json"`
}

var validate = validator.New()

// SetDefaults registers default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault("llm.provider", llm.DefaultProvider)
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.staticDir", "static")
	viper.SetDefault("output.dir", "outputs")
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("logFormat", "text")
}

// BindEnv wires MONADGEN_* variables plus the legacy names in envBindings.
func BindEnv() error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// LoadDotEnv loads DotEnvFiles that exist; missing files are not an error.
func LoadDotEnv() {
	for _, name := range DotEnvFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		_ = godotenv.Load(name)
	}
}

// ReadConfigFile reads cfgFile, or searches ./monadgen.yaml and
// ~/.monadgen/config.yaml. A missing file is fine unless cfgFile was given.
// It returns the file used, or "".
func ReadConfigFile(cfgFile string) (string, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := GetGlobalConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return "", nil
		}
		return "", fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
	}
	return viper.ConfigFileUsed(), nil
}

// Load resolves the current viper state into a validated Config.
func Load() (*Config, error) {
	provider := strings.ToLower(strings.TrimSpace(viper.GetString("llm.provider")))
	if provider == "" {
		provider = llm.DefaultProvider
	}

	cfg := &Config{
		LLM: LLMSettings{
			Provider:       provider,
			APIKeySelector: apiKeyEnv[provider],
			APIKey:         strings.TrimSpace(viper.GetString("llm.apiKeys." + provider)),
			ModelOverride:  strings.TrimSpace(viper.GetString("llm.model")),
			Defaults: map[string]string{
				llm.ProviderOpenAI:     viper.GetString("llm.defaults.openai"),
				llm.ProviderOpenRouter: viper.GetString("llm.defaults.openrouter"),
				llm.ProviderAnthropic:  viper.GetString("llm.defaults.anthropic"),
				llm.ProviderGemini:     viper.GetString("llm.defaults.gemini"),
				llm.ProviderOllama:     viper.GetString("llm.defaults.ollama"),
			},
			BaseURL: viper.GetString("llm.baseURL"),
			Referer: viper.GetString("llm.openrouter.referer"),
			Title:   viper.GetString("llm.openrouter.title"),
		},
		Server: ServerSettings{
			Host:      viper.GetString("server.host"),
			Port:      viper.GetInt("server.port"),
			StaticDir: viper.GetString("server.staticDir"),
		},
		Output: OutputSettings{
			Dir: viper.GetString("output.dir"),
		},
		Telemetry: TelemetrySettings{
			Enabled:  viper.GetBool("telemetry.enabled"),
			APIKey:   viper.GetString("telemetry.apiKey"),
			Endpoint: viper.GetString("telemetry.endpoint"),
		},
		Verbose:   viper.GetBool("verbose"),
		LogFormat: viper.GetString("logFormat"),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Provider returns the typed provider.
func (c *Config) Provider() llm.Provider {
	return llm.Provider(c.LLM.Provider)
}

// DefaultModel resolves the model to use when a request does not name one:
// LLM_MODEL, then the provider default from the environment, then the
// registry default.
func (c *Config) DefaultModel() string {
	if c.LLM.ModelOverride != "" {
		return llm.ResolveModel(c.LLM.ModelOverride)
	}
	if m := strings.TrimSpace(c.LLM.Defaults[c.LLM.Provider]); m != "" {
		return llm.ResolveModel(m)
	}
	if m := llm.DefaultModelForProvider(c.LLM.Provider); m != "" {
		return m
	}
	return llm.DefaultModelForProvider(llm.DefaultProvider)
}

// LLMConfig builds the client config for model (or the default model).
func (c *Config) LLMConfig(model string) llm.Config {
	if model == "" {
		model = c.DefaultModel()
	}
	return llm.Config{
		Provider: c.Provider(),
		Model:    llm.ResolveModel(model),
		APIKey:   c.LLM.APIKey,
		BaseURL:  c.LLM.BaseURL,
		Referer:  c.LLM.Referer,
		Title:    c.LLM.Title,
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
