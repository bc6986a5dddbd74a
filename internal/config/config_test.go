package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/monadgen/internal/llm"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViperForTest(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, envs := range envBindings {
		for _, name := range envs {
			t.Setenv(name, "")
		}
	}
	SetDefaults()
	require.NoError(t, BindEnv())
}

func TestLoad_Defaults(t *testing.T) {
	resetViperForTest(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "OPENAI_API_KEY", cfg.LLM.APIKeySelector)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "outputs", cfg.Output.Dir)
	assert.Equal(t, "static", cfg.Server.StaticDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("LLM_PROVIDER", "OpenRouter")
	t.Setenv("OPENROUTER_API_KEY", " or-key ")
	t.Setenv("OPENROUTER_REFERER", "https://example.com")
	t.Setenv("OPENROUTER_TITLE", "Monads")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, "or-key", cfg.LLM.APIKey)
	assert.Equal(t, "OPENROUTER_API_KEY", cfg.LLM.APIKeySelector)
	assert.Equal(t, 9090, cfg.Server.Port)

	lc := cfg.LLMConfig("")
	assert.Equal(t, llm.Provider(llm.ProviderOpenRouter), lc.Provider)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", lc.Model)
	assert.Equal(t, "https://example.com", lc.Referer)
	assert.Equal(t, "Monads", lc.Title)
}

func TestLoad_GeminiFallsBackToGoogleKey(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
}

func TestLoad_InvalidProvider(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("LLM_PROVIDER", "bedrock")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestDefaultModel_Precedence(t *testing.T) {
	resetViperForTest(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.DefaultModel())

	t.Setenv("OPENAI_DEFAULT_MODEL", "gpt-4o-mini")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.DefaultModel())

	t.Setenv("LLM_MODEL", "o3-mini")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "o3-mini-2025-01-31", cfg.DefaultModel(), "override wins and aliases resolve")
}

func TestCheckCredentials(t *testing.T) {
	t.Run("openai missing", func(t *testing.T) {
		resetViperForTest(t)
		cfg, err := Load()
		require.NoError(t, err)

		err = cfg.CheckCredentials()
		var missing *MissingCredentialError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "openai", missing.Provider)
		assert.Equal(t, "OPENAI_API_KEY", missing.EnvVar)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY not set")
	})

	t.Run("openrouter missing has signup hint", func(t *testing.T) {
		resetViperForTest(t)
		t.Setenv("LLM_PROVIDER", "openrouter")
		t.Setenv("OPENAI_API_KEY", "present-but-irrelevant")
		cfg, err := Load()
		require.NoError(t, err)

		err = cfg.CheckCredentials()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENROUTER_API_KEY not set")
		assert.Contains(t, err.Error(), "Get one at: https://openrouter.ai/keys")
	})

	t.Run("present", func(t *testing.T) {
		resetViperForTest(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg, err := Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.CheckCredentials())
	})

	t.Run("ollama needs none", func(t *testing.T) {
		resetViperForTest(t)
		t.Setenv("LLM_PROVIDER", "ollama")
		cfg, err := Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.CheckCredentials())
	})
}

func TestReadConfigFile(t *testing.T) {
	resetViperForTest(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: /tmp/artifacts\nserver:\n  port: 8181\n"), 0o644))

	used, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/artifacts", cfg.Output.Dir)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestReadConfigFile_ExplicitMissing(t *testing.T) {
	resetViperForTest(t)
	_, err := ReadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteYAML_RedactsSecrets(t *testing.T) {
	resetViperForTest(t)
	t.Setenv("OPENAI_API_KEY", "sk-very-secret")
	t.Setenv("POSTHOG_API_KEY", "phc_secret")
	cfg, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))

	out := buf.String()
	assert.NotContains(t, out, "sk-very-secret")
	assert.NotContains(t, out, "phc_secret")
	assert.Contains(t, out, redacted)
	assert.Contains(t, out, "provider: openai")
	assert.Equal(t, "sk-very-secret", cfg.LLM.APIKey, "redaction must not touch the original")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env.local", []byte("MONADGEN_TEST_VALUE=local\n"), 0o644))
	require.NoError(t, os.WriteFile(".env", []byte("MONADGEN_TEST_VALUE=shared\nMONADGEN_TEST_OTHER=shared\n"), 0o644))
	t.Setenv("MONADGEN_TEST_VALUE", "")
	t.Setenv("MONADGEN_TEST_OTHER", "")
	require.NoError(t, os.Unsetenv("MONADGEN_TEST_VALUE"))
	require.NoError(t, os.Unsetenv("MONADGEN_TEST_OTHER"))

	LoadDotEnv()

	assert.Equal(t, "local", os.Getenv("MONADGEN_TEST_VALUE"))
	assert.Equal(t, "shared", os.Getenv("MONADGEN_TEST_OTHER"))
}
