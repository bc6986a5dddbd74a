package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/josephgoksu/monadgen/internal/config"
	"github.com/josephgoksu/monadgen/internal/llm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeCompleter struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (*llm.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Text: f.text, Model: req.Model, PromptTokens: 100, CompletionTokens: 50, Cost: 0.01}, nil
}

type cmdEnv struct {
	outDir    string
	completer *fakeCompleter
}

// setupCmd isolates config, state dir, clock and completer for one test.
func setupCmd(t *testing.T, text string) *cmdEnv {
	t.Helper()

	viper.Reset()
	bindRootFlags()
	resetFlags(rootCmd)
	cfgFile = ""

	state := t.TempDir()
	origDir := config.GetGlobalConfigDir
	config.GetGlobalConfigDir = func() (string, error) { return state, nil }

	outDir := filepath.Join(t.TempDir(), "outputs")
	t.Setenv("MONADGEN_OUTPUT_DIR", outDir)
	t.Setenv("MONADGEN_TELEMETRY_ENABLED", "false")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	fc := &fakeCompleter{text: text}
	origCompleter := newCompleter
	newCompleter = func(llm.Config) llm.Completer { return fc }
	origNow := nowFunc
	nowFunc = func() time.Time { return testNow }

	t.Cleanup(func() {
		config.GetGlobalConfigDir = origDir
		newCompleter = origCompleter
		nowFunc = origNow
		appConfig = nil
		appLogger = nil
		viper.Reset()
		bindRootFlags()
		resetFlags(rootCmd)
	})
	return &cmdEnv{outDir: outDir, completer: fc}
}

// resetFlags puts every flag back to its default between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(args ...string) (string, error) {
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	setupCmd(t, "")

	output, err := executeCommand("--help")
	assert.NoError(t, err)

	assert.Contains(t, output, "monadgen - LLM content generation") // Short desc
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Commands:")
	for _, name := range []string{"generate", "serve", "article", "about", "generators", "outputs", "models", "config", "mcp"} {
		assert.Contains(t, output, name)
	}
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", GetVersion())
}

func TestInitApp_LoadsConfig(t *testing.T) {
	env := setupCmd(t, "")

	_, err := executeCommand("config", "show")
	require.NoError(t, err)

	require.NotNil(t, appConfig)
	assert.Equal(t, env.outDir, appConfig.Output.Dir)
	assert.Equal(t, llm.ProviderOpenAI, appConfig.LLM.Provider)
	assert.Equal(t, "sk-test", appConfig.LLM.APIKey)
	assert.NotNil(t, appLogger)
}

func TestInitApp_ExplicitConfigMissing(t *testing.T) {
	setupCmd(t, "")

	_, err := executeCommand("--config", filepath.Join(t.TempDir(), "nope.yaml"), "config", "show")
	assert.Error(t, err)
}
