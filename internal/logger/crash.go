package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the crash log directory under the state dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep
	MaxCrashLogs = 10
)

// CrashContext is what a crash report remembers about the work in flight.
type CrashContext struct {
	mu         sync.RWMutex
	generator  string
	lastPrompt string
	command    string
	version    string
	basePath   string
}

var globalContext = &CrashContext{}

// SetBasePath sets the directory crash_logs/ is created in.
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetGenerator records the generator being run.
func SetGenerator(id string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.generator = id
}

// SetLastPrompt records the last prompt sent to the completion endpoint.
func SetLastPrompt(prompt string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastPrompt = truncateForLog(prompt, 2000)
}

// Work is the crash context of one request. Work attached to a context
// takes precedence over the process-wide generator and prompt, so concurrent
// requests do not overwrite each other's report.
type Work struct {
	mu         sync.Mutex
	generator  string
	lastPrompt string
}

type workKey struct{}

// WithWork attaches a fresh Work to ctx.
func WithWork(ctx context.Context) (context.Context, *Work) {
	w := &Work{}
	return context.WithValue(ctx, workKey{}, w), w
}

func workFrom(ctx context.Context) *Work {
	if ctx == nil {
		return nil
	}
	w, _ := ctx.Value(workKey{}).(*Work)
	return w
}

// RecordGenerator records id on the Work in ctx, or process-wide without one.
func RecordGenerator(ctx context.Context, id string) {
	w := workFrom(ctx)
	if w == nil {
		SetGenerator(id)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generator = id
}

// RecordPrompt records prompt on the Work in ctx, or process-wide without one.
func RecordPrompt(ctx context.Context, prompt string) {
	w := workFrom(ctx)
	if w == nil {
		SetLastPrompt(prompt)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastPrompt = truncateForLog(prompt, 2000)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog is one crash report.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	Generator  string
	PanicValue string
	StackTrace string
	LastPrompt string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic recovers a panic in the CLI, writes a crash report and exits 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	path, err := WriteCrashReport(r, debug.Stack())
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nmonadgen crashed unexpectedly.\n")
	fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n  %s\n\n", path)
	os.Exit(1)
}

// WriteCrashReport records a recovered panic and returns the log path.
func WriteCrashReport(panicValue any, stack []byte) (string, error) {
	return WriteCrashReportContext(context.Background(), panicValue, stack)
}

// WriteCrashReportContext is WriteCrashReport using the Work in ctx.
// The HTTP server calls it from its recovery middleware and keeps serving.
func WriteCrashReportContext(ctx context.Context, panicValue any, stack []byte) (string, error) {
	log := createCrashLog(panicValue, stack)
	if w := workFrom(ctx); w != nil {
		w.mu.Lock()
		log.Generator, log.LastPrompt = w.generator, w.lastPrompt
		w.mu.Unlock()
	}
	return log.path(), writeCrashLog(log)
}

func createCrashLog(panicValue any, stack []byte) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		Generator:  globalContext.generator,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(stack),
		LastPrompt: globalContext.lastPrompt,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashLog(log CrashLog) error {
	dir := getCrashLogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}

	if err := os.WriteFile(log.path(), []byte(log.format()), 0o644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}

	if err := cleanOldCrashLogs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}
	return nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".monadgen"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func (l CrashLog) path() string {
	filename := fmt.Sprintf("crash_%s_%09d.log", l.Timestamp.Format("20060102_150405"), l.Timestamp.Nanosecond())
	return filepath.Join(getCrashLogDir(), filename)
}

func (l CrashLog) format() string {
	var sb strings.Builder
	rule := strings.Repeat("-", 80) + "\n"

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString("MONADGEN CRASH LOG\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	fmt.Fprintf(&sb, "Timestamp: %s\n", l.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", l.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", l.Command)
	if l.Generator != "" {
		fmt.Fprintf(&sb, "Generator: %s\n", l.Generator)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", l.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", l.OS, l.Arch)

	sb.WriteString("\n" + rule + "PANIC VALUE\n" + rule)
	sb.WriteString(l.PanicValue + "\n")

	sb.WriteString("\n" + rule + "STACK TRACE\n" + rule)
	sb.WriteString(l.StackTrace)

	if l.LastPrompt != "" {
		sb.WriteString("\n" + rule + "LAST LLM PROMPT\n" + rule)
		sb.WriteString(l.LastPrompt + "\n")
	}
	return sb.String()
}

// cleanOldCrashLogs keeps the MaxCrashLogs newest reports.
func cleanOldCrashLogs(dir string) error {
	logs, err := listCrashLogs(dir)
	if err != nil || len(logs) <= MaxCrashLogs {
		return err
	}

	for _, path := range logs[:len(logs)-MaxCrashLogs] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// ListCrashLogs returns crash log paths, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(getCrashLogDir())
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	// Names embed the timestamp, so lexical order is age order.
	sort.Strings(logs)
	return logs, nil
}
