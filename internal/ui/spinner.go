package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Spinner animates a status line while a generation runs. It stays silent
// when its writer is not a terminal so piped output is not polluted.
type Spinner struct {
	out      io.Writer
	enabled  bool
	chars    []string
	delay    time.Duration
	suffix   string
	stopChan chan struct{}
	wg       sync.WaitGroup
	active   bool
	mu       sync.Mutex
}

// NewSpinner creates a spinner on stdout.
func NewSpinner(suffix string) *Spinner {
	return NewSpinnerTo(os.Stdout, suffix)
}

// NewSpinnerTo creates a spinner on w. Only terminals get animation.
func NewSpinnerTo(w io.Writer, suffix string) *Spinner {
	return &Spinner{
		out:      w,
		enabled:  IsTerminal(w),
		chars:    []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:    100 * time.Millisecond,
		suffix:   suffix,
		stopChan: make(chan struct{}),
	}
}

// Enabled reports whether the spinner will draw anything.
func (s *Spinner) Enabled() bool { return s.enabled }

// Start starts the spinner in a background goroutine
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active || !s.enabled {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.delay)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				i = (i + 1) % len(s.chars)
				fmt.Fprintf(s.out, "\r%s %s", StylePrimary.Render(s.chars[i]), s.suffix)
			}
		}
	}()
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	fmt.Fprint(s.out, "\r\033[K")
}
