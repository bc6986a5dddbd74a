package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/monadgen/internal/config"
	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/josephgoksu/monadgen/internal/ui"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if isVerbose() && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		// By default, print the clean, user-friendly message.
		fmt.Fprintln(os.Stderr, ui.StyleError.Render(userMsg))
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if isVerbose() {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// userMessage turns known failures into one actionable line.
func userMessage(err error) string {
	var (
		missing   *config.MissingCredentialError
		malformed *generation.MalformedJSONError
		persist   *generation.PersistenceError
	)
	switch {
	case errors.As(err, &missing):
		return "Error: " + missing.Error()
	case errors.Is(err, generators.ErrUnknownGenerator):
		return fmt.Sprintf("Error: %v. Run 'monadgen generators' to list them.", err)
	case errors.Is(err, generators.ErrInputNotFound):
		return fmt.Sprintf("Error: %v. Run 'monadgen generate substack_readers' and 'monadgen generate substack_styles' first.", err)
	case errors.As(err, &malformed):
		return "Error: the model returned malformed JSON. Try again or use a different model."
	case errors.As(err, &persist):
		return fmt.Sprintf("Error: could not save %s output: %v", persist.Format, persist.Err)
	default:
		return "Error: " + err.Error()
	}
}
