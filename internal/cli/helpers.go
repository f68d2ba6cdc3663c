package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/internal/logging"
	"github.com/aretw0/indicator/internal/presentation/tui"
	"github.com/aretw0/indicator/pkg/adapters/file"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// LogLevelEnv sets the log level when --debug is not given.
const LogLevelEnv = "INDICATOR_LOG_LEVEL"

// createLogger configures the application logger.
// Logs go to Stderr (to separate from Stdout output) and are off unless
// debug is set or LogLevelEnv names a level.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	if level := os.Getenv(LogLevelEnv); level != "" {
		return logging.New(logging.ParseLevel(level))
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// resolveFormat picks the output format for w.
func resolveFormat(format string, w io.Writer) (string, error) {
	switch format {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return format, nil
	case "":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return FormatMarkdown, nil
		}
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (json, yaml, markdown)", format)
}

// writeOutput encodes v as format. Markdown is rendered with glamour from
// the given markdown source.
func writeOutput(w io.Writer, format string, v any, markdown func() string) error {
	switch format {
	case FormatMarkdown:
		out, err := tui.NewRenderer()(markdown())
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatYAML:
		data, err := file.Encode(v, file.FormatYAML)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		data, err := file.Encode(v, file.FormatJSON)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
}

func writeReports(w io.Writer, format string, reports []dto.Report) error {
	for _, report := range reports {
		report := report
		if err := writeOutput(w, format, report, func() string { return tui.ReportMarkdown(report) }); err != nil {
			return err
		}
	}
	return nil
}

func isInterrupted(err error) bool {
	return err != nil && errors.Is(err, context.Canceled)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if isInterrupted(err) {
		return nil
	}
	return err
}
