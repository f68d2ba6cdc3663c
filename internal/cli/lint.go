package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/internal/presentation/tui"
)

// ErrLintFailed is returned when at least one document has issues.
var ErrLintFailed = errors.New("lint failed")

// RunLint checks the documents named by args against the schema.
func RunLint(ctx context.Context, opts Options, args []string, stdin io.Reader, stdout io.Writer) error {
	logger := createLogger(opts.Debug)
	format, err := resolveFormat(opts.Format, stdout)
	if err != nil {
		return err
	}

	docs, err := loadDocuments(ctx, opts, args, stdin)
	if err != nil {
		return err
	}

	engine := createEngine(opts, logger, nil)
	failed := 0
	for _, doc := range docs {
		report := dto.Lint(engine, doc.ID, doc.Traces)
		if !report.Valid {
			failed++
		}
		if err := writeOutput(stdout, format, report, func() string { return tui.LintMarkdown(report) }); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents", ErrLintFailed, failed, len(docs))
	}
	return nil
}
