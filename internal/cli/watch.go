package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/internal/presentation/tui"
	loamAdapter "github.com/aretw0/indicator/pkg/adapters/loam"
)

// RunWatch resolves and lints every workspace document, then again each
// time one changes, until ctx is done.
func RunWatch(ctx context.Context, opts Options, w io.Writer) error {
	logger := createLogger(opts.Debug)
	ws, err := loamAdapter.Open(opts.Dir)
	if err != nil {
		return err
	}
	engine := createEngine(opts, logger, nil)

	changes, err := ws.Watch(ctx)
	if err != nil {
		return err
	}

	ids, err := ws.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		checkDocument(ctx, engine, ws, id, w, logger)
	}
	printSystemMessage(w, "Watching %s for changes. Press Ctrl+C to stop.", opts.Dir)

	for {
		select {
		case <-ctx.Done():
			printSystemMessage(w, "Watch stopped.")
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("document changed", "id", id)
			checkDocument(ctx, engine, ws, id, w, logger)
		}
	}
}

// checkDocument prints a one-line status for id.
func checkDocument(ctx context.Context, engine *indicator.Engine, ws *loamAdapter.Workspace, id string, w io.Writer, logger *slog.Logger) {
	doc, err := ws.Get(ctx, id)
	if err != nil {
		fmt.Fprintln(w, tui.Status(false, fmt.Sprintf("%s: %v", id, err)))
		return
	}
	results, err := engine.SupplyAll(ctx, doc)
	if err != nil {
		if !isInterrupted(err) {
			fmt.Fprintln(w, tui.Status(false, fmt.Sprintf("%s: %v", id, err)))
		}
		return
	}

	report := dto.NewReport(id, results, false)
	lint := dto.Lint(engine, id, doc.Traces)

	replaced := 0
	for _, tr := range report.Traces {
		replaced += len(tr.Replaced)
	}
	logger.Debug("document checked", "id", id, "traces", len(report.Traces), "replaced", replaced, "issues", len(lint.Issues))

	msg := fmt.Sprintf("%s: %d traces, %d values replaced", id, len(report.Traces), replaced)
	if !lint.Valid {
		msg = fmt.Sprintf("%s, %d issues", msg, len(lint.Issues))
	}
	fmt.Fprintln(w, tui.Status(lint.Valid && replaced == 0, msg))
}
