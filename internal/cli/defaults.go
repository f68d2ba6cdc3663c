package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/pkg/adapters/file"
)

// RunDefaults resolves the documents named by args and prints one report
// per document. When out is set the reports are also saved there.
func RunDefaults(ctx context.Context, opts Options, args []string, stdin io.Reader, stdout io.Writer, out string) error {
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
	reports := make([]dto.Report, 0, len(docs))
	for _, doc := range docs {
		results, err := engine.SupplyAll(ctx, doc)
		if err != nil {
			return handleExecutionError(fmt.Errorf("%s: %w", displayName(doc.ID), err))
		}
		reports = append(reports, dto.NewReport(doc.ID, results, opts.Private))
	}

	if out != "" {
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		if err := file.Save(out, v); err != nil {
			return err
		}
		logger.Info("report saved", "path", out)
	}

	return writeReports(stdout, format, reports)
}

func displayName(id string) string {
	if id == "" {
		return "document"
	}
	return id
}
