package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/indicator/pkg/adapters/file"
	loamAdapter "github.com/aretw0/indicator/pkg/adapters/loam"
	"github.com/aretw0/indicator/pkg/domain"
)

// StdinArg names standard input as a document argument.
const StdinArg = "-"

// loadDocuments resolves the command arguments. Each argument is "-" for
// stdin, a path to a JSON or YAML file, or a document ID in the workspace.
// Without arguments every workspace document is loaded.
func loadDocuments(ctx context.Context, opts Options, args []string, stdin io.Reader) ([]*domain.Document, error) {
	var ws *loamAdapter.Workspace
	workspace := func() (*loamAdapter.Workspace, error) {
		if ws != nil {
			return ws, nil
		}
		var err error
		ws, err = loamAdapter.Open(opts.Dir)
		return ws, err
	}

	if len(args) == 0 {
		w, err := workspace()
		if err != nil {
			return nil, err
		}
		ids, err := w.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no documents found in %s", opts.Dir)
		}
		args = ids
	}

	docs := make([]*domain.Document, 0, len(args))
	for _, arg := range args {
		doc, err := loadDocument(ctx, opts, arg, stdin, workspace)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func loadDocument(ctx context.Context, opts Options, arg string, stdin io.Reader, workspace func() (*loamAdapter.Workspace, error)) (*domain.Document, error) {
	if arg == StdinArg {
		format := file.Format(opts.InputFormat)
		if format == "" {
			format = file.FormatYAML
		}
		return file.Read(stdin, format)
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return file.Load(arg)
	}
	w, err := workspace()
	if err != nil {
		return nil, err
	}
	return w.Get(ctx, arg)
}
