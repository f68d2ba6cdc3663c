package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/indicator/internal/presentation/tui"
	"github.com/aretw0/indicator/pkg/ports"
)

// RunPush copies the documents named by args into the Redis store at
// opts.RedisAddr.
func RunPush(ctx context.Context, opts Options, args []string, stdin io.Reader, w io.Writer) error {
	if opts.RedisAddr == "" {
		return fmt.Errorf("push needs --redis")
	}
	store := redisStore(opts)
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		return err
	}
	return pushDocuments(ctx, opts, store, args, stdin, w)
}

func pushDocuments(ctx context.Context, opts Options, store ports.DocumentStore, args []string, stdin io.Reader, w io.Writer) error {
	docs, err := loadDocuments(ctx, opts, args, stdin)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := store.Save(ctx, doc); err != nil {
			fmt.Fprintln(w, tui.Status(false, fmt.Sprintf("%s: %v", displayName(doc.ID), err)))
			return err
		}
		fmt.Fprintln(w, tui.Status(true, fmt.Sprintf("%s: %d traces pushed", doc.ID, len(doc.Traces))))
	}
	return nil
}
