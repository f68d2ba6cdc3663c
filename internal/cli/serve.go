package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/indicator"
	httpAdapter "github.com/aretw0/indicator/pkg/adapters/http"
	loamAdapter "github.com/aretw0/indicator/pkg/adapters/loam"
	"github.com/aretw0/indicator/pkg/adapters/mcp"
	"github.com/aretw0/indicator/pkg/adapters/redis"
)

const shutdownTimeout = 5 * time.Second

// NewServeHandler builds the HTTP API with metrics on /metrics. Documents
// come from Redis when opts.RedisAddr is set and from the workspace in
// opts.Dir otherwise. A workspace that cannot be opened leaves the
// document routes disabled.
func NewServeHandler(opts Options) http.Handler {
	logger := createLogger(opts.Debug)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	srv := &httpAdapter.Server{
		Engine: createEngine(opts, logger, reg),
		Logger: logger,
	}
	switch {
	case opts.RedisAddr != "":
		srv.Source = redisStore(opts)
	case opts.Dir != "":
		ws, err := loamAdapter.Open(opts.Dir)
		if err != nil {
			logger.Warn("workspace unavailable", "dir", opts.Dir, "err", err)
		} else {
			srv.Source = ws
			srv.Watcher = ws
		}
	}

	return httpAdapter.Mount(httpAdapter.NewHandler(srv), "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func redisStore(opts Options) *redis.Store {
	return redis.New(opts.RedisAddr, os.Getenv("INDICATOR_REDIS_PASSWORD"), 0, redis.WithTTL(opts.RedisTTL))
}

// RunServe serves the HTTP API on port until ctx is done.
func RunServe(ctx context.Context, opts Options, port string, w io.Writer) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewServeHandler(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(w, "Starting indicator server on %s", srv.Addr)
		printSystemMessage(w, "Serving documents from: %s", opts.Dir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		printSystemMessage(w, "Start shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		printSystemMessage(w, "Server stopped gracefully")
		return nil
	}
}

// RunMCP serves the MCP tools over stdio or SSE.
func RunMCP(ctx context.Context, opts Options, transport string, port int) error {
	logger := createLogger(opts.Debug)
	engine := createEngine(opts, logger, nil)

	var server *mcp.Server
	if opts.RedisAddr != "" {
		server = mcp.NewServer(engine, redisStore(opts))
	} else if ws, err := loamAdapter.Open(opts.Dir); err != nil {
		logger.Warn("workspace unavailable", "dir", opts.Dir, "err", err)
		server = mcp.NewServer(engine, nil)
	} else {
		server = mcp.NewServer(engine, ws)
	}

	switch transport {
	case "stdio":
		return server.ServeStdio()
	case "sse":
		return server.ServeSSE(ctx, port)
	}
	return fmt.Errorf("unknown transport %q (stdio, sse)", transport)
}

// PrintSchema writes the trace schema as JSON, or YAML when asked.
func PrintSchema(opts Options, w io.Writer) error {
	data, err := json.MarshalIndent(indicator.New().Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if opts.Format != FormatYAML {
		_, err = w.Write(append(data, '\n'))
		return err
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}
	return writeOutput(w, FormatYAML, tree, nil)
}
