package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dshills/codegraph/internal/config"
	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/internal/llm"
	"github.com/dshills/codegraph/internal/pipeline"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "codegraph",
		Short:   "Ask natural-language questions about a codebase via a graph database",
		Version: fmt.Sprintf("%s (built %s)", version, buildTime),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real environments set variables directly.
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "codegraph.yaml", "path to config file")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newAskCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newServeCmd())

	return root
}

// setup loads config, configures logging and wires the pipeline. The
// returned close function shuts down the store connection.
func setup(ctx context.Context) (*pipeline.Pipeline, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	initLogging(cfg.LogLevel)

	store, err := graph.NewNeo4jStore(ctx, graph.Neo4jConfig{
		URI:      cfg.Neo4j.URI,
		Username: config.Neo4jUsername(),
		Password: config.Neo4jPassword(),
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		return nil, nil, err
	}

	modelName := cfg.Model.Model
	if v := os.Getenv(llm.EnvModel); v != "" {
		modelName = v
	}
	baseURL := cfg.Model.BaseURL
	if v := os.Getenv(llm.EnvBaseURL); v != "" {
		baseURL = v
	}
	model, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  os.Getenv(llm.EnvAPIKey),
		Model:   modelName,
		BaseURL: baseURL,
		Timeout: time.Duration(cfg.Model.TimeoutSecs) * time.Second,
	})
	if err != nil {
		_ = store.Close(ctx)
		return nil, nil, err
	}

	p := pipeline.New(store, model, pipeline.Config{
		Workers:      cfg.Ingest.Workers,
		ChunkMaxSize: cfg.Ingest.ChunkMaxSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
		DisplayBound: cfg.Answer.DisplayBound,
	})

	closer := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}
	return p, closer, nil
}

// initLogging sends structured logs to stderr; stdout stays clean for
// answers and the MCP protocol.
func initLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
