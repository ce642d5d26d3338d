package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/conduit"
	"github.com/fieldline/conduit/internal/adapters/file"
	"github.com/fieldline/conduit/internal/adapters/memory"
	redisstore "github.com/fieldline/conduit/internal/adapters/redis"
	"github.com/fieldline/conduit/internal/logging"
	"github.com/fieldline/conduit/pkg/graph"
	"github.com/fieldline/conduit/pkg/persist"
)

var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Conduit validates and resolves network-automation workflow graphs",
	Long: `Conduit treats a workflow as a graph of typed nodes and edges.
It validates structure, port types, platforms and reachability, resolves
{{...}} parameter expressions, and migrates legacy flat job documents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringSlice("catalog", nil, "Additional YAML catalog files merged over the builtin node types")
	rootCmd.PersistentFlags().String("store", "file", "Workflow store backend: 'memory', 'file' or 'redis'")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for the file store (default .conduit/workflows)")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (only for --store=redis)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// newEngine builds the engine from the persistent flags.
func newEngine(cmd *cobra.Command) (*conduit.Engine, error) {
	catalogFiles, _ := cmd.Flags().GetStringSlice("catalog")
	storeKind, _ := cmd.Flags().GetString("store")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")

	opts := []conduit.Option{
		conduit.WithLogger(logging.New(logLevel(cmd))),
	}
	if len(catalogFiles) > 0 {
		opts = append(opts, conduit.WithCatalogFiles(catalogFiles...))
	}

	switch storeKind {
	case "memory":
		opts = append(opts, conduit.WithStore(memory.NewStore()))
	case "file":
		opts = append(opts, conduit.WithStore(file.NewStore(dataDir)))
	case "redis":
		opts = append(opts, conduit.WithStore(redisstore.New(redisAddr, "", 0)))
	default:
		return nil, fmt.Errorf("unknown store backend: %s", storeKind)
	}

	return conduit.New(opts...)
}

func logLevel(cmd *cobra.Command) slog.Level {
	level, _ := cmd.Flags().GetString("log-level")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// loadWorkflowFile reads a persisted workflow document from disk.
func loadWorkflowFile(path string) (*graph.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}
	w, err := persist.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow file: %w", err)
	}
	return w, nil
}
