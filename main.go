// Command searchx searches Google Drive roots and publishes the results as
// linked Telegraph pages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/iamLiquidX/SearchX/search"
	"github.com/iamLiquidX/SearchX/types"
)

var (
	configPath   string
	outputFormat string
)

func main() {
	cmd := &cobra.Command{
		Use:   "searchx",
		Short: "Search Google Drive and publish results to Telegraph",
		Long: `searchx searches one or more Google Drive roots for files and folders
by name, publishes the matches as paginated Telegraph pages and
returns a link to the first page. It runs as an MCP server or as a
one-shot command.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $SEARCHX_CONFIG or "+types.DefaultConfigPath+")")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "response format: compact or json")
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		f, err := types.ParseOutputFormat(outputFormat)
		if err != nil {
			return err
		}
		if f != "" {
			types.GlobalOutputFormat = f
		}
		return nil
	}
	cmd.AddCommand(newServeCmd(), newSearchCmd())

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

// setup loads the config, installs the logger and builds the pipeline.
func setup(ctx context.Context) (*types.Config, *types.Clients, *search.Pipeline, error) {
	cfg, err := types.LoadConfig(types.ConfigPath(configPath))
	if err != nil {
		return nil, nil, nil, err
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, nil, err
	}
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	clients, err := types.NewClients(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize clients: %w", err)
	}

	sc := clients.ForSearch()
	pipeline := search.New(sc.Storage, sc.Publisher, cfg.SearchConfig(), logger)
	return cfg, clients, pipeline, nil
}
