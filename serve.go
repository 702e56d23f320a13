package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/iamLiquidX/SearchX/tools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the drive_search tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, pipeline, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			s := server.NewMCPServer(
				"SearchX MCP Server",
				version,
				server.WithToolCapabilities(false),
			)

			searchTools := tools.NewSearchTools(pipeline, slog.Default())
			s.AddTool(searchTools.SearchTool(), mcp.NewTypedToolHandler(searchTools.SearchHandler))

			slog.Info("searchx MCP server ready", "version", version, "transport", "stdio")
			err = server.ServeStdio(s)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
