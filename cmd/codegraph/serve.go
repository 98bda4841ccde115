package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dshills/codegraph/internal/mcpserver"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			p, closer, err := setup(ctx)
			if err != nil {
				return err
			}
			defer closer()

			slog.Info("MCP server ready, listening on stdio")
			return mcpserver.NewServer(p).Serve(ctx)
		},
	}
}
