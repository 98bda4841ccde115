package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <directory>",
		Short: "Ingest a directory of source files into the code graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("directory %s is missing or unreadable: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			ctx, cancel := signalContext()
			defer cancel()

			p, closer, err := setup(ctx)
			if err != nil {
				return err
			}
			defer closer()

			report, err := p.Ingest(ctx, dir)
			if err != nil {
				return err
			}

			fmt.Printf("Ingested %d of %d files (%d chunks, %d edge pairs) in %s\n",
				report.FilesIngested, report.FilesFound, report.ChunksUpserted,
				report.EdgePairs, report.Duration.Round(time.Millisecond))
			if report.ChunksRemoved > 0 {
				fmt.Printf("Removed %d stale chunks.\n", report.ChunksRemoved)
			}
			fmt.Printf("Graph now holds %d code chunks.\n", report.NodeCount)

			for _, f := range report.Failures {
				fmt.Fprintf(os.Stderr, "skipped %s: %s\n", f.Path, f.Err)
			}
			return nil
		},
	}
}
