package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/codegraph/internal/pipeline"
)

func newAskCmd() *cobra.Command {
	var showQuery bool
	var summarize bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question about the ingested codebase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			p, closer, err := setup(ctx)
			if err != nil {
				return err
			}
			defer closer()

			ans, err := p.AskDetailed(ctx, args[0], pipeline.AskOptions{Summarize: summarize})
			if err != nil {
				return fmt.Errorf("%s", pipeline.RenderError(err))
			}

			if showQuery {
				fmt.Println("Generated query:")
				fmt.Println(ans.Cypher)
				fmt.Println()
			}
			fmt.Println(ans.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showQuery, "show-query", false, "print the generated Cypher query before the answer")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "wrap the matched content in a generative summary")
	return cmd
}
