package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/codegraph/internal/pipeline"
)

const exitSentinel = "exit"

func newReplCmd() *cobra.Command {
	var summarize bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively ask questions about the ingested codebase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			p, closer, err := setup(ctx)
			if err != nil {
				return err
			}
			defer closer()

			// One question per line until the exit sentinel. A single
			// question's failure is printed and the loop keeps going.
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("Ask a question about the code (or type 'exit' to quit): ")
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					continue
				}
				if strings.EqualFold(question, exitSentinel) {
					break
				}

				ans, err := p.AskDetailed(ctx, question, pipeline.AskOptions{Summarize: summarize})
				if err != nil {
					fmt.Println(pipeline.RenderError(err))
				} else {
					fmt.Println("Answer:", ans.Text)
				}
				fmt.Println()

				if ctx.Err() != nil {
					break
				}
			}

			fmt.Println("Exiting.")
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVar(&summarize, "summarize", false, "wrap matched content in generative summaries")
	return cmd
}
