package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"summarizer/internal/workflow"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <id> <stage>",
		Short: "Generate a stage summary from the document's source text",
		Long: "Generate extracts the document's text, sends it to the language model, " +
			"and stores the reply as the stage's draft summary. Stage 2 and 3 require " +
			"the prior stage to be approved first.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			stage, err := parseStage(args[1])
			if err != nil {
				return err
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				summary, err := manager.Generate(cmdCtx, id, stage)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Stage %d summary for document %d:\n\n%s\n", stage, id, summary)
				return nil
			})
		},
	}
}

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "correct <id> <stage> <instruction...>",
		Short: "Revise a stage summary with a correction instruction",
		Long: "Correct sends your instruction to the language model inside the " +
			"document's ongoing conversation, so it applies to the previous summary. " +
			"Run it with no instruction to retry a request that previously failed.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			stage, err := parseStage(args[1])
			if err != nil {
				return err
			}
			instruction := strings.Join(args[2:], " ")
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				summary, err := manager.Correct(cmdCtx, id, stage, instruction)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Stage %d summary for document %d:\n\n%s\n", stage, id, summary)
				return nil
			})
		},
	}
}
