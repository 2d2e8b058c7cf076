package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"summarizer/internal/workflow"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id>",
		Short: "Write the stage 3 summary next to the source file",
		Long: "Export writes the stage 3 summary as a markdown file in the document's " +
			"source folder and marks the document exported. Re-running it overwrites " +
			"the same file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				artifact, err := manager.Export(cmdCtx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported document %d to %s\n", id, artifact)
				return nil
			})
		},
	}
}
