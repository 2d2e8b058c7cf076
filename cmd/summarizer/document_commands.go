package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"summarizer/internal/documents"
	"summarizer/internal/workflow"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var authors string

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Register a document for staged review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				doc, err := manager.CreateDocument(cmdCtx, args[0], title, authors)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Added document %d: %s\n", doc.ID, doc.Title)
				if len(doc.ImageLinks) > 0 {
					fmt.Fprintf(out, "Captured %d sidecar image(s)\n", len(doc.ImageLinks))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title (defaults to the filename)")
	cmd.Flags().StringVar(&authors, "authors", "", "Document authors")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents and their stage status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				docs, err := manager.ListDocuments(cmdCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(docs) == 0 {
					fmt.Fprintln(out, "No documents. Use `summarizer add <file>` to register one.")
					return nil
				}
				rows := make([][]string, 0, len(docs))
				for _, doc := range docs {
					rows = append(rows, []string{
						fmt.Sprintf("%d", doc.ID),
						truncateForDisplay(doc.Title, 40),
						stageStatus(doc, 1),
						stageStatus(doc, 2),
						stageStatus(doc, 3),
						yesNo(doc.Published),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Title", "Stage 1", "Stage 2", "Stage 3", "Exported"}, rows))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var stageFlag int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a document's metadata and summaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			if stageFlag != 0 && !documents.ValidStage(stageFlag) {
				return fmt.Errorf("invalid stage %d (expected 1-%d)", stageFlag, documents.StageCount)
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				doc, err := manager.GetDocument(cmdCtx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if stageFlag != 0 {
					summary := doc.StageSummary(stageFlag)
					if strings.TrimSpace(summary) == "" {
						fmt.Fprintf(out, "Stage %d has no summary yet\n", stageFlag)
						return nil
					}
					fmt.Fprintln(out, summary)
					return nil
				}

				fmt.Fprintf(out, "Document %d\n", doc.ID)
				fmt.Fprintf(out, "  Title:    %s\n", doc.Title)
				fmt.Fprintf(out, "  Authors:  %s\n", doc.Authors)
				fmt.Fprintf(out, "  Source:   %s\n", doc.SourcePath)
				fmt.Fprintf(out, "  Added:    %s\n", doc.CreatedAt.Local().Format("2006-01-02 15:04"))
				fmt.Fprintf(out, "  Exported: %s\n", yesNo(doc.Published))
				if len(doc.ImageLinks) > 0 {
					fmt.Fprintf(out, "  Images:   %s\n", strings.Join(doc.ImageLinks, ", "))
				}
				if strings.TrimSpace(doc.ExportNotes) != "" {
					fmt.Fprintf(out, "  Notes:    %s\n", doc.ExportNotes)
				}
				for stage := 1; stage <= documents.StageCount; stage++ {
					fmt.Fprintf(out, "\nStage %d [%s]\n", stage, stageStatus(doc, stage))
					summary := strings.TrimSpace(doc.StageSummary(stage))
					if summary == "" {
						fmt.Fprintln(out, "  (no summary)")
						continue
					}
					fmt.Fprintf(out, "  %s\n", truncateForDisplay(summary, 200))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&stageFlag, "stage", 0, "Print only this stage's full summary")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document and its conversation history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				if err := manager.DeleteDocument(cmdCtx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %d\n", id)
				return nil
			})
		},
	}
}
