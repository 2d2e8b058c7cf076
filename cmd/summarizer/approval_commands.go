package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"summarizer/internal/documents"
	"summarizer/internal/workflow"
)

func newApproveCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "approve <id> <stage>",
		Short: "Approve a stage summary and seed the next stage",
		Long: "Approve marks the stage's summary as reviewed. For stages 1 and 2 the " +
			"approved text becomes the next stage's draft unless that stage already " +
			"holds text (use --overwrite to replace it).",
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
				result, err := manager.Approve(cmdCtx, id, stage, overwrite)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !result.Changed {
					fmt.Fprintf(out, "Stage %d was already approved\n", stage)
					return nil
				}
				fmt.Fprintf(out, "Approved stage %d of document %d\n", stage, id)
				if result.Promote != nil {
					fmt.Fprintf(out, "Stage %d draft seeded from stage %d\n", result.Promote.To, result.Promote.From)
				} else if stage < documents.StageCount {
					fmt.Fprintf(out, "Stage %d kept its existing draft (use --overwrite to replace)\n", stage+1)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the next stage's existing draft")
	return cmd
}

func newUnapproveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unapprove <id> <stage>",
		Short: "Withdraw a stage approval (and every approval after it)",
		Args:  cobra.ExactArgs(2),
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
				cascade, err := manager.Unapprove(cmdCtx, id, stage)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Unapproved stage %d of document %d\n", stage, id)
				for _, s := range cascade {
					fmt.Fprintf(out, "Also withdrew stage %d approval\n", s)
				}
				return nil
			})
		},
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "edit <id> <stage>",
		Short: "Replace a stage summary with reviewer-authored text",
		Long: "Edit replaces the stage's summary with text read from --file or stdin. " +
			"An approved stage may be edited but not emptied.",
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
			text, err := readSummaryText(cmd, fromFile)
			if err != nil {
				return err
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				if err := manager.SetStageSummary(cmdCtx, id, stage, text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated stage %d summary of document %d\n", stage, id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Read the replacement text from a file")
	return cmd
}

func readSummaryText(cmd *cobra.Command, fromFile string) (string, error) {
	if fromFile = strings.TrimSpace(fromFile); fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return "", fmt.Errorf("read summary text: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	if stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), "Reading summary text from stdin; finish with Ctrl-D")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read summary text: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func newNotesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id> [text...]",
		Short: "Set or clear a document's export notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			notes := strings.Join(args[1:], " ")
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				if err := manager.SetExportNotes(cmdCtx, id, notes); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if strings.TrimSpace(notes) == "" {
					fmt.Fprintf(out, "Cleared notes for document %d\n", id)
				} else {
					fmt.Fprintf(out, "Updated notes for document %d\n", id)
				}
				return nil
			})
		},
	}
}
