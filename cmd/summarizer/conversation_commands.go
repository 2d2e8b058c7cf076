package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"summarizer/internal/conversation"
	"summarizer/internal/workflow"
)

func newConversationCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Inspect or reset a document's model conversation",
	}

	cmd.AddCommand(newConversationShowCommand(ctx))
	cmd.AddCommand(newConversationResetCommand(ctx))
	return cmd
}

func newConversationShowCommand(ctx *commandContext) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the retained conversation turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				messages, err := manager.Conversation(cmdCtx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Conversation for document %d (%d turn(s) retained)\n", id, len(messages))
				for i, msg := range messages {
					content := msg.Content
					if !full {
						content = truncateForDisplay(content, 120)
					}
					fmt.Fprintf(out, "%2d %-9s %s\n", i+1, roleLabel(msg.Role), content)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print full message bodies instead of one-line previews")
	return cmd
}

func newConversationResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Discard the conversation so the next cycle starts fresh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(cmdCtx context.Context, manager *workflow.Manager) error {
				if err := manager.ResetConversation(cmdCtx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset conversation for document %d\n", id)
				return nil
			})
		},
	}
}

func roleLabel(role string) string {
	switch role {
	case conversation.RoleSystem:
		return "system"
	case conversation.RoleUser:
		return "user"
	case conversation.RoleAssistant:
		return "assistant"
	default:
		return strings.ToLower(role)
	}
}
