package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

var conversationShowFormat string

var conversationCmd = &cobra.Command{
	Use:     "conversation",
	Aliases: []string{"conv"},
	Short:   "Manage module conversations",
}

var conversationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Args:  cobra.NoArgs,
	RunE:  runConversationList,
}

var conversationShowCmd = &cobra.Command{
	Use:   "show [conversation-id]",
	Short: "Show a conversation and its modules",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationShow,
}

var conversationDeleteCmd = &cobra.Command{
	Use:   "delete [conversation-id]",
	Short: "Delete a conversation and its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationDelete,
}

func init() {
	conversationShowCmd.Flags().StringVarP(&conversationShowFormat, "format", "f", formatText, "output format: text, json or yaml")

	conversationCmd.AddCommand(conversationListCmd)
	conversationCmd.AddCommand(conversationShowCmd)
	conversationCmd.AddCommand(conversationDeleteCmd)
	rootCmd.AddCommand(conversationCmd)
}

func runConversationList(cmd *cobra.Command, _ []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	convs, err := conversationService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(convs) == 0 {
		cmd.Println("No conversations yet.")
		return nil
	}

	for i := range convs {
		cmd.Printf("  %s  %s  %s\n", convs[i].ID, convs[i].UpdatedAt.Local().Format("2006-01-02 15:04"), convs[i].Title)
	}
	cmd.Printf("\nTotal: %d conversations\n", len(convs))
	return nil
}

func runConversationShow(cmd *cobra.Command, args []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}
	if err := validateFormat(conversationShowFormat); err != nil {
		return err
	}

	conv, err := conversationService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get conversation: %w", err)
	}
	messages, err := conversationService.Messages(cmd.Context(), conv.ID)
	if err != nil {
		return fmt.Errorf("failed to get messages: %w", err)
	}

	if conversationShowFormat != formatText {
		return writeStructured(cmd, conversationShowFormat, struct {
			Conversation *domain.Conversation `json:"conversation" yaml:"conversation"`
			Messages     []domain.Message     `json:"messages" yaml:"messages"`
		}{conv, messages})
	}

	cmd.Printf("%s\n", conv.Title)
	cmd.Printf("Started %s, %d messages\n\n", conv.CreatedAt.Local().Format("2006-01-02 15:04"), len(messages))
	for i := range messages {
		msg := messages[i]
		cmd.Printf("%s: %s\n", msg.Role.Speaker(), msg.Content)
		if msg.Module != nil {
			cmd.Println()
			printModule(cmd, msg.Module)
		}
	}
	return nil
}

func runConversationDelete(cmd *cobra.Command, args []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	if err := conversationService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	cmd.Printf("Deleted conversation %s\n", args[0])
	return nil
}
