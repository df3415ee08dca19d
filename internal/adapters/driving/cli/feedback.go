package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

var (
	feedbackRating       int
	feedbackStatus       string
	feedbackComments     string
	feedbackChallenge    string
	feedbackConversation string
	feedbackStatsJSON    bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Rate generated modules",
}

var feedbackSubmitCmd = &cobra.Command{
	Use:   "submit [module-id]",
	Short: "Rate a module",
	Long: `Records a 1-5 rating for a generated module and whether it was tried in class.

Implementation statuses: not_tried, tried, successful, unsuccessful.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeedbackSubmit,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback, newest first",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackList,
}

var feedbackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feedback statistics",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackStats,
}

func init() {
	feedbackSubmitCmd.Flags().IntVarP(&feedbackRating, "rating", "r", 0, "rating from 1 to 5 (required)")
	feedbackSubmitCmd.Flags().StringVarP(&feedbackStatus, "status", "s", "", "implementation status (default not_tried)")
	feedbackSubmitCmd.Flags().StringVarP(&feedbackComments, "comments", "m", "", "comments")
	feedbackSubmitCmd.Flags().StringVar(&feedbackChallenge, "challenge", "", "the challenge the module addressed")
	feedbackSubmitCmd.Flags().StringVarP(&feedbackConversation, "conversation", "c", "", "conversation the module belongs to")
	feedbackStatsCmd.Flags().BoolVar(&feedbackStatsJSON, "json", false, "output as JSON")

	feedbackCmd.AddCommand(feedbackSubmitCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackStatsCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackSubmit(cmd *cobra.Command, args []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	fb, err := feedbackService.Submit(cmd.Context(), domain.Feedback{
		ModuleID:             args[0],
		Challenge:            feedbackChallenge,
		Rating:               feedbackRating,
		ImplementationStatus: domain.ImplementationStatus(feedbackStatus),
		Comments:             feedbackComments,
		ConversationID:       feedbackConversation,
	})
	if err != nil {
		return fmt.Errorf("failed to submit feedback: %w", err)
	}

	cmd.Printf("Feedback recorded: %s\n", fb.ID)
	return nil
}

func runFeedbackList(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	items, err := feedbackService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}
	if len(items) == 0 {
		cmd.Println("No feedback yet.")
		return nil
	}

	for i := range items {
		fb := items[i]
		cmd.Printf("  %s  %d/5  %-12s  module %s\n", fb.CreatedAt.Local().Format("2006-01-02"), fb.Rating, fb.ImplementationStatus, fb.ModuleID)
		if fb.Comments != "" {
			cmd.Printf("      %s\n", fb.Comments)
		}
	}
	return nil
}

func runFeedbackStats(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	stats, err := feedbackService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get feedback stats: %w", err)
	}

	if feedbackStatsJSON {
		return writeStructured(cmd, formatJSON, stats)
	}

	cmd.Printf("Total feedback: %d\n", stats.TotalCount)
	cmd.Printf("Average rating: %.2f\n", stats.AverageRating)
	if len(stats.ImplementationBreakdown) > 0 {
		cmd.Println("Implementation:")
		statuses := make([]string, 0, len(stats.ImplementationBreakdown))
		for s := range stats.ImplementationBreakdown {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		for _, s := range statuses {
			cmd.Printf("  %-12s %d\n", s, stats.ImplementationBreakdown[domain.ImplementationStatus(s)])
		}
	}
	return nil
}
