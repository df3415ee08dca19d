// Package cli provides the pragati command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// version is set by SetVersion from build flags.
var version = "dev"

// Services wired by main. Commands report "not configured" when theirs is nil.
var (
	retrievalService    driving.RetrievalService
	moduleService       driving.ModuleService
	conversationService driving.ConversationService
	feedbackService     driving.FeedbackService
	translationService  driving.TranslationService
	healthService       driving.HealthService
	settingsService     driving.SettingsService
)

// Services holds the driving ports the CLI commands call.
type Services struct {
	Retrieval    driving.RetrievalService
	Module       driving.ModuleService
	Conversation driving.ConversationService
	Feedback     driving.FeedbackService
	Translation  driving.TranslationService
	Health       driving.HealthService
	Settings     driving.SettingsService
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pragati",
	Short: "Micro-learning modules for teacher training",
	Long: `Pragati turns SCERT teacher-training manuals into short, practical
micro-learning modules.

Ingest PDF manuals, then describe a classroom challenge and Pragati retrieves
the relevant passages and generates a timed module, optionally translated into
a regional language.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages to stderr")
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	retrievalService = s.Retrieval
	moduleService = s.Module
	conversationService = s.Conversation
	feedbackService = s.Feedback
	translationService = s.Translation
	healthService = s.Health
	settingsService = s.Settings
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
