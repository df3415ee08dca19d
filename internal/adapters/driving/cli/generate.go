package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

var (
	generateDuration     int
	generateDifficulty   string
	generateLanguage     string
	generateConversation string
	generateFormat       string
	generateSources      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [challenge]",
	Short: "Generate a micro-learning module",
	Long: `Generates a timed micro-learning module for a classroom challenge, grounded
on the ingested manuals.

Pass --conversation to refine a previous module; the last turns of that
conversation are included in the prompt.

Examples:
  pragati generate "Students lose focus after lunch"
  pragati generate "Make it shorter" --conversation 5f0c... --duration 10
  pragati generate "Group work is noisy" --language hin_Deva --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateDuration, "duration", "d", 0, "target duration in minutes (default from settings)")
	generateCmd.Flags().StringVar(&generateDifficulty, "difficulty", "", "beginner, intermediate or advanced")
	generateCmd.Flags().StringVarP(&generateLanguage, "language", "l", "", "output language code, e.g. hin_Deva")
	generateCmd.Flags().StringVarP(&generateConversation, "conversation", "c", "", "continue an existing conversation")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", formatText, "output format: text, json or yaml")
	generateCmd.Flags().BoolVar(&generateSources, "sources", false, "list the manual passages used")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if moduleService == nil {
		return errors.New("module service not configured")
	}
	if err := validateFormat(generateFormat); err != nil {
		return err
	}

	result, err := moduleService.Generate(cmd.Context(), driving.GenerateModuleRequest{
		Challenge:       strings.Join(args, " "),
		ConversationID:  generateConversation,
		TargetDuration:  generateDuration,
		DifficultyLevel: domain.DifficultyLevel(generateDifficulty),
		Language:        generateLanguage,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateFormat != formatText {
		return writeStructured(cmd, generateFormat, struct {
			ConversationID string         `json:"conversation_id" yaml:"conversation_id"`
			Module         *domain.Module `json:"module" yaml:"module"`
		}{result.ConversationID, result.Module})
	}

	printModule(cmd, result.Module)
	if generateSources && len(result.Sources) > 0 {
		cmd.Println("Sources:")
		for i := range result.Sources {
			meta := result.Sources[i].Metadata
			cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, meta.Title, meta.ChunkID, result.Sources[i].Score)
		}
		cmd.Println()
	}
	cmd.Printf("Conversation: %s\n", result.ConversationID)
	cmd.Printf("Rate this module: pragati feedback submit %s --rating 1-5\n", result.Module.ID)
	return nil
}
