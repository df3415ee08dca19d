package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

var (
	translateTo   string
	translateFrom string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text into a regional language",
	Long: `Translates text with the configured translation backend.

Run 'pragati languages' for the supported language codes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	translateCmd.Flags().StringVar(&translateTo, "to", "", "target language code (required)")
	translateCmd.Flags().StringVar(&translateFrom, "from", domain.DefaultLanguage, "source language code")
	_ = translateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(languagesCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if translationService == nil {
		return errors.New("translation service not configured")
	}

	out, err := translationService.Translate(cmd.Context(), strings.Join(args, " "), translateFrom, translateTo)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	cmd.Println(out)
	return nil
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	languages := domain.SupportedLanguages()
	if translationService != nil {
		languages = translationService.Languages()
		if !translationService.Available() {
			cmd.Println("No translation backend configured; modules are generated in English.")
			cmd.Println()
		}
	}

	for _, l := range languages {
		cmd.Printf("  %-9s %s\n", l.Code, l.Name)
	}
	return nil
}
