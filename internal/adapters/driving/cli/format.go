package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// writeStructured prints v as JSON or YAML.
func writeStructured(cmd *cobra.Command, format string, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Print(string(data))
	default:
		return validateFormat(format)
	}
	return nil
}

// printModule renders a module for the terminal.
func printModule(cmd *cobra.Command, m *domain.Module) {
	cmd.Println(m.Title)
	cmd.Println(strings.Repeat("=", len([]rune(m.Title))))
	cmd.Printf("%d min | %s | %s\n\n", m.TotalDuration, m.DifficultyLevel, languageLabel(m.Language))

	for i, sec := range m.Sections {
		cmd.Printf("%d. %s (%d min)\n", i+1, sec.Title, sec.DurationMinutes)
		for _, line := range strings.Split(strings.TrimSpace(sec.Content), "\n") {
			cmd.Printf("   %s\n", line)
		}
		if sec.Activity != "" {
			cmd.Printf("   Activity: %s\n", sec.Activity)
		}
		cmd.Println()
	}
}

func languageLabel(code string) string {
	if name, ok := domain.LanguageName(code); ok {
		return name
	}
	return code
}
