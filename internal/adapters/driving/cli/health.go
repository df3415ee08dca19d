package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the AI providers, vector index and translator",
	Long:  `Pings every configured dependency. Exits with an error when any of them is down.`,
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	report := healthService.Check(cmd.Context())

	if healthJSON {
		if err := writeStructured(cmd, formatJSON, report); err != nil {
			return err
		}
	} else {
		names := make([]string, 0, len(report.Components))
		for name := range report.Components {
			names = append(names, name)
		}
		sort.Strings(names)

		cmd.Printf("Status: %s\n\n", report.Status)
		for _, name := range names {
			c := report.Components[name]
			mark := "ok"
			if !c.OK {
				mark = "FAIL"
			}
			cmd.Printf("  %-13s %-4s %s\n", name, mark, c.Detail)
		}
	}

	if report.Status != domain.HealthHealthy {
		return fmt.Errorf("status %s", report.Status)
	}
	return nil
}
