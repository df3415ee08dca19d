package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	indexStatsJSON bool
	indexDropForce bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the vector index",
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	Args:  cobra.NoArgs,
	RunE:  runIndexStats,
}

var indexDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete every chunk in the vector index",
	Long:  `Irreversibly removes all ingested chunks. Conversations and feedback are kept.`,
	Args:  cobra.NoArgs,
	RunE:  runIndexDrop,
}

func init() {
	indexStatsCmd.Flags().BoolVar(&indexStatsJSON, "json", false, "output as JSON")
	indexDropCmd.Flags().BoolVar(&indexDropForce, "force", false, "skip the confirmation prompt")

	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexDropCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexStats(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	stats, err := retrievalService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	if indexStatsJSON {
		return writeStructured(cmd, formatJSON, stats)
	}
	cmd.Printf("Collection: %s\n", stats.CollectionName)
	cmd.Printf("Chunks:     %d\n", stats.DocumentCount)
	cmd.Printf("Location:   %s\n", stats.PersistLocation)
	return nil
}

func runIndexDrop(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	if !indexDropForce {
		cmd.Print("This deletes all ingested chunks. Type 'yes' to continue: ")
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !strings.EqualFold(answer, "yes") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := retrievalService.Drop(cmd.Context()); err != nil {
		return fmt.Errorf("failed to drop index: %w", err)
	}
	cmd.Println("Vector index dropped.")
	return nil
}
