package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

var (
	retrieveTopK int
	retrieveJSON bool
)

// snippetLength is the number of characters shown per passage.
const snippetLength = 160

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Find manual passages for a query",
	Long:  `Embeds the query and returns the most similar chunks from the vector index.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 0, "number of passages (default from settings)")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	results, err := retrievalService.Retrieve(cmd.Context(), args[0], retrieveTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if retrieveJSON {
		return writeStructured(cmd, formatJSON, results)
	}
	return outputRetrieveTable(cmd, results)
}

func outputRetrieveTable(cmd *cobra.Command, results []domain.RetrievalResult) error {
	if len(results) == 0 {
		cmd.Println("No passages found.")
		return nil
	}

	cmd.Println("Passages:")
	cmd.Println()
	for i := range results {
		meta := results[i].Metadata
		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, meta.Title, meta.ChunkID, results[i].Score)
		cmd.Printf("      %s\n", snippet(results[i].Text, snippetLength))
		cmd.Println()
	}
	return nil
}

// snippet collapses whitespace and truncates text to n runes.
func snippet(text string, n int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
