package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

var (
	ingestTitle string
	ingestJSON  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file.pdf]...",
	Short: "Ingest PDF manuals",
	Long: `Extracts text from PDF manuals, splits it into overlapping chunks, embeds
them and stores them in the vector index.

Re-ingesting the same file replaces its chunks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (single file only, defaults to the file name)")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}
	if ingestTitle != "" && len(args) > 1 {
		return errors.New("--title can only be used with a single file")
	}

	results := make([]*domain.IngestResult, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result, err := retrievalService.Ingest(cmd.Context(), driving.IngestRequest{
			Data:     data,
			Filename: filepath.Base(path),
			Title:    ingestTitle,
		})
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		results = append(results, result)

		if !ingestJSON {
			cmd.Printf("Ingested %s: %d chunks (document %s)\n", result.Filename, result.ChunksCreated, result.DocumentID)
		}
	}

	if ingestJSON {
		return writeStructured(cmd, formatJSON, results)
	}
	return nil
}
