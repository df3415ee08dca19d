package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pragati-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

var (
	watchExisting bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Ingest PDF manuals as they appear in a folder",
	Long: `Watches a directory (and its subdirectories) and ingests every PDF that is
created or modified. Failed ingests are reported and watching continues.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "ingest PDFs already in the directory first")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", filesystem.DefaultDebounce, "quiet period before a changed file is ingested")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := filesystem.New(args[0]).WithDebounce(watchDebounce)
	defer watcher.Close() //nolint:errcheck

	if watchExisting {
		paths, err := watcher.Existing()
		if err != nil {
			return err
		}
		for _, path := range paths {
			ingestWatched(ctx, cmd, path)
		}
	}

	paths, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for PDF manuals...\n", watcher.Root())
	for path := range paths {
		ingestWatched(ctx, cmd, path)
	}
	return nil
}

// ingestWatched ingests one file, logging rather than returning failures.
func ingestWatched(ctx context.Context, cmd *cobra.Command, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read %s: %v", path, err)
		return
	}

	result, err := retrievalService.Ingest(ctx, driving.IngestRequest{
		Data:     data,
		Filename: filepath.Base(path),
	})
	if err != nil {
		logger.Error("ingest %s: %v", path, err)
		return
	}
	cmd.Printf("Ingested %s: %d chunks\n", result.Filename, result.ChunksCreated)
}
