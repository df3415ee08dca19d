// Command pragati generates micro-learning modules from teacher-training manuals.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/extractor"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/translator/indictrans"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/services"
	"github.com/custodia-labs/pragati-cli/internal/logger"
	"github.com/custodia-labs/pragati-cli/internal/postprocessors/chunker"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("loading .env: %v", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return report(fmt.Errorf("opening config: %w", err))
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settingsService.SetEnv(os.Getenv)

	settings, err := settingsService.Get()
	if err != nil {
		return report(fmt.Errorf("loading settings: %w", err))
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return report(fmt.Errorf("opening store: %w", err))
	}
	defer store.Close() //nolint:errcheck

	textExtractor, err := extractor.New(settings.Ingest.Extractor)
	if err != nil {
		return report(err)
	}

	aiServices := ai.Init(ctx, settings)
	defer aiServices.Close()

	// Commands that do not touch the index keep working when it is down.
	index, err := vector.Open(ctx, settings.Index, store, filepath.Dir(store.Path()))
	if err != nil {
		logger.Warn("%v", err)
		index = nil
	}
	if index != nil {
		defer index.Close() //nolint:errcheck
	}

	var translator driven.Translator
	if settings.Translation.IsConfigured() {
		limit := ratelimit.Translation
		if settings.Translation.RequestsPerSecond > 0 {
			limit.RequestsPerSecond = settings.Translation.RequestsPerSecond
		}
		t, err := indictrans.New(indictrans.Config{
			BaseURL:   settings.Translation.BaseURL,
			RateLimit: &limit,
		})
		if err != nil {
			logger.Warn("translation disabled: %v", err)
		} else {
			translator = t
		}
	}

	retrievalService := services.NewRetrievalService(
		textExtractor,
		chunker.FromSettings(settings.Chunking),
		aiServices.EmbeddingService,
		index,
		services.RetrievalConfig{
			MaxUploadBytes: settings.Ingest.MaxUploadBytes,
			DefaultTopK:    settings.Module.TopK,
		},
	)
	conversationService := services.NewConversationService(store.ConversationStore())
	feedbackService := services.NewFeedbackService(store.FeedbackStore())
	translationService := services.NewTranslationService(translator)

	moduleService := services.NewModuleService(
		retrievalService,
		aiServices.LLMService,
		conversationService,
		translationService,
		services.ModuleConfig{
			Module:   settings.Module,
			Generate: ai.GenerateOptions(&settings.LLM, ""),
		},
	)
	if prompts, err := file.NewPromptStore(""); err != nil {
		logger.Warn("using built-in prompts: %v", err)
	} else {
		moduleService.SetPromptStore(prompts)
	}

	healthService := services.NewHealthService(
		aiServices.LLMService,
		aiServices.EmbeddingService,
		index,
		translator,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Retrieval:    retrievalService,
		Module:       moduleService,
		Conversation: conversationService,
		Feedback:     feedbackService,
		Translation:  translationService,
		Health:       healthService,
		Settings:     settingsService,
	})

	return cli.Execute()
}

// report prints a startup error the way cobra prints command errors.
func report(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
