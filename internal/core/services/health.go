package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// Health component names.
const (
	ComponentLLM         = "llm"
	ComponentEmbedding   = "embedding"
	ComponentVectorIndex = "vector_index"
	ComponentTranslation = "translation"
)

// DefaultProbeTimeout bounds each dependency probe.
const DefaultProbeTimeout = 5 * time.Second

// HealthService probes the external dependencies.
type HealthService struct {
	llm        driven.LLMService
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
	translator driven.Translator
	timeout    time.Duration
}

// NewHealthService creates a health service. Any dependency may be nil;
// a nil translator is left out of the report, the others report as down.
func NewHealthService(
	llm driven.LLMService,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	translator driven.Translator,
) *HealthService {
	return &HealthService{
		llm:        llm,
		embedder:   embedder,
		index:      index,
		translator: translator,
		timeout:    DefaultProbeTimeout,
	}
}

// Check probes every dependency concurrently.
func (s *HealthService) Check(ctx context.Context) domain.HealthReport {
	probes := map[string]func(context.Context) (string, error){
		ComponentLLM: func(ctx context.Context) (string, error) {
			if s.llm == nil {
				return "", domain.ErrLLMUnavailable
			}
			return s.llm.ModelName(), s.llm.Ping(ctx)
		},
		ComponentEmbedding: func(ctx context.Context) (string, error) {
			if s.embedder == nil {
				return "", domain.ErrEmbeddingUnavailable
			}
			return fmt.Sprintf("%s (%d dims)", s.embedder.ModelName(), s.embedder.Dimensions()), s.embedder.Ping(ctx)
		},
		ComponentVectorIndex: func(ctx context.Context) (string, error) {
			if s.index == nil {
				return "", domain.ErrVectorIndexUnavailable
			}
			stats, err := s.index.Stats(ctx)
			return fmt.Sprintf("%s: %d chunks", stats.CollectionName, stats.DocumentCount), err
		},
	}
	if s.translator != nil {
		probes[ComponentTranslation] = func(ctx context.Context) (string, error) {
			return "", s.translator.Ping(ctx)
		}
	}

	report := domain.HealthReport{
		Status:     domain.HealthHealthy,
		Components: make(map[string]domain.ComponentHealth, len(probes)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, probe := range probes {
		wg.Add(1)
		go func(name string, probe func(context.Context) (string, error)) {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			detail, err := probe(probeCtx)
			health := domain.ComponentHealth{OK: err == nil, Detail: detail}
			if err != nil {
				health.Detail = err.Error()
			}

			mu.Lock()
			report.Components[name] = health
			if !health.OK {
				report.Status = domain.HealthDegraded
			}
			mu.Unlock()
		}(name, probe)
	}
	wg.Wait()

	return report
}
