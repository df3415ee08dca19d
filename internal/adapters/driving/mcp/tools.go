package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// defaultTopK is used when retrieve_context is called without top_k.
const defaultTopK = 5

// IngestInput is the input schema for the ingest_manual tool.
type IngestInput struct {
	Path  string `json:"path" jsonschema:"absolute path to a PDF manual on the local machine"`
	Title string `json:"title,omitempty" jsonschema:"document title (defaults to the file name)"`
}

// IngestOutput is the output schema for the ingest_manual tool.
type IngestOutput struct {
	DocumentID    string `json:"document_id"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
}

// RetrieveInput is the input schema for the retrieve_context tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"text to find relevant manual passages for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve_context tool.
type RetrieveOutput struct {
	Results []ContextOutput `json:"results"`
	Count   int             `json:"count"`
}

// ContextOutput is a single retrieved passage.
type ContextOutput struct {
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	ChunkID    int     `json:"chunk_id"`
}

// GenerateInput is the input schema for the generate_module tool.
type GenerateInput struct {
	Challenge       string `json:"challenge" jsonschema:"the classroom challenge to address"`
	ConversationID  string `json:"conversation_id,omitempty" jsonschema:"continue an existing conversation"`
	TargetDuration  int    `json:"target_duration,omitempty" jsonschema:"module length in minutes"`
	DifficultyLevel string `json:"difficulty_level,omitempty" jsonschema:"beginner, intermediate or advanced"`
	Language        string `json:"language,omitempty" jsonschema:"output language code, e.g. hin_Deva"`
}

// GenerateOutput is the output schema for the generate_module tool.
type GenerateOutput struct {
	ConversationID  string          `json:"conversation_id"`
	ModuleID        string          `json:"module_id"`
	Title           string          `json:"title"`
	Sections        []SectionOutput `json:"sections"`
	TotalDuration   int             `json:"total_duration"`
	DifficultyLevel string          `json:"difficulty_level"`
	Language        string          `json:"language"`
	Sources         []string        `json:"sources,omitempty"`
}

// SectionOutput is a single module section.
type SectionOutput struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes"`
	Activity        string `json:"activity,omitempty"`
}

// IndexStatsInput is the empty input schema for the index_stats tool.
type IndexStatsInput struct{}

// TranslateInput is the input schema for the translate_text tool.
type TranslateInput struct {
	Text   string `json:"text" jsonschema:"text to translate"`
	Target string `json:"target_language" jsonschema:"target language code, e.g. tam_Taml"`
	Source string `json:"source_language,omitempty" jsonschema:"source language code (default eng_Latn)"`
}

// TranslateOutput is the output schema for the translate_text tool.
type TranslateOutput struct {
	Translation string `json:"translation"`
	Source      string `json:"source_language"`
	Target      string `json:"target_language"`
}

// FeedbackInput is the input schema for the submit_feedback tool.
type FeedbackInput struct {
	ModuleID             string `json:"module_id" jsonschema:"id of the rated module"`
	Rating               int    `json:"rating" jsonschema:"rating from 1 to 5"`
	ImplementationStatus string `json:"implementation_status,omitempty" jsonschema:"not_tried, tried, successful or unsuccessful"`
	Comments             string `json:"comments,omitempty" jsonschema:"free text comments"`
	Challenge            string `json:"challenge,omitempty" jsonschema:"the challenge the module addressed"`
	ConversationID       string `json:"conversation_id,omitempty" jsonschema:"conversation the module belongs to"`
}

// FeedbackOutput is the output schema for the submit_feedback tool.
type FeedbackOutput struct {
	ID string `json:"id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_manual",
		Description: "Ingest a PDF teacher-training manual into the knowledge base",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Find manual passages relevant to a query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Describe the manual knowledge base",
	}, s.handleIndexStats)

	if s.ports.Module != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_module",
			Description: "Generate a micro-learning module for a classroom challenge",
		}, s.handleGenerate)
	}

	if s.ports.Translation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "translate_text",
			Description: "Translate text into a supported Indian language",
		}, s.handleTranslate)
	}

	if s.ports.Feedback != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "submit_feedback",
			Description: "Rate a generated module",
		}, s.handleFeedback)
	}
}

// handleIngest handles the ingest_manual tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("reading manual: %w", err)
	}

	result, err := s.ports.Retrieval.Ingest(ctx, driving.IngestRequest{
		Data:     data,
		Filename: filepath.Base(input.Path),
		Title:    input.Title,
	})
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		DocumentID:    result.DocumentID,
		Filename:      result.Filename,
		ChunksCreated: result.ChunksCreated,
	}, nil
}

// handleRetrieve handles the retrieve_context tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	results, err := s.ports.Retrieval.Retrieve(ctx, input.Query, topK)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Results: make([]ContextOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = ContextOutput{
			Text:       results[i].Text,
			Score:      results[i].Score,
			DocumentID: results[i].Metadata.DocumentID,
			Title:      results[i].Metadata.Title,
			ChunkID:    results[i].Metadata.ChunkID,
		}
	}

	return nil, output, nil
}

// handleIndexStats handles the index_stats tool invocation.
func (s *Server) handleIndexStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexStatsInput,
) (*mcp.CallToolResult, domain.IndexStats, error) {
	stats, err := s.ports.Retrieval.Stats(ctx)
	if err != nil {
		return nil, domain.IndexStats{}, err
	}
	return nil, stats, nil
}

// handleGenerate handles the generate_module tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	result, err := s.ports.Module.Generate(ctx, driving.GenerateModuleRequest{
		Challenge:       input.Challenge,
		ConversationID:  input.ConversationID,
		TargetDuration:  input.TargetDuration,
		DifficultyLevel: domain.DifficultyLevel(input.DifficultyLevel),
		Language:        input.Language,
	})
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	m := result.Module
	output := GenerateOutput{
		ConversationID:  result.ConversationID,
		ModuleID:        m.ID,
		Title:           m.Title,
		Sections:        make([]SectionOutput, len(m.Sections)),
		TotalDuration:   m.TotalDuration,
		DifficultyLevel: m.DifficultyLevel.String(),
		Language:        m.Language,
	}
	for i, sec := range m.Sections {
		output.Sections[i] = SectionOutput(sec)
	}
	for _, src := range result.Sources {
		output.Sources = append(output.Sources, fmt.Sprintf("%s #%d", src.Metadata.Title, src.Metadata.ChunkID))
	}

	return nil, output, nil
}

// handleTranslate handles the translate_text tool invocation.
func (s *Server) handleTranslate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranslateInput,
) (*mcp.CallToolResult, TranslateOutput, error) {
	src := input.Source
	if src == "" {
		src = domain.DefaultLanguage
	}

	out, err := s.ports.Translation.Translate(ctx, input.Text, src, input.Target)
	if err != nil {
		return nil, TranslateOutput{}, err
	}

	return nil, TranslateOutput{Translation: out, Source: src, Target: input.Target}, nil
}

// handleFeedback handles the submit_feedback tool invocation.
func (s *Server) handleFeedback(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FeedbackInput,
) (*mcp.CallToolResult, FeedbackOutput, error) {
	fb, err := s.ports.Feedback.Submit(ctx, domain.Feedback{
		ModuleID:             input.ModuleID,
		Challenge:            input.Challenge,
		Rating:               input.Rating,
		ImplementationStatus: domain.ImplementationStatus(input.ImplementationStatus),
		Comments:             input.Comments,
		ConversationID:       input.ConversationID,
	})
	if err != nil {
		return nil, FeedbackOutput{}, err
	}
	return nil, FeedbackOutput{ID: fb.ID}, nil
}
