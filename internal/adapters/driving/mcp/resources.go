package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Pragati resources.
	uriScheme = "pragati://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "languages",
		Name:        "languages",
		Description: "Languages modules can be translated into",
		MIMEType:    "application/json",
	}, s.handleLanguagesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/stats",
		Name:        "index-stats",
		Description: "Manual knowledge base statistics",
		MIMEType:    "application/json",
	}, s.handleIndexStatsResource)

	if s.ports.Conversation != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "conversations/{conversationId}",
			Name:        "conversation",
			Description: "Messages and generated modules of a conversation",
			MIMEType:    "application/json",
		}, s.handleConversationResource)
	}
}

// handleLanguagesResource returns the supported languages.
func (s *Server) handleLanguagesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	languages := domain.SupportedLanguages()
	if s.ports.Translation != nil {
		languages = s.ports.Translation.Languages()
	}
	return jsonResource(req.Params.URI, languages)
}

// handleIndexStatsResource returns the vector index statistics.
func (s *Server) handleIndexStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats, err := s.ports.Retrieval.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index stats: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

// handleConversationResource returns a conversation with its messages.
func (s *Server) handleConversationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractConversationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	conv, err := s.ports.Conversation.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting conversation: %w", err)
	}

	messages, err := s.ports.Conversation.Messages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	return jsonResource(req.Params.URI, struct {
		*domain.Conversation
		Messages []domain.Message `json:"messages"`
	}{conv, messages})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractConversationID extracts the id from a URI like pragati://conversations/{conversationId}.
func extractConversationID(uri string) string {
	const prefix = uriScheme + "conversations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
