// Package mcp provides an MCP (Model Context Protocol) server adapter for Pragati.
// It lets AI assistants ingest manuals, retrieve context and generate
// micro-learning modules through the local services.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
