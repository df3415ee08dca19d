// Package indictrans provides a Translator adapter for an IndicTrans2
// inference server exposing POST /translate.
package indictrans

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

// DefaultTimeout bounds a single translation request.
const DefaultTimeout = 60 * time.Second

// ErrBaseURLRequired is returned when no endpoint is configured.
var ErrBaseURLRequired = errors.New("indictrans: base URL is required")

// Config holds configuration for the translation client.
type Config struct {
	// BaseURL is the inference server root, e.g. http://localhost:8000.
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RateLimit throttles requests (default: ratelimit.Translation).
	RateLimit *ratelimit.Config
}

// Translator calls the translation inference server.
type Translator struct {
	client  *http.Client
	limiter *ratelimit.Limiter
	baseURL string
}

type translateRequest struct {
	Text    string `json:"text"`
	SrcLang string `json:"src_lang"`
	TgtLang string `json:"tgt_lang"`
}

type translateResponse struct {
	Translation string `json:"translation"`
	Error       string `json:"error,omitempty"`
}

// New creates a translation client.
func New(cfg Config) (*Translator, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	limit := ratelimit.Translation
	if cfg.RateLimit != nil {
		limit = *cfg.RateLimit
	}

	return &Translator{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.New(limit),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Translate translates text from srcLang to tgtLang.
func (t *Translator) Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error) {
	jsonBody, err := json.Marshal(translateRequest{Text: text, SrcLang: srcLang, TgtLang: tgtLang})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	t.limiter.Observe(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("indictrans error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out translateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("indictrans error: %s", out.Error)
	}
	return out.Translation, nil
}

// Ping checks the server answers on /health.
func (t *Translator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("indictrans: failed to create ping request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("indictrans: ping failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("indictrans: server returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (t *Translator) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
