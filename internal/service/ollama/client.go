package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"chatfolio/internal/domain"
)

// Client relays requests to a local Ollama daemon. Responses are not
// streamed: generation is requested with stream=false and returned whole,
// as the chat UI saves complete messages.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates an Ollama client for the given base URL
// (e.g. http://localhost:11434).
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			// Generation on large local models is slow; the list
			// endpoint returns fast regardless.
			Timeout: 5 * time.Minute,
		},
		logger: logger,
	}
}

// ModelInfo is one entry of Ollama's /api/tags response.
type ModelInfo struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
}

// GenerateRequest is the /api/generate request body.
type GenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// GenerateResponse is the non-streamed /api/generate response.
type GenerateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	Context   []int  `json:"context,omitempty"`
	EvalCount int    `json:"eval_count,omitempty"`
}

// ListModels returns the models installed in the local Ollama daemon.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build tags request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama unreachable: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var body struct {
		Models []ModelInfo `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}

	return body.Models, nil
}

// Generate runs a completion and returns it whole. Stream is forced off
// regardless of what the caller set.
func (c *Client) Generate(ctx context.Context, genReq *GenerateRequest) (*GenerateResponse, error) {
	genReq.Stream = false

	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama unreachable: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}

	c.logger.Debug("completion generated",
		"model", genReq.Model,
		"duration", time.Since(start),
		"eval_count", genResp.EvalCount,
	)

	return &genResp, nil
}

// upstreamError turns a non-200 Ollama response into ErrUnavailable with
// a short excerpt of the body for the log line.
func (c *Client) upstreamError(resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	c.logger.Warn("ollama upstream error",
		"status", resp.StatusCode,
		"body", string(excerpt),
	)
	return fmt.Errorf("ollama returned status %d: %w", resp.StatusCode, domain.ErrUnavailable)
}
