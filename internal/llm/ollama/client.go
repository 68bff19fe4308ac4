package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/forkful/saucier/internal/httpclient"
	"github.com/forkful/saucier/internal/llm"
)

// Client talks to a local Ollama instance over its native generate API.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	body := generateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": req.Temperature,
		},
	}

	var resp generateResponse
	url := c.baseURL + "/api/generate"
	if err := httpclient.SendRequest(ctx, c.http, http.MethodPost, url, nil, body, &resp); err != nil {
		var upstreamErr *httpclient.UpstreamError
		if errors.As(err, &upstreamErr) {
			// The backend answered, but with its own failure payload.
			return &llm.Response{
				Model:        model,
				Status:       llm.StatusError,
				ErrorMessage: fmt.Sprintf("backend returned status %d: %s", upstreamErr.StatusCode, upstreamErr.Body),
			}, nil
		}
		return nil, fmt.Errorf("ollama generate: %w", err)
	}

	if resp.Error != "" {
		return &llm.Response{
			Model:        model,
			Status:       llm.StatusError,
			ErrorMessage: resp.Error,
		}, nil
	}

	return &llm.Response{
		Content:    resp.Response,
		Model:      resp.Model,
		TokensUsed: resp.PromptEvalCount + resp.EvalCount,
		Status:     llm.StatusSuccess,
	}, nil
}

func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := c.baseURL + "/api/tags"
	return httpclient.SendRequest(ctx, c.http, http.MethodGet, url, nil, nil, nil) == nil
}

func (c *Client) ModelName() string {
	return c.model
}
