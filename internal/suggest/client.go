package suggest

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

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultEndpoint is the OpenAI chat completions URL.
const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// DefaultModel is the chat model asked for suggestions and feedback.
const DefaultModel = "gpt-3.5-turbo"

const (
	copywriterPrompt = "You are a creative copywriter. Generate 5 short, catchy text suggestions for designs."
	designerPrompt   = "You are a professional graphic designer. Provide brief, helpful feedback."
)

// ErrNoAPIKey is returned by Client calls when no credential is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// ClientConfig configures a Client.
type ClientConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
	RetryMax int
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	cfg  ClientConfig
	http *retryablehttp.Client
}

// NewClient builds a Client. Zero fields take defaults: DefaultEndpoint,
// DefaultModel and an 8 second timeout.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = cfg.RetryMax
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = time.Second
	hc.HTTPClient.Timeout = cfg.Timeout
	hc.Logger = nil // suppress retryablehttp's default logging
	return &Client{cfg: cfg, http: hc}
}

// HasKey reports whether a credential is configured.
func (c *Client) HasKey() bool {
	return c != nil && c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	N           int           `json:"n,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Suggestions asks for SampleSize short captions about prompt. It returns at
// most SampleSize trimmed, non-empty strings.
func (c *Client) Suggestions(ctx context.Context, prompt string) ([]string, error) {
	resp, err := c.complete(ctx, chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: copywriterPrompt},
			{Role: "user", Content: "Generate design text about: " + prompt},
		},
		MaxTokens:   100,
		N:           SampleSize,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, err
	}

	var out []string
	for _, ch := range resp.Choices {
		if s := strings.TrimSpace(ch.Message.Content); s != "" {
			out = append(out, s)
		}
		if len(out) == SampleSize {
			break
		}
	}
	return out, nil
}

// Feedback asks for brief design feedback on prompt.
func (c *Client) Feedback(ctx context.Context, prompt string) (string, error) {
	resp, err := c.complete(ctx, chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: designerPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) complete(ctx context.Context, body chatRequest) (*chatResponse, error) {
	const maxResponseBytes = 1 << 20

	if !c.HasKey() {
		return nil, ErrNoAPIKey
	}
	body.Model = c.cfg.Model

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", c.cfg.Endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("POST %s: status %d", c.cfg.Endpoint, resp.StatusCode)
		}
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return nil, fmt.Errorf("POST %s: status %d: %s", c.cfg.Endpoint, resp.StatusCode, out.Error.Message)
		}
		return nil, fmt.Errorf("POST %s: status %d", c.cfg.Endpoint, resp.StatusCode)
	}
	return &out, nil
}
