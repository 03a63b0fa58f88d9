// Package groq talks to the Groq OpenAI-compatible chat completions API.
package groq

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

	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/logger"
)

const (
	Provider       = "groq"
	DefaultModel   = "llama-3.1-8b-instant"
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	contentType = "application/json"
	userAgent   = "careerlens"
	// error bodies are only kept for the error message
	maxErrorBody = 4 << 10
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("groq api error (status %d): %s", e.StatusCode, e.Message)
}

type Client struct {
	token      string
	model      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for model. Empty model and baseURL use the defaults.
func New(log *zap.Logger, token, model, baseURL string) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("groq api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		token:  token,
		model:  model,
		logger: logger.ForModel(log, Provider, model),
		HTTPClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		UserAgent: userAgent,
		APIURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate sends prompt as a single user message.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ai.ErrEmptyPrompt
	}

	return c.complete(ctx, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: ai.RoleUser, Content: prompt}},
	})
}

// Chat sends the conversation as is. Roles already match the OpenAI format.
func (c *Client) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	req := chatRequest{Model: c.model, Messages: make([]chatMessage, 0, len(messages))}
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		req.Messages = append(req.Messages, chatMessage{Role: msg.Role, Content: content})
	}
	if len(req.Messages) == 0 {
		return "", ai.ErrEmptyPrompt
	}

	return c.complete(ctx, req)
}

// Ping requests a single token completion.
func (c *Client) Ping(ctx context.Context) error {
	req := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: ai.RoleUser, Content: "ping"}},
		MaxTokens: 1,
	}

	var resp chatResponse
	if err := c.postJSON(ctx, "/chat/completions", req, &resp); err != nil {
		return fmt.Errorf("ping groq: %w", err)
	}
	return nil
}

func (c *Client) complete(ctx context.Context, req chatRequest) (string, error) {
	var resp chatResponse
	if err := c.postJSON(ctx, "/chat/completions", req, &resp); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", ai.ErrEmptyResponse
	}

	return output, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, target any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	return req
}

func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func (c *Client) Provider() string {
	return Provider
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
