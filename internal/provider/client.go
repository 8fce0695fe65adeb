package provider

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

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/structure"
)

const systemPrompt = `You design project layouts. Reply with a single JSON object and nothing else:
{"name": "<short-kebab-case-project-name>", "folders": ["<relative dir>", ...], "files": [{"path": "<relative file path>", "content": "<full file content>"}, ...]}
Rules: every path is relative, uses forward slashes and never contains "..". List parent folders before nested ones. Keep the project small.`

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	name     string
	baseURL  string
	apiKey   string
	model    string
	http     *http.Client
	attempts uint
	delay    time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
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

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// Model returns the model requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt to the provider and decodes the project structure
// from its reply. Transient failures are retried with exponential backoff.
func (c *Client) Generate(ctx context.Context, prompt string) (*structure.ProjectStructure, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &Error{Provider: c.name, Message: "empty prompt"}
	}

	var reply string
	err := retry.Do(
		func() error {
			content, err := c.complete(ctx, prompt)
			if err != nil {
				return err
			}
			reply = content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			output.Debug("retrying provider request", "provider", c.name, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &Error{Provider: c.name, Message: "request failed", Cause: err}
	}

	raw, ok := extractJSON(reply)
	if !ok {
		return nil, &Error{Provider: c.name, Message: "reply contains no JSON object"}
	}

	s, err := structure.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", c.name, err)
	}
	return s, nil
}

// complete performs one chat completion request and returns the reply text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.NewString()
	fail := func(status int, transient bool, cause error, format string, args ...any) *Error {
		return &Error{
			Provider:   c.name,
			StatusCode: status,
			RequestID:  requestID,
			Message:    fmt.Sprintf(format, args...),
			Cause:      cause,
			transient:  transient,
		}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fail(0, false, err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Request-Id", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	output.Debug("sending provider request", "provider", c.name, "model", c.model, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled context is final; anything else on the wire may be temporary.
		return "", fail(0, ctx.Err() == nil, err, "request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return "", fail(resp.StatusCode, true, err, "reading response")
	}
	if len(data) > MaxResponseBytes {
		return "", fail(resp.StatusCode, false, nil, "response exceeds %d bytes", MaxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", fail(resp.StatusCode, transient, nil, "unexpected status: %s", errorMessage(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fail(resp.StatusCode, false, err, "decoding response")
	}
	if parsed.Error != nil {
		return "", fail(resp.StatusCode, false, nil, "%s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fail(resp.StatusCode, false, nil, "empty response")
	}

	return parsed.Choices[0].Message.Content, nil
}

// errorMessage pulls a message out of an error body, falling back to a
// truncated copy of the raw text.
func errorMessage(data []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if msg == "" {
		msg = "no body"
	}
	return msg
}

func isTransient(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Transient()
}
