package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aidarkhanov/nanoid"
	"go.uber.org/zap"
)

const requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Client is a minimal OpenAI-compatible chat client used by promptq.
type Client struct {
	Endpoint string        // e.g. https://router.huggingface.co/v1 or http://localhost:11434/v1
	Token    string        // bearer credential, resolved once at process entry
	Timeout  time.Duration // per request timeout
	Logger   *zap.Logger   // optional; nil means no logging
}

// Message is one role/content entry of the request payload.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompleteRequest describes a single chat-completion call.
type CompleteRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int // omitted from the payload when zero
}

// Completion is the success outcome: the first choice's message content.
type Completion struct {
	Content   string
	RequestID string
}

type chatRequest struct {
	Messages  []Message `json:"messages"`
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`

	Error *struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error,omitempty"`
}

// APIError is the remote-failure outcome. Together with Completion it
// makes the two results of a call exhaustive: either the response carried
// a usable first choice, or the exchange collapses into this type.
// Transport failures, non-2xx statuses, undecodable bodies, error
// envelopes, and responses without choices all land here.
type APIError struct {
	StatusCode int    // zero when the request never got a response
	RawBody    string // response body as received, empty on transport failure
	Err        error  // transport error, nil otherwise
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api request failed: %v", e.Err)
	}
	return fmt.Sprintf("api error: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.RawBody)
}

func (e *APIError) Unwrap() error { return e.Err }

// Raw returns the response body, or the transport error text when no
// response was received. This is what the diagnostic output shows.
func (e *APIError) Raw() string {
	if e.RawBody != "" {
		return e.RawBody
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// Complete sends one chat-completion request. Any remote failure is
// returned as *APIError; other errors mean the request could not be built.
// A single attempt is made: no retry, no backoff.
func (c *Client) Complete(ctx context.Context, req CompleteRequest) (*Completion, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// The payload always carries a messages list, even when empty.
	messages := req.Messages
	if messages == nil {
		messages = []Message{}
	}

	payload, err := json.Marshal(chatRequest{
		Messages:  messages,
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.Endpoint, "/") + "/chat/completions"
	requestID, _ := nanoid.Generate(requestIDAlphabet, 12)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	httpReq.Header.Set("X-Request-Id", requestID)

	logger.Debug("sending completion request",
		zap.String("request_id", requestID),
		zap.String("url", url),
		zap.String("model", req.Model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Int("messages", len(messages)))

	start := time.Now()
	httpClient := &http.Client{Timeout: timeout}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	logger.Debug("completion response received",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, RawBody: string(body)}
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, RawBody: string(body)}
	}

	if cr.Error != nil || len(cr.Choices) == 0 {
		return nil, &APIError{StatusCode: resp.StatusCode, RawBody: string(body)}
	}

	return &Completion{
		Content:   cr.Choices[0].Message.Content,
		RequestID: requestID,
	}, nil
}
