package runner

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/promptq/promptq/internal/llm"
	"github.com/promptq/promptq/internal/output"
	"github.com/promptq/promptq/internal/prompt"
)

// CompletionClient is the single call the runner makes against the API.
type CompletionClient interface {
	Complete(ctx context.Context, req llm.CompleteRequest) (*llm.Completion, error)
}

// Params are the invocation parameters of one run, immutable for its
// duration.
type Params struct {
	Model      string
	PromptPath string
	InputPath  string
	OutputPath string
	MaxTokens  int
}

// Runner performs one request: read files, call the API once, route the
// result. No retry, no concurrency, no state across runs.
type Runner struct {
	Client CompletionClient
	Logger *zap.Logger
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

// Run executes the sequence. File-read failures abort before any network
// call. Remote failures are reported as a diagnostic and return nil: the
// process reached its result path, there is just nothing usable to save.
func (r *Runner) Run(ctx context.Context, p Params) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	sink := &output.Sink{Path: p.OutputPath, Stdout: stdout, Stderr: stderr}

	messages, err := prompt.Load(p.PromptPath, p.InputPath)
	if err != nil {
		return err
	}

	logger.Debug("request assembled",
		zap.String("model", p.Model),
		zap.Int("messages", len(messages)),
		zap.Int("max_tokens", p.MaxTokens))

	resp, err := r.Client.Complete(ctx, llm.CompleteRequest{
		Model:     p.Model,
		Messages:  messages,
		MaxTokens: p.MaxTokens,
	})
	if err != nil {
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			sink.Diagnostic(apiErr.Raw())
			return nil
		}
		return err
	}

	logger.Debug("completion received",
		zap.String("request_id", resp.RequestID),
		zap.Int("content_bytes", len(resp.Content)))

	sink.Write(resp.Content)
	return nil
}
