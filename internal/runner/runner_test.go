package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptq/promptq/internal/llm"
)

// fakeClient records every request and returns a canned outcome.
type fakeClient struct {
	requests []llm.CompleteRequest
	resp     *llm.Completion
	err      error
}

func (f *fakeClient) Complete(ctx context.Context, req llm.CompleteRequest) (*llm.Completion, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type harness struct {
	client *fakeClient
	stdout bytes.Buffer
	stderr bytes.Buffer
	runner *Runner
}

func newHarness(resp *llm.Completion, err error) *harness {
	h := &harness{client: &fakeClient{resp: resp, err: err}}
	h.runner = &Runner{Client: h.client, Stdout: &h.stdout, Stderr: &h.stderr}
	return h
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_SuccessToFile(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")
	inputPath := writeFile(t, "input.txt", "The quick brown fox.")
	outPath := filepath.Join(t.TempDir(), "result.txt")

	h := newHarness(&llm.Completion{Content: "A fox runs."}, nil)

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
		InputPath:  inputPath,
		OutputPath: outPath,
		MaxTokens:  256,
	})
	require.NoError(t, err)

	require.Len(t, h.client.requests, 1)
	req := h.client.requests[0]
	assert.Equal(t, "example-model", req.Model)
	assert.Equal(t, 256, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "Summarize:\nThe quick brown fox.", req.Messages[0].Content)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "A fox runs.", string(data))
	assert.Contains(t, h.stderr.String(), "API response saved to "+outPath)
}

func TestRun_SuccessToStdout(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")
	inputPath := writeFile(t, "input.txt", "fox")

	h := newHarness(&llm.Completion{Content: "A fox runs."}, nil)

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
		InputPath:  inputPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "API Response:\nA fox runs.\n", h.stdout.String())
}

func TestRun_NoInputSendsEmptyMessageList(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")

	h := newHarness(&llm.Completion{Content: "ok"}, nil)

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
	})
	require.NoError(t, err)

	require.Len(t, h.client.requests, 1)
	assert.NotNil(t, h.client.requests[0].Messages)
	assert.Empty(t, h.client.requests[0].Messages)
}

func TestRun_MissingPromptFile_NoNetworkCall(t *testing.T) {
	promptPath := filepath.Join(t.TempDir(), "missing.txt")

	h := newHarness(&llm.Completion{Content: "never"}, nil)

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), promptPath)
	assert.Empty(t, h.client.requests)
}

func TestRun_MissingInputFile_NoNetworkCall(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")
	inputPath := filepath.Join(t.TempDir(), "missing-input.txt")

	h := newHarness(&llm.Completion{Content: "never"}, nil)

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
		InputPath:  inputPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), inputPath)
	assert.Empty(t, h.client.requests)
}

func TestRun_APIErrorIsDiagnosticNotFailure(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")
	outPath := filepath.Join(t.TempDir(), "result.txt")

	h := newHarness(nil, &llm.APIError{StatusCode: 429, RawBody: `{"error":"rate limited"}`})

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
		OutputPath: outPath,
	})
	require.NoError(t, err)

	assert.Contains(t, h.stderr.String(), "Error or empty response from API:")
	assert.Contains(t, h.stderr.String(), `{"error":"rate limited"}`)
	assert.NoFileExists(t, outPath)
}

func TestRun_TransportErrorIsDiagnostic(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")

	h := newHarness(nil, &llm.APIError{Err: errors.New("connection refused")})

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
	})
	require.NoError(t, err)
	assert.Contains(t, h.stderr.String(), "connection refused")
}

func TestRun_NonAPIErrorPropagates(t *testing.T) {
	promptPath := writeFile(t, "prompt.txt", "Summarize:")

	h := newHarness(nil, errors.New("marshal request: boom"))

	err := h.runner.Run(context.Background(), Params{
		Model:      "example-model",
		PromptPath: promptPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
