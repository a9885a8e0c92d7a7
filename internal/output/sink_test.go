package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	var stdout, stderr bytes.Buffer

	s := &Sink{Path: path, Stdout: &stdout, Stderr: &stderr}
	s.Write("A fox runs.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A fox runs.", string(data))

	assert.Empty(t, stdout.String())
	assert.Equal(t, "API response saved to "+path+"\n", stderr.String())
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale much longer content"), 0644))

	s := &Sink{Path: path, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	s.Write("fresh")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestWrite_ToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer

	s := &Sink{Stdout: &stdout, Stderr: &stderr}
	s.Write("A fox runs.")

	assert.Equal(t, "API Response:\nA fox runs.\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestWrite_FileFailureIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "result.txt")
	var stdout, stderr bytes.Buffer

	s := &Sink{Path: path, Stdout: &stdout, Stderr: &stderr}
	s.Write("A fox runs.")

	assert.Contains(t, stderr.String(), "Error writing to file "+path)
	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, path)
}

func TestDiagnostic(t *testing.T) {
	var stdout, stderr bytes.Buffer

	s := &Sink{Stdout: &stdout, Stderr: &stderr}
	s.Diagnostic(`{"error":"model not found"}`)

	assert.Equal(t, "Error or empty response from API: {\"error\":\"model not found\"}\n", stderr.String())
	assert.Empty(t, stdout.String())
}
