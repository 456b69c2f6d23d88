package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed_output.json")
	record := map[string]any{
		"company":        "Acme Corp",
		"position_title": "Engineer",
		"salary_min":     float64(80000),
	}

	require.NoError(t, SaveArtifact(path, record, "## Job Description\nBuild things"))

	loaded, markdown, err := LoadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, record, loaded)
	assert.Equal(t, "## Job Description\nBuild things", markdown)
	assert.NotContains(t, loaded, "markdown_text", "the embedded document is stripped on load")
}

func TestSaveArtifactDoesNotMutateRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed_output.json")
	record := map[string]any{"company": "Acme"}

	require.NoError(t, SaveArtifact(path, record, "text"))
	assert.NotContains(t, record, "markdown_text")
}

func TestLoadArtifactMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed_output.json")

	_, _, err := LoadArtifact(path)
	require.Error(t, err)

	var precondErr *PreconditionError
	require.ErrorAs(t, err, &precondErr)
	assert.Equal(t, path, precondErr.Path)
	assert.Contains(t, err.Error(), "smartcv parse")
}

func TestLoadArtifactMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed_output.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, _, err := LoadArtifact(path)
	require.Error(t, err)

	var precondErr *PreconditionError
	assert.False(t, errors.As(err, &precondErr), "malformed content is not a precondition failure")
}
