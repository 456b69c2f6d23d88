package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultArtifactPath is where the parse stage leaves its output for the
// upload stage.
const DefaultArtifactPath = "parsed_output.json"

// markdownKey embeds the normalized document inside the artifact so the
// upload stage can populate the job description field from it.
const markdownKey = "markdown_text"

// PreconditionError reports missing stage-one output with an actionable
// instruction instead of a crash.
type PreconditionError struct {
	Path string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("no parsed job data found at %s; run `smartcv parse` first", e.Path)
}

// SaveArtifact writes the merged record, with the normalized Markdown
// embedded under markdown_text, as the parse stage's output.
func SaveArtifact(path string, record map[string]any, markdown string) error {
	out := make(map[string]any, len(record)+1)
	for k, v := range record {
		out[k] = v
	}
	out[markdownKey] = markdown

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads the parse stage's output. A missing file is a
// recoverable precondition failure, reported as a PreconditionError.
func LoadArtifact(path string) (record map[string]any, markdown string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &PreconditionError{Path: path}
		}
		return nil, "", fmt.Errorf("failed to read artifact: %w", err)
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return nil, "", fmt.Errorf("failed to parse artifact: %w", err)
	}

	markdown, _ = record[markdownKey].(string)
	delete(record, markdownKey)
	return record, markdown, nil
}
