package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultModels is the ordered fallback chain for structured extraction.
// Each entry is capability-equivalent for this task; the next is tried only
// when the previous one fails.
func DefaultModels() []string {
	return []string{"gemini-2.5-pro", "gemini-2.5-flash"}
}

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 90 * time.Second

// ErrAllModelsFailed reports that no model in the chain produced a
// parseable response. Callers receive an empty record alongside it and must
// handle the empty output explicitly.
var ErrAllModelsFailed = errors.New("no model produced a parseable response")

// Extractor runs structured extraction against an ordered list of models.
type Extractor struct {
	client  Client
	models  []string
	timeout time.Duration
}

// NewExtractor creates an Extractor. An empty model list falls back to
// DefaultModels; a zero timeout falls back to DefaultTimeout.
func NewExtractor(client Client, models []string, timeout time.Duration) *Extractor {
	if len(models) == 0 {
		models = DefaultModels()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{client: client, models: models, timeout: timeout}
}

// Extract builds the extraction prompt once and sends it to each model in
// order until one returns a single parseable JSON object. Failures along the
// way are reported as warnings, not errors. When every model fails, Extract
// returns an empty record together with ErrAllModelsFailed.
func (e *Extractor) Extract(ctx context.Context, markdown string, heuristics map[string]any) (map[string]any, error) {
	prompt := BuildPrompt(heuristics, markdown)

	for _, model := range e.models {
		record, err := e.tryModel(ctx, model, prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		return record, nil
	}

	return map[string]any{}, ErrAllModelsFailed
}

// tryModel performs one bounded model call and parses the response.
func (e *Extractor) tryModel(ctx context.Context, model, prompt string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.GenerateJSON(ctx, prompt, model)
	if err != nil {
		return nil, &APICallError{Model: model, Message: "request failed", Cause: err}
	}

	raw = CleanJSONBlock(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, &APICallError{Model: model, Message: "empty response"}
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &ParseError{Model: model, Message: "response is not a JSON object", Cause: err}
	}

	return record, nil
}
