package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient scripts per-model responses and records every call.
type fakeClient struct {
	responses map[string]string
	failures  map[string]error
	calls     []fakeCall
}

type fakeCall struct {
	model  string
	prompt string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt, model string) (string, error) {
	f.calls = append(f.calls, fakeCall{model: model, prompt: prompt})
	if err, ok := f.failures[model]; ok {
		return "", err
	}
	return f.responses[model], nil
}

func (f *fakeClient) Close() error { return nil }

func TestExtractPrimarySucceeds(t *testing.T) {
	client := &fakeClient{
		responses: map[string]string{
			"primary": `{"company": "Acme"}`,
		},
	}
	ex := NewExtractor(client, []string{"primary", "secondary"}, 0)

	record, err := ex.Extract(context.Background(), "# Posting", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"company": "Acme"}, record)
	require.Len(t, client.calls, 1, "secondary model should not be tried")
	assert.Equal(t, "primary", client.calls[0].model)
}

func TestExtractFallsBackOnAPIError(t *testing.T) {
	client := &fakeClient{
		failures: map[string]error{
			"primary": fmt.Errorf("rate limited"),
		},
		responses: map[string]string{
			"secondary": "```json\n{\"company\": \"Acme\"}\n```",
		},
	}
	ex := NewExtractor(client, []string{"primary", "secondary"}, 0)

	record, err := ex.Extract(context.Background(), "# Posting", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"company": "Acme"}, record)

	require.Len(t, client.calls, 2)
	assert.Equal(t, "primary", client.calls[0].model)
	assert.Equal(t, "secondary", client.calls[1].model)
	assert.Equal(t, client.calls[0].prompt, client.calls[1].prompt, "fallback reuses the same prompt")
}

func TestExtractFallsBackOnUnparseableResponse(t *testing.T) {
	client := &fakeClient{
		responses: map[string]string{
			"primary":   "here is your JSON: oops",
			"secondary": `{"company": "Acme"}`,
		},
	}
	ex := NewExtractor(client, []string{"primary", "secondary"}, 0)

	record, err := ex.Extract(context.Background(), "# Posting", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"company": "Acme"}, record)
	assert.Len(t, client.calls, 2)
}

func TestExtractAllModelsFail(t *testing.T) {
	client := &fakeClient{
		failures: map[string]error{
			"primary":   fmt.Errorf("rate limited"),
			"secondary": fmt.Errorf("overloaded"),
		},
	}
	ex := NewExtractor(client, []string{"primary", "secondary"}, 0)

	record, err := ex.Extract(context.Background(), "# Posting", nil)
	require.ErrorIs(t, err, ErrAllModelsFailed)
	assert.NotNil(t, record)
	assert.Empty(t, record, "callers get an empty record, not nil")
	assert.Len(t, client.calls, 2)
}

func TestExtractEmptyResponseCountsAsFailure(t *testing.T) {
	client := &fakeClient{
		responses: map[string]string{
			"only": "```json\n```",
		},
	}
	ex := NewExtractor(client, []string{"only"}, 0)

	_, err := ex.Extract(context.Background(), "# Posting", nil)
	require.ErrorIs(t, err, ErrAllModelsFailed)
}

func TestNewExtractorDefaults(t *testing.T) {
	ex := NewExtractor(&fakeClient{}, nil, 0)
	assert.Equal(t, DefaultModels(), ex.models)
	assert.Equal(t, DefaultTimeout, ex.timeout)
}

func TestErrorTypes(t *testing.T) {
	cause := fmt.Errorf("boom")

	apiErr := &APICallError{Model: "m", Message: "request failed", Cause: cause}
	assert.True(t, errors.Is(apiErr, cause))
	assert.Contains(t, apiErr.Error(), "m")

	parseErr := &ParseError{Model: "m", Message: "bad JSON", Cause: cause}
	assert.True(t, errors.Is(parseErr, cause))
	assert.Contains(t, parseErr.Error(), "bad JSON")
}
