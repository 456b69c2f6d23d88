// Package pipeline wires the extraction stages together and manages the
// artifact handed from the parse stage to the upload stage.
package pipeline

import (
	"context"

	"github.com/jonathan/smartcv/internal/extract"
	"github.com/jonathan/smartcv/internal/heuristics"
	"github.com/jonathan/smartcv/internal/normalize"
	"github.com/jonathan/smartcv/internal/types"
)

// Result carries everything the parse stage produced.
type Result struct {
	Record     map[string]any   // merged raw record
	Profile    *types.JobRecord // typed view of Record
	Markdown   string           // normalized document
	Heuristics map[string]any
	Format     normalize.Format
}

// Parse runs one posting through clean → format detection → Markdown
// conversion → heuristic extraction → structured extraction → merge.
//
// When every inference model fails, Parse still returns a usable Result
// holding only the heuristic fields, together with
// extract.ErrAllModelsFailed so the caller can decide whether that is
// acceptable.
func Parse(ctx context.Context, ex *extract.Extractor, raw string) (*Result, error) {
	cleaned := normalize.Clean(raw)
	format := normalize.DetectFormat(cleaned)
	markdown := normalize.ToMarkdown(cleaned)
	heur := heuristics.Extract(cleaned)

	record, extractErr := ex.Extract(ctx, markdown, heur)
	record = extract.Merge(record, heur)

	profile, err := types.RecordFromMap(record)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Record:     record,
		Profile:    profile,
		Markdown:   markdown,
		Heuristics: heur,
		Format:     format,
	}
	return res, extractErr
}
