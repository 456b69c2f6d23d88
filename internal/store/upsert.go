package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/smartcv/internal/types"
)

// Outcome is the terminal state of one ingestion.
type Outcome string

// Terminal states.
const (
	OutcomeSaved     Outcome = "saved"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed"
)

// matchPrefixLen bounds the substring used for company and role lookup.
const matchPrefixLen = 60

// Result reports what one ingestion did.
type Result struct {
	Outcome        Outcome
	Fingerprint    string
	CompanyID      string
	RoleTemplateID string
	JobID          string
}

// Input is everything the engine needs to persist one posting.
type Input struct {
	Record    *types.JobRecord
	Raw       map[string]any // full merged record, serialized into snapshots
	Text      string         // normalized posting text, written as the job description
	SourceURL string
}

// Upserter writes one linked record set per ingested posting. Concurrent
// ingestions of the same fingerprint are collapsed into a single flight so
// the check-then-create sequence cannot race against itself.
type Upserter struct {
	store RecordStore
	group singleflight.Group
	now   func() time.Time
	warn  io.Writer
}

// NewUpserter creates an Upserter over the given record store.
func NewUpserter(store RecordStore) *Upserter {
	return &Upserter{store: store, now: time.Now, warn: os.Stderr}
}

// Ingest persists the posting into the three linked collections. Ordering
// is mandatory: the company record must exist before the role template that
// links to it, and both before the job. Partial writes are not rolled back
// on failure.
func (u *Upserter) Ingest(ctx context.Context, in Input) (*Result, error) {
	if in.Record == nil {
		return nil, fmt.Errorf("record is required")
	}

	fp := Fingerprint(companyName(in.Record), in.Text)
	v, err, _ := u.group.Do(fp, func() (any, error) {
		return u.ingest(ctx, fp, in)
	})

	res, _ := v.(*Result)
	if res == nil {
		res = &Result{Outcome: OutcomeFailed, Fingerprint: fp}
	}
	return res, err
}

func (u *Upserter) ingest(ctx context.Context, fp string, in Input) (*Result, error) {
	res := &Result{Fingerprint: fp}

	existing, err := u.store.Query(ctx, CollectionJobs, Filter{Property: PropFingerprint, Equals: fp})
	if err != nil {
		res.Outcome = OutcomeFailed
		return res, fmt.Errorf("fingerprint lookup failed: %w", err)
	}
	if len(existing) > 0 {
		res.Outcome = OutcomeDuplicate
		res.JobID = existing[0].ID
		return res, nil
	}

	snapshot := snapshotJSON(in.Raw)
	now := u.now()

	companyID, err := u.upsertOne(ctx, CollectionCompanies, PropName, companyName(in.Record),
		buildCompanyProps(in.Record, snapshot, now))
	if err != nil {
		res.Outcome = OutcomeFailed
		return res, fmt.Errorf("company upsert failed: %w", err)
	}
	res.CompanyID = companyID

	roleProps := buildRoleProps(in.Record, snapshot, now)
	roleProps[PropCompanyID] = companyID
	roleID, err := u.upsertOne(ctx, CollectionRoleTemplates, PropTitle, roleTitle(in.Record), roleProps)
	if err != nil {
		res.Outcome = OutcomeFailed
		return res, fmt.Errorf("role template upsert failed: %w", err)
	}
	res.RoleTemplateID = roleID

	jobProps := buildJobProps(in.Record, snapshot, in.Text, in.SourceURL, fp, now)
	jobProps[PropCompanyID] = companyID
	jobProps[PropRoleTemplateID] = roleID
	jobID, err := u.store.Create(ctx, CollectionJobs, jobProps)
	if err != nil {
		// A store with a uniqueness constraint on the fingerprint may reject
		// the insert that raced past the lookup above.
		if errors.Is(err, ErrDuplicate) {
			res.Outcome = OutcomeDuplicate
			return res, nil
		}
		res.Outcome = OutcomeFailed
		return res, fmt.Errorf("job create failed: %w", err)
	}
	res.JobID = jobID

	res.Outcome = OutcomeSaved
	return res, nil
}

// upsertOne updates the first record whose key field contains the bounded
// match prefix, or creates a new record. The substring join is a heuristic:
// when several candidates match, the first one is updated and the ambiguity
// is reported.
func (u *Upserter) upsertOne(ctx context.Context, collection, keyProp, keyValue string, props Properties) (string, error) {
	needle := matchPrefix(keyValue)
	matches, err := u.store.Query(ctx, collection, Filter{Property: keyProp, Contains: needle})
	if err != nil {
		return "", err
	}

	if len(matches) > 1 {
		fmt.Fprintf(u.warn, "Warning: %d %s records match %q; updating the first\n",
			len(matches), collection, needle)
	}
	if len(matches) > 0 {
		if err := u.store.Update(ctx, collection, matches[0].ID, props); err != nil {
			return "", err
		}
		return matches[0].ID, nil
	}

	return u.store.Create(ctx, collection, props)
}

// matchPrefix caps the lookup substring at matchPrefixLen characters.
func matchPrefix(s string) string {
	runes := []rune(s)
	if len(runes) <= matchPrefixLen {
		return s
	}
	return string(runes[:matchPrefixLen])
}
