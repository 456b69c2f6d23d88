// Package store persists extracted job records into the linked
// company / role template / job collections of an external record store.
package store

import (
	"context"
	"errors"
)

// Collection names understood by RecordStore implementations.
const (
	CollectionCompanies     = "companies"
	CollectionRoleTemplates = "role_templates"
	CollectionJobs          = "jobs"
)

// Well-known property keys. Implementations index these; everything else in
// a property bag is stored opaquely.
const (
	PropName           = "name"
	PropTitle          = "title"
	PropFingerprint    = "fingerprint"
	PropCompanyID      = "company_id"
	PropRoleTemplateID = "role_template_id"
)

// Properties is the generic property bag written to a record.
type Properties map[string]any

// Filter selects records either by exact match on a property or by
// case-sensitive substring containment. Exactly one of Equals or Contains
// is set.
type Filter struct {
	Property string
	Equals   string
	Contains string
}

// Record is a summary of a persisted record, as returned by Query.
type Record struct {
	ID string
}

// ErrDuplicate is returned by Create when a uniqueness constraint on the
// fingerprint field rejects the insert.
var ErrDuplicate = errors.New("record with identical fingerprint already exists")

// RecordStore is the interface the upsert engine needs from the external
// record store. Implementations assign record ids on creation.
type RecordStore interface {
	Query(ctx context.Context, collection string, filter Filter) ([]Record, error)
	Create(ctx context.Context, collection string, props Properties) (string, error)
	Update(ctx context.Context, collection, id string, props Properties) error
}
