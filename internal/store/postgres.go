package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements RecordStore on a PostgreSQL schema with one table
// per collection. Jobs carry a unique index on fingerprint, so a duplicate
// insert that races past the engine's lookup is rejected atomically and
// surfaced as ErrDuplicate.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the record store database.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the collection tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name text NOT NULL,
			properties jsonb NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL DEFAULT NOW(),
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS role_templates (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			title text NOT NULL,
			company_id uuid REFERENCES companies(id),
			properties jsonb NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL DEFAULT NOW(),
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			title text NOT NULL,
			fingerprint text NOT NULL,
			company_id uuid REFERENCES companies(id),
			role_template_id uuid REFERENCES role_templates(id),
			properties jsonb NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS jobs_fingerprint_idx ON jobs (fingerprint)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// keyColumn maps a filter property to its indexed column, rejecting
// anything outside the known set before it reaches SQL.
func keyColumn(collection, property string) (table, column string, err error) {
	switch collection {
	case CollectionCompanies:
		table = "companies"
	case CollectionRoleTemplates:
		table = "role_templates"
	case CollectionJobs:
		table = "jobs"
	default:
		return "", "", fmt.Errorf("unknown collection: %s", collection)
	}

	switch property {
	case PropName:
		column = "name"
	case PropTitle:
		column = "title"
	case PropFingerprint:
		column = "fingerprint"
	default:
		return "", "", fmt.Errorf("unknown filter property: %s", property)
	}

	if column == "name" && table != "companies" {
		return "", "", fmt.Errorf("property %s not indexed on %s", property, collection)
	}
	if column == "fingerprint" && table != "jobs" {
		return "", "", fmt.Errorf("property %s not indexed on %s", property, collection)
	}
	return table, column, nil
}

// Query returns summaries of records matching the filter, oldest first, so
// "first match wins" is stable across calls.
func (s *PostgresStore) Query(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	table, column, err := keyColumn(collection, filter.Property)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	switch {
	case filter.Equals != "":
		rows, err = s.pool.Query(ctx,
			fmt.Sprintf(`SELECT id FROM %s WHERE %s = $1 ORDER BY created_at`, table, column),
			filter.Equals)
	case filter.Contains != "":
		// strpos is case-sensitive substring containment
		rows, err = s.pool.Query(ctx,
			fmt.Sprintf(`SELECT id FROM %s WHERE strpos(%s, $1) > 0 ORDER BY created_at`, table, column),
			filter.Contains)
	default:
		return nil, fmt.Errorf("filter must set Equals or Contains")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", collection, err)
		}
		records = append(records, Record{ID: id.String()})
	}
	return records, rows.Err()
}

// Create inserts a record and returns its assigned id. For jobs, a
// fingerprint collision yields ErrDuplicate instead of a new record.
func (s *PostgresStore) Create(ctx context.Context, collection string, props Properties) (string, error) {
	payload, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("failed to marshal properties: %w", err)
	}

	var id uuid.UUID
	switch collection {
	case CollectionCompanies:
		err = s.pool.QueryRow(ctx,
			`INSERT INTO companies (name, properties) VALUES ($1, $2) RETURNING id`,
			stringProp(props, PropName), payload,
		).Scan(&id)

	case CollectionRoleTemplates:
		err = s.pool.QueryRow(ctx,
			`INSERT INTO role_templates (title, company_id, properties) VALUES ($1, $2, $3) RETURNING id`,
			stringProp(props, PropTitle), uuidProp(props, PropCompanyID), payload,
		).Scan(&id)

	case CollectionJobs:
		err = s.pool.QueryRow(ctx,
			`INSERT INTO jobs (title, fingerprint, company_id, role_template_id, properties)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (fingerprint) DO NOTHING
			 RETURNING id`,
			stringProp(props, PropTitle), stringProp(props, PropFingerprint),
			uuidProp(props, PropCompanyID), uuidProp(props, PropRoleTemplateID), payload,
		).Scan(&id)
		if err == pgx.ErrNoRows {
			return "", ErrDuplicate
		}

	default:
		return "", fmt.Errorf("unknown collection: %s", collection)
	}

	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("failed to create %s record: %w", collection, err)
	}
	return id.String(), nil
}

// Update replaces a record's key field and property bag.
func (s *PostgresStore) Update(ctx context.Context, collection, id string, props Properties) error {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}

	payload, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	var tag pgconn.CommandTag
	switch collection {
	case CollectionCompanies:
		tag, err = s.pool.Exec(ctx,
			`UPDATE companies SET name = $1, properties = $2, updated_at = NOW() WHERE id = $3`,
			stringProp(props, PropName), payload, recordID)

	case CollectionRoleTemplates:
		tag, err = s.pool.Exec(ctx,
			`UPDATE role_templates SET title = $1, company_id = $2, properties = $3, updated_at = NOW() WHERE id = $4`,
			stringProp(props, PropTitle), uuidProp(props, PropCompanyID), payload, recordID)

	case CollectionJobs:
		tag, err = s.pool.Exec(ctx,
			`UPDATE jobs SET title = $1, properties = $2 WHERE id = $3`,
			stringProp(props, PropTitle), payload, recordID)

	default:
		return fmt.Errorf("unknown collection: %s", collection)
	}

	if err != nil {
		return fmt.Errorf("failed to update %s record: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s record not found: %s", collection, id)
	}
	return nil
}

// stringProp reads a string-valued property, defaulting to "".
func stringProp(props Properties, key string) string {
	s, _ := props[key].(string)
	return s
}

// uuidProp reads a relation id property as a nullable value.
func uuidProp(props Properties, key string) any {
	s, _ := props[key].(string)
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
