package sink

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsawler/pna/model"
)

// DefaultTable is the table records are copied into.
const DefaultTable = "pna_records"

// CopyColumns lists the database columns in the order [CopyRow] fills them.
var CopyColumns = []string{
	"run_id",
	"seq",
	"postal_code",
	"street",
	"number_range",
	"place_name",
	"gmina",
	"powiat",
	"wojewodztwo",
	"flags",
	"orphan",
	"unconverged",
	"sources",
}

// Postgres copies records into a PostgreSQL table. Every write is tagged
// with a run id so runs can be compared or removed.
type Postgres struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
}

// ConnectPostgres opens a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, url, table string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgres(pool, table), nil
}

// NewPostgres wraps an existing pool. An empty table selects
// [DefaultTable]; "schema.table" names are supported.
func NewPostgres(pool *pgxpool.Pool, table string) *Postgres {
	return &Postgres{pool: pool, table: TableIdentifier(table)}
}

// TableIdentifier splits a possibly schema-qualified table name.
func TableIdentifier(table string) pgx.Identifier {
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultTable
	}
	return pgx.Identifier(strings.Split(table, "."))
}

// Close closes the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// EnsureTable creates the record table when it does not exist.
func (p *Postgres) EnsureTable(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, CreateTableSQL(p.table))
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", p.table.Sanitize(), err)
	}
	return nil
}

// CreateTableSQL returns the DDL for the record table.
func CreateTableSQL(table pgx.Identifier) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id       uuid    NOT NULL,
	seq          integer NOT NULL,
	postal_code  text    NOT NULL,
	street       text    NOT NULL,
	number_range text    NOT NULL,
	place_name   text    NOT NULL,
	gmina        text    NOT NULL,
	powiat       text    NOT NULL,
	wojewodztwo  text    NOT NULL,
	flags        text[]  NOT NULL,
	orphan       boolean NOT NULL,
	unconverged  boolean NOT NULL,
	sources      text[]  NOT NULL,
	PRIMARY KEY (run_id, seq)
)`, table.Sanitize())
}

// Write copies records in one transaction and returns the number of rows
// written.
func (p *Postgres) Write(ctx context.Context, runID uuid.UUID, records []model.Record) (int64, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, p.table, CopyColumns, pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
		return CopyRow(runID, i, records[i]), nil
	}))
	if err != nil {
		return 0, fmt.Errorf("failed to copy records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return n, nil
}

// DeleteRun removes the records of one run.
func (p *Postgres) DeleteRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	tag, err := p.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", p.table.Sanitize()),
		pgtype.UUID{Bytes: runID, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	return tag.RowsAffected(), nil
}

// CopyRow converts a record into COPY values matching [CopyColumns].
func CopyRow(runID uuid.UUID, seq int, rec model.Record) []any {
	flags := make([]string, 0, rec.Flags.Len())
	for _, k := range rec.Flags.Kinds() {
		flags = append(flags, k.String())
	}
	sources := make([]string, len(rec.Sources))
	for i, s := range rec.Sources {
		sources[i] = s.String()
	}

	return []any{
		pgtype.UUID{Bytes: runID, Valid: true},
		int32(seq),
		rec.PostalCode,
		rec.Street,
		rec.NumberRange,
		rec.PlaceName,
		rec.Gmina,
		rec.Powiat,
		rec.Wojewodztwo,
		flags,
		rec.Orphan,
		rec.Unconverged,
		sources,
	}
}
