// Package store persists reconstructed records in Postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/planport/daextract"
)

// ErrNotFound is returned by Get when no record carries the requested
// council reference.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS da_record (
	council_reference text PRIMARY KEY,
	address           text NOT NULL,
	description       text NOT NULL,
	info_url          text NOT NULL,
	comment_url       text NOT NULL,
	date_scraped      timestamptz NOT NULL,
	date_received     timestamptz,
	legal_description text NOT NULL DEFAULT ''
)`

// Store reads and writes records through a Postgres connection pool.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres using a lib/pq DSN and verifies the
// connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the record table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Upsert writes rec, replacing any existing record with the same council
// reference. Re-running a scrape is therefore idempotent.
func (s *Store) Upsert(ctx context.Context, rec daextract.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO da_record (
			council_reference, address, description, info_url,
			comment_url, date_scraped, date_received, legal_description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (council_reference) DO UPDATE SET
			address = EXCLUDED.address,
			description = EXCLUDED.description,
			info_url = EXCLUDED.info_url,
			comment_url = EXCLUDED.comment_url,
			date_scraped = EXCLUDED.date_scraped,
			date_received = EXCLUDED.date_received,
			legal_description = EXCLUDED.legal_description
	`,
		rec.CouncilReference,
		rec.Address,
		rec.Description,
		rec.InfoURL,
		rec.CommentURL,
		rec.DateScraped,
		nullableTime(rec.DateReceived),
		rec.LegalDescription,
	)
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", rec.CouncilReference, err)
	}
	return nil
}

// UpsertAll writes every record in a single transaction.
func (s *Store) UpsertAll(ctx context.Context, records []daextract.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO da_record (
				council_reference, address, description, info_url,
				comment_url, date_scraped, date_received, legal_description
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (council_reference) DO UPDATE SET
				address = EXCLUDED.address,
				description = EXCLUDED.description,
				info_url = EXCLUDED.info_url,
				comment_url = EXCLUDED.comment_url,
				date_scraped = EXCLUDED.date_scraped,
				date_received = EXCLUDED.date_received,
				legal_description = EXCLUDED.legal_description
		`,
			rec.CouncilReference,
			rec.Address,
			rec.Description,
			rec.InfoURL,
			rec.CommentURL,
			rec.DateScraped,
			nullableTime(rec.DateReceived),
			rec.LegalDescription,
		); err != nil {
			return fmt.Errorf("upserting record %s: %w", rec.CouncilReference, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// List returns all stored records ordered by council reference.
func (s *Store) List(ctx context.Context) ([]daextract.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT council_reference, address, description, info_url,
		       comment_url, date_scraped, date_received, legal_description
		FROM da_record
		ORDER BY council_reference
	`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []daextract.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// Get returns the record with the given council reference, or ErrNotFound.
func (s *Store) Get(ctx context.Context, reference string) (daextract.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT council_reference, address, description, info_url,
		       comment_url, date_scraped, date_received, legal_description
		FROM da_record
		WHERE council_reference = $1
	`, reference)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return daextract.Record{}, ErrNotFound
	}
	if err != nil {
		return daextract.Record{}, fmt.Errorf("fetching record %s: %w", reference, err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (daextract.Record, error) {
	var rec daextract.Record
	var received sql.NullTime
	err := s.Scan(
		&rec.CouncilReference,
		&rec.Address,
		&rec.Description,
		&rec.InfoURL,
		&rec.CommentURL,
		&rec.DateScraped,
		&received,
		&rec.LegalDescription,
	)
	if err != nil {
		return daextract.Record{}, err
	}
	if received.Valid {
		rec.DateReceived = received.Time
	}
	return rec, nil
}

// nullableTime maps the zero time to SQL NULL; the zero value means the
// document carried no parseable date.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
