package repos

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Gateway holds the two connection pools the API talks through. Read may
// point at a streaming replica and can lag; Write is the primary and is the
// only pool safe for read-after-write (owner resolution, conflict fallback).
type Gateway struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Open connects both pools, applies the schema on the primary and seeds demo
// data when the database is empty. When both DSNs are equal (local SQLite,
// single-node Postgres) one pool serves both roles.
func Open(readDSN, writeDSN string) (*Gateway, error) {
	write, err := open(writeDSN)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(write); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(write); err != nil {
		return nil, err
	}

	read := write
	if readDSN != writeDSN {
		if read, err = open(readDSN); err != nil {
			return nil, err
		}
	}
	return &Gateway{Read: read, Write: write}, nil
}

func open(dsn string) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// A SQLite handle must not fan out: :memory: gives every
		// connection its own database, and file DBs lock under
		// concurrent writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// isUniqueViolation classifies constraint errors from both drivers so the
// conversation open path and the favorites path can treat duplicates as a
// designed outcome rather than a storage failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation classifies referential-integrity errors (dangling
// annonce/user references) so services can answer NotFound instead of 500.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
