// Package db owns the club's SQLite store: split connection pools tuned for
// a single-writer workload, and the embedded schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// The store runs in WAL mode so member reads (event listings, profile
// lookups) never block behind registration or attendance writes. Writes go
// through one connection holding an immediate transaction lock; readers get
// a small pool of their own.
const (
	busyTimeoutMillis = 5000
	defaultReaders    = 4
)

// Open opens the club store at path and returns the writer and reader
// pools. readers bounds the reader pool; pass 0 for the default.
func Open(path string, readers int) (write, read *sql.DB, err error) {
	write, err = openPool(path, 1, true)
	if err != nil {
		return nil, nil, fmt.Errorf("open store writer: %w", err)
	}

	if readers <= 0 {
		readers = defaultReaders
	}
	read, err = openPool(path, readers, false)
	if err != nil {
		_ = write.Close()
		return nil, nil, fmt.Errorf("open store readers: %w", err)
	}

	return write, read, nil
}

func openPool(path string, conns int, writer bool) (*sql.DB, error) {
	pool, err := sql.Open("sqlite3", storeDSN(path, writer))
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(conns)
	pool.SetMaxIdleConns(conns)
	pool.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return pool, nil
}

// storeDSN applies the store's pragmas. Writers additionally take the
// transaction lock up front so lock conflicts surface at BEGIN rather than
// mid-transaction.
func storeDSN(path string, writer bool) string {
	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL&_foreign_keys=on",
		path, busyTimeoutMillis,
	)
	if writer {
		dsn += "&_txlock=immediate"
	}
	return dsn
}
