// Copyright 2026 Pathvouch Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sqlite implements the issuance ledger on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
)

// DB is a SQLite backed issuance ledger.
type DB struct {
	db *sql.DB
}

// New opens the ledger database at path, creating the schema if the database
// is fresh. A database with a different schema version is rejected.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, serrors.Wrap("opening database", err, "path", path)
	}
	// The ledger is written by a single authority; a second connection only
	// invites SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := setup(db); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func setup(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return serrors.Wrap("querying schema version", err)
	}
	switch version {
	case 0:
		if _, err := db.Exec(Schema); err != nil {
			return serrors.Wrap("creating schema", err)
		}
		// PRAGMA statements do not support placeholders.
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", SchemaVersion)); err != nil {
			return serrors.Wrap("setting schema version", err)
		}
		return nil
	case SchemaVersion:
		return nil
	default:
		return serrors.New("schema version mismatch",
			"expected", SchemaVersion, "actual", version)
	}
}

func (d *DB) Append(ctx context.Context, entry ledgerdb.Entry) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO issuances (serial, subject, not_before, not_after, raw)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.Serial,
		entry.Subject,
		entry.Validity.NotBefore.Unix(),
		entry.Validity.NotAfter.Unix(),
		entry.Raw,
	)
	if err != nil {
		if recorded, _, lookupErr := d.Entry(ctx, entry.Serial); lookupErr == nil &&
			recorded.Serial == entry.Serial {
			return serrors.Join(ledgerdb.ErrDuplicateSerial, err, "serial", entry.Serial)
		}
		return serrors.Join(ledgerdb.ErrWriteFailed, err, "serial", entry.Serial)
	}
	return nil
}

func (d *DB) Entry(ctx context.Context, serial uint64) (ledgerdb.Entry, bool, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT serial, subject, not_before, not_after, raw
		 FROM issuances WHERE serial = ?`, serial)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return ledgerdb.Entry{}, false, nil
	}
	if err != nil {
		return ledgerdb.Entry{}, false, serrors.Join(ledgerdb.ErrReadFailed, err,
			"serial", serial)
	}
	return entry, true, nil
}

func (d *DB) Entries(ctx context.Context) ([]ledgerdb.Entry, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT serial, subject, not_before, not_after, raw
		 FROM issuances ORDER BY serial ASC`)
	if err != nil {
		return nil, serrors.Join(ledgerdb.ErrReadFailed, err)
	}
	defer rows.Close()
	var entries []ledgerdb.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, serrors.Join(ledgerdb.ErrReadFailed, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, serrors.Join(ledgerdb.ErrReadFailed, err)
	}
	return entries, nil
}

func (d *DB) MaxSerial(ctx context.Context) (uint64, error) {
	var maxSerial sql.NullInt64
	err := d.db.QueryRowContext(ctx,
		`SELECT MAX(serial) FROM issuances`).Scan(&maxSerial)
	if err != nil {
		return 0, serrors.Join(ledgerdb.ErrReadFailed, err)
	}
	if !maxSerial.Valid {
		return 0, nil
	}
	return uint64(maxSerial.Int64), nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func scanEntry(scan func(...any) error) (ledgerdb.Entry, error) {
	var (
		serial    uint64
		subject   uint32
		notBefore int64
		notAfter  int64
		raw       []byte
	)
	if err := scan(&serial, &subject, &notBefore, &notAfter, &raw); err != nil {
		return ledgerdb.Entry{}, err
	}
	return ledgerdb.Entry{
		Serial:  serial,
		Subject: addr.AS(subject),
		Validity: hoppki.Validity{
			NotBefore: time.Unix(notBefore, 0).UTC(),
			NotAfter:  time.Unix(notAfter, 0).UTC(),
		},
		Raw: raw,
	}, nil
}
