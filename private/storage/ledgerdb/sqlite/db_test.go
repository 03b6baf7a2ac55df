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

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
)

func testEntry(serial uint64) ledgerdb.Entry {
	return ledgerdb.Entry{
		Serial:  serial,
		Subject: 64496,
		Validity: hoppki.Validity{
			NotBefore: time.Unix(1700000000, 0).UTC(),
			NotAfter:  time.Unix(1700003600, 0).UTC(),
		},
		Raw: []byte{0x30, 0x03, 0x02, 0x01, byte(serial)},
	}
}

func TestAppendAndEntry(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	want := testEntry(1)
	require.NoError(t, db.Append(ctx, want))

	got, ok, err := db.Entry(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok, err = db.Entry(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppendDuplicateSerial(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.Append(ctx, testEntry(7)))
	err = db.Append(ctx, testEntry(7))
	assert.ErrorIs(t, err, ledgerdb.ErrDuplicateSerial)
}

func TestEntriesOrdered(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	for _, serial := range []uint64{3, 1, 2} {
		require.NoError(t, db.Append(ctx, testEntry(serial)))
	}
	entries, err := db.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, uint64(i+1), entry.Serial)
	}
}

func TestMaxSerial(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	maxSerial, err := db.MaxSerial(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, maxSerial)

	require.NoError(t, db.Append(ctx, testEntry(5)))
	require.NoError(t, db.Append(ctx, testEntry(2)))

	maxSerial, err = db.MaxSerial(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, maxSerial)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	db, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, db.Append(ctx, testEntry(1)))
	require.NoError(t, db.Close())

	db, err = sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()

	entries, err := db.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
