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

package ledgerdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
)

func TestMemoryLedger(t *testing.T) {
	var db ledgerdb.Memory
	ctx := context.Background()

	maxSerial, err := db.MaxSerial(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, maxSerial)

	for _, serial := range []uint64{4, 2, 9} {
		require.NoError(t, db.Append(ctx, ledgerdb.Entry{Serial: serial, Subject: 64496}))
	}
	err = db.Append(ctx, ledgerdb.Entry{Serial: 2})
	assert.ErrorIs(t, err, ledgerdb.ErrDuplicateSerial)

	entry, ok, err := db.Entry(ctx, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 64496, entry.Subject)

	_, ok, err = db.Entry(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := db.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.EqualValues(t, 2, entries[0].Serial)
	assert.EqualValues(t, 9, entries[2].Serial)

	maxSerial, err = db.MaxSerial(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 9, maxSerial)

	assert.NoError(t, db.Close())
}
