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

package ledger

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
)

func TestListPlainOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := sqlite.New(path)
	require.NoError(t, err)
	ctx := context.Background()
	for serial := uint64(1); serial <= 2; serial++ {
		require.NoError(t, db.Append(ctx, ledgerdb.Entry{
			Serial:  serial,
			Subject: addr.AS(64495 + serial),
			Validity: hoppki.Validity{
				NotBefore: time.Unix(1700000000, 0).UTC(),
				NotAfter:  time.Unix(1700003600, 0).UTC(),
			},
			Raw: []byte{0x30, 0x03, 0x02, 0x01, byte(serial)},
		}))
	}
	require.NoError(t, db.Close())

	// The output buffer is not a terminal, so the entries must come out as
	// plain tab separated lines.
	cmd := newListCmd(command.StringPather("test"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	assert.Equal(t,
		"1\tAS64496\t2023-11-14 22:13:20\t2023-11-14 23:13:20\n"+
			"2\tAS64497\t2023-11-14 22:13:20\t2023-11-14 23:13:20\n",
		out.String())
}
