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

package demo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/attest"
	"github.com/pathvouch/pathvouch/pkg/log"
	"github.com/pathvouch/pathvouch/pkg/log/testlog"
	"github.com/pathvouch/pathvouch/pathvouch-pki/demo"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
	"github.com/pathvouch/pathvouch/private/trust"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun(t *testing.T) {
	out := t.TempDir()
	ctx := log.CtxWith(context.Background(), testlog.NewLogger(t))

	require.NoError(t, demo.Run(ctx, out))

	// 16 keys, 16 hop certificates plus the root.
	keys, err := filepath.Glob(filepath.Join(out, "keys", "*.key"))
	require.NoError(t, err)
	assert.Len(t, keys, 16)
	certs, err := filepath.Glob(filepath.Join(out, "certs", "*.pem"))
	require.NoError(t, err)
	assert.Len(t, certs, 17)

	// The ledger records the root and the 16 issued certificates.
	db, err := sqlite.New(filepath.Join(out, "ledger.db"))
	require.NoError(t, err)
	defer db.Close()
	entries, err := db.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 17)
	maxSerial, err := db.MaxSerial(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 17, maxSerial)

	// The recorded attestation verifies against the materialized certs.
	f, err := os.Open(filepath.Join(out, "attestation.json"))
	require.NoError(t, err)
	defer f.Close()
	sigs, err := attest.ReadAttestation(f)
	require.NoError(t, err)
	require.Len(t, sigs, 15)

	bundle, _, err := trust.LoadCerts(filepath.Join(out, "certs"))
	require.NoError(t, err)
	require.NotNil(t, bundle.Root)
	require.Len(t, bundle.Hops, 16)
	require.Contains(t, bundle.Hops, addr.AS(64496))

	var verifier attest.Verifier
	report, err := verifier.VerifyPath(ctx, sigs, bundle.Hops)
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Len(t, report.Results, 15)
}
