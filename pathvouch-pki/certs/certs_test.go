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

package certs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
)

const testPolicy = `
subject = "AS65534"

[validity]
validity = "3d"
`

func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeCAKey(t *testing.T, dir string) string {
	t.Helper()
	key, err := signed.GenerateKey(signed.Ed25519)
	require.NoError(t, err)
	raw, err := signed.EncodePEMPrivateKey(key)
	require.NoError(t, err)
	path := filepath.Join(dir, "ca.key")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestCreateCAAlgorithmMismatch(t *testing.T) {
	dir := t.TempDir()
	pather := command.StringPather("test")

	caKey := writeCAKey(t, dir)
	policy := filepath.Join(dir, "policy.toml")
	require.NoError(t, os.WriteFile(policy, []byte(`
subject = "AS65534"
algorithm = "ecdsa-p256"

[validity]
validity = "3d"
`), 0o644))

	// The policy demands ECDSA, but the provided key is Ed25519.
	err := run(t, newCreateCACmd(pather),
		"--policy", policy, "--key", caKey, filepath.Join(dir, "ca.pem"))
	assert.ErrorContains(t, err, "does not match policy algorithm")
}

func TestCreateIssueVerify(t *testing.T) {
	dir := t.TempDir()
	pather := command.StringPather("test")

	caKey := writeCAKey(t, dir)
	policy := filepath.Join(dir, "policy.toml")
	require.NoError(t, os.WriteFile(policy, []byte(testPolicy), 0o644))
	caCert := filepath.Join(dir, "ca.pem")
	ledger := filepath.Join(dir, "ledger.db")

	require.NoError(t, run(t, newCreateCACmd(pather),
		"--policy", policy, "--key", caKey, "--ledger", ledger, caCert))

	certs, err := hoppki.ReadPEMCerts(caCert)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	ct, err := hoppki.ValidateCert(certs[0])
	require.NoError(t, err)
	assert.Equal(t, hoppki.Root, ct)

	hop1 := filepath.Join(dir, "hop1.pem")
	hop2 := filepath.Join(dir, "hop2.pem")
	require.NoError(t, run(t, newIssueCmd(pather),
		"--ca", caCert, "--ca-key", caKey, "--ledger", ledger,
		"--subject", "AS64496", hop1, filepath.Join(dir, "hop1.key")))
	require.NoError(t, run(t, newIssueCmd(pather),
		"--ca", caCert, "--ca-key", caKey, "--ledger", ledger,
		"--subject", "AS64497", hop2, filepath.Join(dir, "hop2.key")))

	require.NoError(t, run(t, newValidateCmd(pather), "--type", "hop", hop1))
	require.NoError(t, run(t, newValidateCmd(pather), "--type", "root", caCert))
	assert.Error(t, run(t, newValidateCmd(pather), "--type", "root", hop1))

	require.NoError(t, run(t, newVerifyCmd(pather), "--root", caCert, hop1, hop2))
	// The root does not verify as a hop certificate.
	assert.Error(t, run(t, newVerifyCmd(pather), "--root", caCert, caCert))

	// Serials continue across invocations through the ledger.
	db, err := sqlite.New(ledger)
	require.NoError(t, err)
	defer db.Close()
	maxSerial, err := db.MaxSerial(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, maxSerial)
}

func TestVerifyForeignCert(t *testing.T) {
	dir := t.TempDir()
	pather := command.StringPather("test")

	// Two independent authorities.
	caKeyA := writeCAKey(t, dir)
	policy := filepath.Join(dir, "policy.toml")
	require.NoError(t, os.WriteFile(policy, []byte(testPolicy), 0o644))
	caCertA := filepath.Join(dir, "ca-a.pem")
	require.NoError(t, run(t, newCreateCACmd(pather),
		"--policy", policy, "--key", caKeyA, caCertA))

	dirB := t.TempDir()
	caKeyB := writeCAKey(t, dirB)
	caCertB := filepath.Join(dirB, "ca-b.pem")
	require.NoError(t, run(t, newCreateCACmd(pather),
		"--policy", policy, "--key", caKeyB, caCertB))

	hop := filepath.Join(dirB, "hop.pem")
	require.NoError(t, run(t, newIssueCmd(pather),
		"--ca", caCertB, "--ca-key", caKeyB,
		"--subject", "AS64496", hop, filepath.Join(dirB, "hop.key")))

	assert.Error(t, run(t, newVerifyCmd(pather), "--root", caCertA, hop))
	assert.NoError(t, run(t, newVerifyCmd(pather), "--root", caCertB, hop))
}
