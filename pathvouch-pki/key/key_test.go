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

package key

import (
	"bytes"
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/private/app/command"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestPrivate(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "hop.key")

	cmd := newPrivateCmd(command.StringPather("test"))
	require.NoError(t, run(t, cmd, keyFile))

	key, err := LoadPrivateKey(keyFile)
	require.NoError(t, err)
	assert.IsType(t, ed25519.PrivateKey{}, key)

	info, err := os.Stat(keyFile)
	require.NoError(t, err)
	assert.EqualValues(t, 0o600, info.Mode().Perm())

	// A second run without --force must not clobber the key.
	cmd = newPrivateCmd(command.StringPather("test"))
	assert.Error(t, run(t, cmd, keyFile))

	cmd = newPrivateCmd(command.StringPather("test"))
	assert.NoError(t, run(t, cmd, "--force", keyFile))
}

func TestPrivateECDSA(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "hop.key")

	cmd := newPrivateCmd(command.StringPather("test"))
	require.NoError(t, run(t, cmd, "--algorithm", "ecdsa-p256", keyFile))

	key, err := LoadPrivateKey(keyFile)
	require.NoError(t, err)
	alg, err := signed.AlgorithmForKey(key.Public())
	require.NoError(t, err)
	assert.Equal(t, signed.ECDSAWithSHA256, alg)
}

func TestPrivateUnknownAlgorithm(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "hop.key")
	cmd := newPrivateCmd(command.StringPather("test"))
	assert.Error(t, run(t, cmd, "--algorithm", "rsa", keyFile))
}

func TestPublic(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "hop.key")
	pubFile := filepath.Join(dir, "hop.pub")

	require.NoError(t, run(t, newPrivateCmd(command.StringPather("test")), keyFile))

	var out bytes.Buffer
	cmd := newPublicCmd(command.StringPather("test"))
	cmd.SetOut(&out)
	require.NoError(t, run(t, cmd, keyFile))
	assert.Contains(t, out.String(), "PUBLIC KEY")

	cmd = newPublicCmd(command.StringPather("test"))
	require.NoError(t, run(t, cmd, "--out", pubFile, keyFile))
	raw, err := os.ReadFile(pubFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "PUBLIC KEY")
}
