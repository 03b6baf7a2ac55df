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

package attest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pathattest "github.com/pathvouch/pathvouch/pkg/attest"
	"github.com/pathvouch/pathvouch/pathvouch-pki/demo"
	"github.com/pathvouch/pathvouch/private/app/command"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestParsePath(t *testing.T) {
	testCases := map[string]struct {
		input     string
		assertErr assert.ErrorAssertionFunc
		hops      int
	}{
		"two hops":      {input: "AS64496,AS64497", assertErr: assert.NoError, hops: 2},
		"spaces":        {input: "AS64496, AS64497, AS64498", assertErr: assert.NoError, hops: 3},
		"plain numbers": {input: "64496,64497", assertErr: assert.NoError, hops: 2},
		"single hop":    {input: "AS64496", assertErr: assert.Error},
		"empty":         {input: "", assertErr: assert.Error},
		"malformed hop": {input: "AS64496,hop2", assertErr: assert.Error},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			hops, err := parsePath(tc.input)
			tc.assertErr(t, err)
			assert.Len(t, hops, tc.hops)
		})
	}
}

func TestSignAndVerify(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, demo.Run(context.Background(), dir))
	pather := command.StringPather("test")

	out := filepath.Join(dir, "path.json")
	require.NoError(t, run(t, newSignCmd(pather),
		"--keys", filepath.Join(dir, "keys"),
		"--certs", filepath.Join(dir, "certs"),
		"--payload", "vouch",
		"--out", out,
		"AS64496,AS64497,AS64498,AS64499"))

	f, err := os.Open(out)
	require.NoError(t, err)
	sigs, err := pathattest.ReadAttestation(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Len(t, sigs, 3)

	require.NoError(t, run(t, newVerifyCmd(pather),
		"--certs", filepath.Join(dir, "certs"), out))

	// Tampering with a recorded payload breaks verification.
	sigs[1].Segment.Payload[0] ^= 0x01
	tampered := filepath.Join(dir, "tampered.json")
	tf, err := os.Create(tampered)
	require.NoError(t, err)
	require.NoError(t, pathattest.WriteAttestation(tf, sigs))
	require.NoError(t, tf.Close())
	assert.Error(t, run(t, newVerifyCmd(pather),
		"--certs", filepath.Join(dir, "certs"), tampered))
}
