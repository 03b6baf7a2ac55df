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

package trust_test

import (
	"context"
	"crypto"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/private/ca"
	"github.com/pathvouch/pathvouch/private/trust"
)

type material struct {
	authority *ca.Authority
	hopKey    crypto.Signer
	hopCert   *x509.Certificate
}

func setup(t *testing.T) material {
	t.Helper()
	key, err := signed.GenerateKey(signed.Ed25519)
	require.NoError(t, err)
	now := time.Now().UTC()
	authority, err := ca.New(context.Background(), ca.Config{
		Subject: 65534,
		Key:     key,
		Validity: hoppki.Validity{
			NotBefore: now,
			NotAfter:  now.Add(time.Hour),
		},
	})
	require.NoError(t, err)

	var issuer ca.Issuer
	hopKey, hopCert, err := issuer.RequestAndIssue(context.Background(), authority, 64496)
	require.NoError(t, err)
	return material{authority: authority, hopKey: hopKey, hopCert: hopCert}
}

func TestValidate(t *testing.T) {
	m := setup(t)
	foreign := setup(t)

	testCases := map[string]struct {
		cert, root *x509.Certificate
		valid      bool
	}{
		"issued cert against issuing root": {
			cert:  m.hopCert,
			root:  m.authority.Cert(),
			valid: true,
		},
		"foreign cert against root": {
			cert:  foreign.hopCert,
			root:  m.authority.Cert(),
			valid: false,
		},
		"nil cert": {
			cert:  nil,
			root:  m.authority.Cert(),
			valid: false,
		},
		"nil root": {
			cert:  m.hopCert,
			root:  nil,
			valid: false,
		},
		"root in cert position": {
			cert:  m.authority.Cert(),
			root:  m.authority.Cert(),
			valid: false,
		},
		"hop in root position": {
			cert:  m.hopCert,
			root:  m.hopCert,
			valid: false,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var v trust.Validator
			res := v.Validate(tc.cert, tc.root)
			assert.Equal(t, tc.valid, res.Valid, "reason: %s", res.Reason)
			if !tc.valid {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestValidateCached(t *testing.T) {
	m := setup(t)
	var v trust.Validator

	first := v.Validate(m.hopCert, m.authority.Cert())
	second := v.Validate(m.hopCert, m.authority.Cert())
	assert.True(t, first.Valid)
	assert.Equal(t, first, second)
}

func TestLoadCerts(t *testing.T) {
	m := setup(t)
	dir := t.TempDir()

	write := func(name string, data []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	write("root.pem", hoppki.EncodePEMCerts(m.authority.Cert()))
	write("hop.pem", hoppki.EncodePEMCerts(m.hopCert))
	write("hop-again.pem", hoppki.EncodePEMCerts(m.hopCert))
	write("garbage.pem", []byte("not pem"))

	bundle, res, err := trust.LoadCerts(dir)
	require.NoError(t, err)

	require.NotNil(t, bundle.Root)
	assert.Equal(t, m.authority.Cert().Raw, bundle.Root.Raw)
	require.Contains(t, bundle.Hops, addr.AS(64496))
	assert.Len(t, res.Loaded, 2)
	assert.Len(t, res.Ignored, 2)
	// Glob order is lexical, so hop-again.pem loads first and hop.pem is
	// the duplicate.
	assert.ErrorIs(t, res.Ignored[filepath.Join(dir, "hop.pem")], trust.ErrAlreadyExists)
}

func TestLoadCertsMissingDir(t *testing.T) {
	_, _, err := trust.LoadCerts(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
