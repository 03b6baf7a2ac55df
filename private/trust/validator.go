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

// Package trust establishes trust in hop certificates: a validator checks
// certificates against the authority's root, and a store loads certificate
// material from disk.
package trust

import (
	"bytes"
	"crypto/sha256"
	"crypto/x509"
	"sync"

	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
)

// ValidationResult is the outcome of validating a certificate against a
// root. Invalid inputs produce an invalid result, never an error.
type ValidationResult struct {
	Valid  bool
	Reason string
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

// Validator validates hop certificates against a root certificate. Results
// are memoized per certificate and root pair; certificates are immutable, so
// cached results never age out. The zero value is ready to use and safe for
// concurrent use.
type Validator struct {
	mu    sync.Mutex
	cache map[cacheKey]ValidationResult
}

type cacheKey struct {
	cert [sha256.Size]byte
	root [sha256.Size]byte
}

// Validate checks that the certificate is a well-formed hop certificate
// signed by the root, with the issuer matching the root's subject. Neither
// input is mutated.
func (v *Validator) Validate(cert, root *x509.Certificate) ValidationResult {
	if cert == nil || root == nil {
		return invalid("missing certificate or root")
	}

	key := cacheKey{cert: sha256.Sum256(cert.Raw), root: sha256.Sum256(root.Raw)}
	v.mu.Lock()
	if res, ok := v.cache[key]; ok {
		v.mu.Unlock()
		return res
	}
	v.mu.Unlock()

	res := validate(cert, root)

	v.mu.Lock()
	if v.cache == nil {
		v.cache = make(map[cacheKey]ValidationResult)
	}
	v.cache[key] = res
	v.mu.Unlock()
	return res
}

func validate(cert, root *x509.Certificate) ValidationResult {
	if ct, err := hoppki.ValidateCert(root); err != nil {
		return invalid("root malformed: " + err.Error())
	} else if ct != hoppki.Root {
		return invalid("root certificate is not a root")
	}
	ct, err := hoppki.ValidateCert(cert)
	if err != nil {
		return invalid("certificate malformed: " + err.Error())
	}
	if ct != hoppki.Hop {
		return invalid("certificate is not a hop certificate")
	}
	if !bytes.Equal(cert.RawIssuer, root.RawSubject) {
		return invalid("issuer does not match root subject")
	}
	if err := cert.CheckSignatureFrom(root); err != nil {
		return invalid("signature check failed: " + err.Error())
	}
	return valid()
}
