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

package signed

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"fmt"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// Algorithm identifies a signature scheme. The algorithm of a key pair is
// fixed at generation and never changes.
type Algorithm int

const (
	UnknownAlgorithm Algorithm = iota
	// Ed25519 is the default signature scheme.
	Ed25519
	// ECDSAWithSHA256 is ECDSA on the NIST P-256 curve over a SHA-256 digest.
	ECDSAWithSHA256
)

func (a Algorithm) String() string {
	switch a {
	case Ed25519:
		return "ed25519"
	case ECDSAWithSHA256:
		return "ecdsa-p256"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses the human readable algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "ed25519":
		return Ed25519, nil
	case "ecdsa-p256", "ecdsa":
		return ECDSAWithSHA256, nil
	default:
		return UnknownAlgorithm, serrors.Join(ErrKeyGen, nil,
			"reason", "unsupported algorithm", "algorithm", s)
	}
}

// AlgorithmForKey returns the signature algorithm that goes with the given
// public key.
func AlgorithmForKey(pub crypto.PublicKey) (Algorithm, error) {
	switch k := pub.(type) {
	case ed25519.PublicKey:
		return Ed25519, nil
	case *ecdsa.PublicKey:
		if k.Curve != elliptic.P256() {
			return UnknownAlgorithm, serrors.Join(ErrKeyGen, nil,
				"reason", "unsupported curve", "curve", k.Curve.Params().Name)
		}
		return ECDSAWithSHA256, nil
	default:
		return UnknownAlgorithm, serrors.Join(ErrKeyGen, nil,
			"reason", "unsupported key type", "type", fmt.Sprintf("%T", pub))
	}
}
