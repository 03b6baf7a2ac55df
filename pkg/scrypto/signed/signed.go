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

// Package signed implements the signature primitive boundary: key pair
// generation, detached signing and verification for the supported signature
// schemes. All other packages treat keys as opaque crypto.Signer values and
// go through this package for any primitive operation.
package signed

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// Sentinel errors for the primitive boundary. Call sites attach context via
// serrors.Join.
var (
	// ErrKeyGen indicates an unsupported or misconfigured algorithm.
	ErrKeyGen = serrors.New("key generation failed")
	// ErrSigning indicates an algorithm/key mismatch during signing.
	ErrSigning = serrors.New("signing failed")
	// ErrDecode indicates a malformed persisted record.
	ErrDecode = serrors.New("malformed record")
)

// GenerateKey generates a fresh private key for the given signature
// algorithm. The caller exclusively owns the returned private key material.
func GenerateKey(alg Algorithm) (crypto.Signer, error) {
	switch alg {
	case Ed25519:
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, serrors.Join(ErrKeyGen, err, "algorithm", alg)
		}
		return priv, nil
	case ECDSAWithSHA256:
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, serrors.Join(ErrKeyGen, err, "algorithm", alg)
		}
		return priv, nil
	default:
		return nil, serrors.Join(ErrKeyGen, nil,
			"reason", "unsupported algorithm", "algorithm", alg)
	}
}

// Sign computes a detached signature over the message with the given private
// key. For Ed25519 the signature is deterministic; for ECDSA it is
// randomized, but any produced signature verifies against the same message
// bytes.
func Sign(priv crypto.Signer, message []byte) ([]byte, error) {
	switch k := priv.(type) {
	case ed25519.PrivateKey:
		return ed25519.Sign(k, message), nil
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return nil, serrors.Join(ErrSigning, nil,
				"reason", "unsupported curve", "curve", k.Curve.Params().Name)
		}
		digest := sha256.Sum256(message)
		sig, err := ecdsa.SignASN1(rand.Reader, k, digest[:])
		if err != nil {
			return nil, serrors.Join(ErrSigning, err)
		}
		return sig, nil
	default:
		return nil, serrors.Join(ErrSigning, nil,
			"reason", "unsupported key type", "type", fmt.Sprintf("%T", priv))
	}
}

// Verify reports whether the signature validates against the message under
// the given public key. Unknown key types never verify.
func Verify(pub crypto.PublicKey, message, signature []byte) bool {
	switch k := pub.(type) {
	case ed25519.PublicKey:
		return ed25519.Verify(k, message, signature)
	case *ecdsa.PublicKey:
		digest := sha256.Sum256(message)
		return ecdsa.VerifyASN1(k, digest[:], signature)
	default:
		return false
	}
}

// KeyDigest returns the SHA-256 digest of the PKIX encoding of the public
// key. It is the canonical short identifier for key material, used by the
// attestation layer to bind a segment to the next hop's key.
func KeyDigest(pub crypto.PublicKey) ([sha256.Size]byte, error) {
	raw, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return [sha256.Size]byte{}, serrors.Wrap("encoding public key", err)
	}
	return sha256.Sum256(raw), nil
}
