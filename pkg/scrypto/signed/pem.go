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
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// EncodePEMPrivateKey encodes the private key as a PEM encoded PKCS#8 block.
func EncodePEMPrivateKey(priv crypto.Signer) ([]byte, error) {
	raw, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, serrors.Wrap("encoding private key", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: raw}), nil
}

// DecodePEMPrivateKey decodes a PEM encoded PKCS#8 private key of a
// supported signature algorithm.
func DecodePEMPrivateKey(raw []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(raw)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, serrors.Join(ErrDecode, nil,
			"reason", "no PRIVATE KEY block found")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, serrors.Join(ErrDecode, err)
	}
	switch k := key.(type) {
	case ed25519.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return k, nil
	default:
		return nil, serrors.Join(ErrDecode, nil,
			"reason", "unsupported key type", "type", fmt.Sprintf("%T", key))
	}
}

// EncodePEMPublicKey encodes the public key as a PEM encoded PKIX block.
func EncodePEMPublicKey(pub crypto.PublicKey) ([]byte, error) {
	raw, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, serrors.Wrap("encoding public key", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: raw}), nil
}
