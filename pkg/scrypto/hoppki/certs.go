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

package hoppki

import (
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// CertType distinguishes the certificates handled by the hop PKI.
type CertType int

const (
	// Invalid is the type of certificates that fail structural validation.
	Invalid CertType = iota
	// Root is a self-signed authority certificate.
	Root
	// Hop is a leaf certificate issued to a single hop.
	Hop
)

func (t CertType) String() string {
	switch t {
	case Root:
		return "root"
	case Hop:
		return "hop"
	default:
		return "invalid"
	}
}

// ReadPEMCerts reads the PEM file and parses the certificates it contains in
// order of appearance.
func ReadPEMCerts(file string) ([]*x509.Certificate, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading file", err, "file", file)
	}
	return ParsePEMCerts(raw)
}

// ParsePEMCerts parses the certificates in the raw PEM bundle in order of
// appearance.
func ParsePEMCerts(raw []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for len(raw) > 0 {
		var block *pem.Block
		block, raw = pem.Decode(raw)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, serrors.Join(signed.ErrDecode, err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, serrors.Join(signed.ErrDecode, nil,
			"reason", "no certificate found")
	}
	return certs, nil
}

// EncodePEMCerts encodes the certificates as a PEM bundle in the given
// order.
func EncodePEMCerts(certs ...*x509.Certificate) []byte {
	var raw []byte
	for _, cert := range certs {
		raw = append(raw, pem.EncodeToMemory(&pem.Block{
			Type:  "CERTIFICATE",
			Bytes: cert.Raw,
		})...)
	}
	return raw
}

// ValidateCert checks the structural constraints of the certificate and
// identifies its type. Signature verification against a trusted root is not
// part of structural validation; see the trust package for that.
func ValidateCert(cert *x509.Certificate) (CertType, error) {
	if _, err := ExtractAS(cert.Subject); err != nil {
		return Invalid, serrors.Wrap("extracting hop AS from subject", err)
	}
	validity := Validity{NotBefore: cert.NotBefore, NotAfter: cert.NotAfter}
	if err := validity.Validate(); err != nil {
		return Invalid, err
	}
	if cert.SerialNumber == nil || cert.SerialNumber.Sign() <= 0 {
		return Invalid, serrors.New("serial number must be positive",
			"serial", cert.SerialNumber)
	}
	if _, err := signed.AlgorithmForKey(cert.PublicKey); err != nil {
		return Invalid, serrors.Wrap("checking public key algorithm", err)
	}
	if cert.BasicConstraintsValid && cert.IsCA {
		if cert.KeyUsage&x509.KeyUsageCertSign == 0 {
			return Invalid, serrors.New("authority certificate without cert sign key usage")
		}
		return Root, nil
	}
	if cert.KeyUsage&x509.KeyUsageDigitalSignature == 0 {
		return Invalid, serrors.New("hop certificate without digital signature key usage")
	}
	return Hop, nil
}
