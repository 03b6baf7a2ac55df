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

// Package ca implements the certificate authority for hop certificates. The
// authority holds the root key material, allocates strictly increasing
// serial numbers, and records every issued certificate in the issuance
// ledger.
package ca

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"math/big"
	"sync"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/log"
	"github.com/pathvouch/pathvouch/pkg/metrics"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
)

// ErrIssuance indicates the authority cannot issue, either because its root
// material is absent or unusable, or because the issuance itself failed.
var ErrIssuance = serrors.New("issuance failed")

// rootSerial is the serial number of the self-signed root certificate.
const rootSerial = 1

// Config configures a new authority.
type Config struct {
	// Subject is the authority's own identity.
	Subject addr.AS
	// CommonName overrides the default common name of the root certificate.
	CommonName string
	// Key is the root private key.
	Key crypto.Signer
	// Validity is the validity period of the root certificate and of all
	// certificates issued by the authority.
	Validity hoppki.Validity
	// Ledger records issuances. Defaults to an in-memory ledger.
	Ledger ledgerdb.DB
	// CertsIssued counts issued certificates. Optional.
	CertsIssued metrics.Counter
}

// Authority is a certificate authority backed by a self-signed root
// certificate. Issuance is serialized; the authority is safe for concurrent
// use.
type Authority struct {
	key         crypto.Signer
	cert        *x509.Certificate
	validity    hoppki.Validity
	ledger      ledgerdb.DB
	certsIssued metrics.Counter

	mu         sync.Mutex
	nextSerial uint64
}

// New establishes a new authority: it self-signs the root certificate with
// serial number 1, records it in the ledger, and initializes the serial
// counter from the ledger's highest recorded serial.
func New(ctx context.Context, cfg Config) (*Authority, error) {
	if cfg.Key == nil {
		return nil, serrors.Join(ErrIssuance, nil, "reason", "no root key")
	}
	if err := cfg.Validity.Validate(); err != nil {
		return nil, serrors.Join(ErrIssuance, err)
	}
	if cfg.Ledger == nil {
		cfg.Ledger = &ledgerdb.Memory{}
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(rootSerial),
		Subject:               hoppki.Subject(cfg.Subject, cfg.CommonName),
		NotBefore:             cfg.Validity.NotBefore,
		NotAfter:              cfg.Validity.NotAfter,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
	}
	raw, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, cfg.Key.Public(), cfg.Key)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "self-signing root")
	}
	cert, err := x509.ParseCertificate(raw)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "parsing root")
	}
	entry, err := ledgerdb.EntryFromCert(cert)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err)
	}
	if err := cfg.Ledger.Append(ctx, entry); err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "recording root")
	}
	return fromParts(ctx, cfg, cert)
}

// FromMaterial loads an authority from existing root material, typically
// read back from disk. The serial counter resumes from the ledger's highest
// recorded serial.
func FromMaterial(
	ctx context.Context,
	key crypto.Signer,
	cert *x509.Certificate,
	cfg Config,
) (*Authority, error) {

	if key == nil || cert == nil {
		return nil, serrors.Join(ErrIssuance, nil, "reason", "incomplete root material")
	}
	ct, err := hoppki.ValidateCert(cert)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err)
	}
	if ct != hoppki.Root {
		return nil, serrors.Join(ErrIssuance, nil,
			"reason", "certificate is not a root", "type", ct)
	}
	if !keyMatches(key.Public(), cert.PublicKey) {
		return nil, serrors.Join(ErrIssuance, nil,
			"reason", "key does not match root certificate")
	}
	cfg.Key = key
	if cfg.Validity.IsZero() {
		cfg.Validity = hoppki.Validity{NotBefore: cert.NotBefore, NotAfter: cert.NotAfter}
	}
	if cfg.Ledger == nil {
		cfg.Ledger = &ledgerdb.Memory{}
	}
	return fromParts(ctx, cfg, cert)
}

func fromParts(ctx context.Context, cfg Config, cert *x509.Certificate) (*Authority, error) {
	maxSerial, err := cfg.Ledger.MaxSerial(ctx)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "reading ledger")
	}
	if maxSerial < rootSerial {
		maxSerial = rootSerial
	}
	return &Authority{
		key:         cfg.Key,
		cert:        cert,
		validity:    cfg.Validity,
		ledger:      cfg.Ledger,
		certsIssued: cfg.CertsIssued,
		nextSerial:  maxSerial + 1,
	}, nil
}

// Cert returns the self-signed root certificate.
func (a *Authority) Cert() *x509.Certificate {
	return a.cert
}

// Issue signs a hop certificate for the subject over the given public key.
// The serial number is allocated atomically and is strictly increasing
// across all issuances of this authority, including concurrent ones. The
// issued certificate is recorded in the ledger before it is returned.
func (a *Authority) Issue(
	ctx context.Context,
	subject addr.AS,
	pub crypto.PublicKey,
) (*x509.Certificate, error) {

	if _, err := signed.AlgorithmForKey(pub); err != nil {
		return nil, serrors.Join(ErrIssuance, err, "subject", subject)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	serial := a.nextSerial
	tmpl := &x509.Certificate{
		SerialNumber: new(big.Int).SetUint64(serial),
		Subject:      hoppki.Subject(subject, ""),
		NotBefore:    a.validity.NotBefore,
		NotAfter:     a.validity.NotAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	raw, err := x509.CreateCertificate(rand.Reader, tmpl, a.cert, pub, a.key)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "subject", subject, "serial", serial)
	}
	cert, err := x509.ParseCertificate(raw)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "subject", subject, "serial", serial)
	}
	entry, err := ledgerdb.EntryFromCert(cert)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "subject", subject, "serial", serial)
	}
	if err := a.ledger.Append(ctx, entry); err != nil {
		return nil, serrors.Join(ErrIssuance, err, "subject", subject, "serial", serial)
	}
	a.nextSerial = serial + 1

	metrics.CounterInc(a.certsIssued)
	log.FromCtx(ctx).Debug("Issued certificate", "subject", subject, "serial", serial)
	return cert, nil
}

func keyMatches(a, b crypto.PublicKey) bool {
	type equaler interface {
		Equal(crypto.PublicKey) bool
	}
	pk, ok := a.(equaler)
	return ok && pk.Equal(b)
}
