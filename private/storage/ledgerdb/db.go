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

// Package ledgerdb defines the issuance ledger. The ledger records every
// certificate a certificate authority hands out, keyed by its serial number.
// It is append only; entries are never rewritten or removed.
package ledgerdb

import (
	"context"
	"crypto/x509"
	"io"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
)

var (
	// ErrReadFailed indicates that reading from the ledger failed.
	ErrReadFailed = serrors.New("ledger: read failed")
	// ErrWriteFailed indicates that writing to the ledger failed.
	ErrWriteFailed = serrors.New("ledger: write failed")
	// ErrDataInvalid indicates invalid data is stored in the ledger.
	ErrDataInvalid = serrors.New("ledger: data invalid")
	// ErrDuplicateSerial indicates an append for an already recorded serial.
	ErrDuplicateSerial = serrors.New("ledger: duplicate serial")
)

// Entry is one recorded issuance.
type Entry struct {
	// Serial is the certificate serial number.
	Serial uint64
	// Subject is the hop the certificate was issued to.
	Subject addr.AS
	// Validity is the certificate validity period.
	Validity hoppki.Validity
	// Raw is the certificate in DER encoding.
	Raw []byte
}

// Certificate parses the recorded raw certificate.
func (e Entry) Certificate() (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(e.Raw)
	if err != nil {
		return nil, serrors.Join(ErrDataInvalid, err, "serial", e.Serial)
	}
	return cert, nil
}

// EntryFromCert builds the ledger entry for an issued certificate.
func EntryFromCert(cert *x509.Certificate) (Entry, error) {
	subject, err := hoppki.ExtractAS(cert.Subject)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Serial:  cert.SerialNumber.Uint64(),
		Subject: subject,
		Validity: hoppki.Validity{
			NotBefore: cert.NotBefore,
			NotAfter:  cert.NotAfter,
		},
		Raw: cert.Raw,
	}, nil
}

// DB is the issuance ledger backend.
type DB interface {
	// Append records an issuance. Serials must be unique; appending an
	// already recorded serial fails with ErrDuplicateSerial.
	Append(ctx context.Context, entry Entry) error
	// Entry returns the recorded issuance for the given serial. The second
	// return value indicates whether the serial is recorded.
	Entry(ctx context.Context, serial uint64) (Entry, bool, error)
	// Entries returns all recorded issuances in ascending serial order.
	Entries(ctx context.Context) ([]Entry, error)
	// MaxSerial returns the highest recorded serial, or zero for an empty
	// ledger.
	MaxSerial(ctx context.Context) (uint64, error)

	io.Closer
}
