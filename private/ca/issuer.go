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

package ca

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/x509"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// Issuer runs the subject side of an issuance: it generates a fresh key
// pair, builds a certificate signing request, and submits it to an
// authority. The private key never leaves the issuer.
type Issuer struct {
	// Algorithm selects the key algorithm for fresh key pairs. Defaults to
	// Ed25519.
	Algorithm signed.Algorithm
}

// RequestAndIssue generates a key pair for the subject and requests a hop
// certificate from the authority. Key generation and issuance failures are
// propagated unchanged.
func (i Issuer) RequestAndIssue(
	ctx context.Context,
	authority *Authority,
	subject addr.AS,
) (crypto.Signer, *x509.Certificate, error) {

	alg := i.Algorithm
	if alg == signed.UnknownAlgorithm {
		alg = signed.Ed25519
	}
	key, err := signed.GenerateKey(alg)
	if err != nil {
		return nil, nil, err
	}
	csr, err := buildCSR(subject, key)
	if err != nil {
		return nil, nil, err
	}
	cert, err := SubmitCSR(ctx, authority, csr)
	if err != nil {
		return nil, nil, err
	}
	return key, cert, nil
}

// SubmitCSR verifies the request's proof of possession and asks the
// authority to issue for the requested subject.
func SubmitCSR(
	ctx context.Context,
	authority *Authority,
	csr *x509.CertificateRequest,
) (*x509.Certificate, error) {

	if err := csr.CheckSignature(); err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "request signature invalid")
	}
	subject, err := hoppki.ExtractAS(csr.Subject)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "request subject invalid")
	}
	return authority.Issue(ctx, subject, csr.PublicKey)
}

func buildCSR(subject addr.AS, key crypto.Signer) (*x509.CertificateRequest, error) {
	tmpl := &x509.CertificateRequest{
		Subject: hoppki.Subject(subject, ""),
	}
	raw, err := x509.CreateCertificateRequest(rand.Reader, tmpl, key)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "building request")
	}
	csr, err := x509.ParseCertificateRequest(raw)
	if err != nil {
		return nil, serrors.Join(ErrIssuance, err, "reason", "parsing request")
	}
	return csr, nil
}
