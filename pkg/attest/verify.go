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
	"crypto/sha256"
	"crypto/x509"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/metrics"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// VerifySegment reports whether the signature validates against the
// segment's canonical encoding under the certificate's public key. Trust in
// the certificate itself is not established here; callers that need it must
// run the chain validator on the certificate first. The two checks are
// deliberately separate so each is independently auditable.
func VerifySegment(sig Signature, cert *x509.Certificate) bool {
	if cert == nil {
		return false
	}
	return signed.Verify(cert.PublicKey, sig.Segment.Pack(), sig.Bytes)
}

// SegmentResult is the verification outcome for a single segment.
type SegmentResult struct {
	Ordinal int
	Signer  addr.AS
	Valid   bool
	Reasons []string
}

// Reason returns the collected failure reasons as a single string.
func (r SegmentResult) Reason() string {
	return strings.Join(r.Reasons, "; ")
}

// Report is the outcome of a path verification sweep.
type Report struct {
	Results []SegmentResult
}

// Valid reports whether every segment verified successfully.
func (r Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid {
			return false
		}
	}
	return true
}

// Failed returns the results of all segments that failed verification.
func (r Report) Failed() []SegmentResult {
	var failed []SegmentResult
	for _, res := range r.Results {
		if !res.Valid {
			failed = append(failed, res)
		}
	}
	return failed
}

// Verifier replays signature verification for a sequence of path segments.
// The zero value is usable and verifies sequentially.
type Verifier struct {
	// Workers bounds the number of segments verified concurrently. Values
	// below 1 mean sequential verification.
	Workers int
	// SegmentsVerified counts verified segments, labeled by result.
	SegmentsVerified metrics.Counter
}

// VerifyPath verifies all segments against the certificates of their signing
// hops. Failures are collected per segment rather than aborting the sweep; a
// chain verification pass enumerates all failures. The only error returned
// is context cancellation.
//
// Per segment the sweep checks, in order: ordinal continuity, hop
// continuity, the signature under the signer's certificate, the next hop key
// binding against the next hop's certificate, and the predecessor signature
// digest.
func (v *Verifier) VerifyPath(
	ctx context.Context,
	sigs []Signature,
	certs map[addr.AS]*x509.Certificate,
) (Report, error) {

	results := make([]SegmentResult, len(sigs))

	g, ctx := errgroup.WithContext(ctx)
	workers := v.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for i := range sigs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = v.verifyOne(i, sigs, certs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if v.SegmentsVerified != nil {
		for _, res := range results {
			result := "valid"
			if !res.Valid {
				result = "invalid"
			}
			metrics.CounterInc(v.SegmentsVerified.With("result", result))
		}
	}
	return Report{Results: results}, nil
}

func (v *Verifier) verifyOne(
	i int,
	sigs []Signature,
	certs map[addr.AS]*x509.Certificate,
) SegmentResult {

	sig := sigs[i]
	seg := sig.Segment
	res := SegmentResult{Ordinal: i, Signer: seg.From}

	if int(seg.Ordinal) != i {
		res.Reasons = append(res.Reasons, "ordinal out of sequence")
	}
	if i > 0 && seg.From != sigs[i-1].Segment.To {
		res.Reasons = append(res.Reasons, "hop discontinuity")
	}

	cert, ok := certs[seg.From]
	switch {
	case !ok:
		res.Reasons = append(res.Reasons, "no certificate for signer")
	case !VerifySegment(sig, cert):
		res.Reasons = append(res.Reasons, "signature verification failed")
	}

	if nextCert, ok := certs[seg.To]; !ok {
		res.Reasons = append(res.Reasons, "no certificate for next hop")
	} else if digest, err := signed.KeyDigest(nextCert.PublicKey); err != nil {
		res.Reasons = append(res.Reasons, "next hop key not digestible")
	} else if digest != seg.NextKeyDigest {
		res.Reasons = append(res.Reasons, "next hop key mismatch")
	}

	if i == 0 {
		if seg.PrevSigDigest != [DigestSize]byte{} {
			res.Reasons = append(res.Reasons, "unexpected predecessor digest")
		}
	} else if sha256.Sum256(sigs[i-1].Bytes) != seg.PrevSigDigest {
		res.Reasons = append(res.Reasons, "predecessor signature mismatch")
	}

	res.Valid = len(res.Reasons) == 0
	return res
}
