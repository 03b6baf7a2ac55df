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
	"crypto"
	"crypto/sha256"
	"crypto/x509"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// Hop is the signing material of one hop on the path.
type Hop struct {
	// ID is the hop identity.
	ID addr.AS
	// Key is the hop's private key. It never leaves the hop.
	Key crypto.Signer
	// Cert is the hop's certificate. Optional; used to reference the signer
	// certificate by serial number in the produced signatures.
	Cert *x509.Certificate
}

// SignSegment computes a signature over the segment's canonical byte
// encoding using the signing hop's private key.
func SignSegment(key crypto.Signer, seg Segment) (Signature, error) {
	raw, err := signed.Sign(key, seg.Pack())
	if err != nil {
		return Signature{}, serrors.Wrap("signing segment", err,
			"ordinal", seg.Ordinal, "from", seg.From)
	}
	return Signature{Segment: seg, Bytes: raw}, nil
}

// BuildPath signs one segment per adjacent hop pair, in path order. The
// payload function produces the application bytes for each transition; a nil
// payload function produces empty payloads.
//
// Segment s carries the digest of hop s+1's public key and the digest of
// signature s-1, so the resulting sequence is chained hop to hop.
func BuildPath(hops []Hop, payload func(from, to addr.AS) []byte) ([]Signature, error) {
	if len(hops) < 2 {
		return nil, serrors.New("path needs at least two hops", "hops", len(hops))
	}
	if payload == nil {
		payload = func(addr.AS, addr.AS) []byte { return nil }
	}

	sigs := make([]Signature, 0, len(hops)-1)
	var prevDigest [DigestSize]byte
	for i := 0; i < len(hops)-1; i++ {
		cur, next := hops[i], hops[i+1]
		nextKeyDigest, err := signed.KeyDigest(next.Key.Public())
		if err != nil {
			return nil, serrors.Wrap("digesting next hop key", err, "hop", next.ID)
		}
		seg := Segment{
			Ordinal:       uint16(i),
			From:          cur.ID,
			To:            next.ID,
			Payload:       payload(cur.ID, next.ID),
			NextKeyDigest: nextKeyDigest,
			PrevSigDigest: prevDigest,
		}
		sig, err := SignSegment(cur.Key, seg)
		if err != nil {
			return nil, err
		}
		if cur.Cert != nil {
			sig.SignerSerial = cur.Cert.SerialNumber.Uint64()
		}
		sigs = append(sigs, sig)
		prevDigest = sha256.Sum256(sig.Bytes)
	}
	return sigs, nil
}
