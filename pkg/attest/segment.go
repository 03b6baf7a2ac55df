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

// Package attest implements chained path attestations. Each hop on a path
// signs one segment describing the transition to the next hop. Consecutive
// segments are bound to each other twice over: the signed encoding carries
// the digest of the next hop's public key, and the digest of the previous
// segment's signature.
package attest

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// DigestSize is the size of the digests embedded in a segment.
const DigestSize = sha256.Size

// segMagic prefixes every packed segment. The last byte is the encoding
// version.
var segMagic = [4]byte{'P', 'V', 'S', 1}

// segHeaderLen is the length of the fixed-size part of a packed segment.
const segHeaderLen = len(segMagic) + 2 + 4 + 4 + 2*DigestSize + 4

// maxPayloadLen bounds the payload so a malformed length prefix cannot force
// a huge allocation on unpack.
const maxPayloadLen = 1 << 20

// Segment is the unit of path information signed by one hop. It describes
// the transition from hop From to hop To and is immutable once created.
type Segment struct {
	// Ordinal is the position of the segment on the path, starting at 0.
	Ordinal uint16
	// From is the hop that signs this segment.
	From addr.AS
	// To is the next hop the segment points at.
	To addr.AS
	// Payload carries the application bytes covered by the signature.
	Payload []byte
	// NextKeyDigest is the SHA-256 digest of the next hop's public key as
	// known to the builder. Verifiers recompute it from the next hop's
	// certificate.
	NextKeyDigest [DigestSize]byte
	// PrevSigDigest is the SHA-256 digest of the previous segment's
	// signature bytes. It is all zero for the first segment.
	PrevSigDigest [DigestSize]byte
}

// Pack returns the canonical byte encoding of the segment. The encoding is
// stable: fixed field order, big endian fixed-width integers and a length
// prefixed payload. Verification operates on exactly these bytes.
func (s Segment) Pack() []byte {
	buf := make([]byte, 0, segHeaderLen+len(s.Payload))
	buf = append(buf, segMagic[:]...)
	buf = binary.BigEndian.AppendUint16(buf, s.Ordinal)
	buf = binary.BigEndian.AppendUint32(buf, uint32(s.From))
	buf = binary.BigEndian.AppendUint32(buf, uint32(s.To))
	buf = append(buf, s.NextKeyDigest[:]...)
	buf = append(buf, s.PrevSigDigest[:]...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s.Payload)))
	buf = append(buf, s.Payload...)
	return buf
}

// UnpackSegment parses a canonically encoded segment. Trailing bytes are
// rejected.
func UnpackSegment(raw []byte) (Segment, error) {
	if len(raw) < segHeaderLen {
		return Segment{}, serrors.Join(signed.ErrDecode, nil,
			"reason", "segment too short", "len", len(raw))
	}
	if [4]byte(raw[:4]) != segMagic {
		return Segment{}, serrors.Join(signed.ErrDecode, nil,
			"reason", "bad segment magic")
	}
	var s Segment
	s.Ordinal = binary.BigEndian.Uint16(raw[4:6])
	s.From = addr.AS(binary.BigEndian.Uint32(raw[6:10]))
	s.To = addr.AS(binary.BigEndian.Uint32(raw[10:14]))
	copy(s.NextKeyDigest[:], raw[14:14+DigestSize])
	copy(s.PrevSigDigest[:], raw[14+DigestSize:14+2*DigestSize])
	payloadLen := binary.BigEndian.Uint32(raw[segHeaderLen-4 : segHeaderLen])
	if payloadLen > maxPayloadLen {
		return Segment{}, serrors.Join(signed.ErrDecode, nil,
			"reason", "payload too large", "len", payloadLen)
	}
	if uint32(len(raw)-segHeaderLen) != payloadLen {
		return Segment{}, serrors.Join(signed.ErrDecode, nil,
			"reason", "payload length mismatch",
			"expected", payloadLen, "actual", len(raw)-segHeaderLen)
	}
	if payloadLen > 0 {
		s.Payload = append([]byte(nil), raw[segHeaderLen:]...)
	}
	return s, nil
}

// Signature binds a segment to the signature one hop produced over it. It is
// created once per segment and never mutated.
type Signature struct {
	// Segment is the signed segment.
	Segment Segment
	// SignerSerial references the certificate of the signing hop by serial
	// number. Zero if the signer's certificate was unknown at signing time.
	SignerSerial uint64
	// Bytes is the detached signature over Segment.Pack().
	Bytes []byte
}
