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
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// fileVersion is the version of the attestation file format.
const fileVersion = 1

type attestationFile struct {
	Version  int           `json:"version"`
	Segments []segmentJSON `json:"segments"`
}

type segmentJSON struct {
	Ordinal       uint16  `json:"ordinal"`
	From          addr.AS `json:"from"`
	To            addr.AS `json:"to"`
	Payload       []byte  `json:"payload,omitempty"`
	NextKeyDigest string  `json:"next_key_digest"`
	PrevSigDigest string  `json:"prev_sig_digest"`
	SignerSerial  uint64  `json:"signer_serial,omitempty"`
	Signature     []byte  `json:"signature"`
}

// WriteAttestation writes the signature sequence in the JSON attestation
// file format. The format is a local round-tripping convenience, not a wire
// format; the signed bytes are always reconstructed via Segment.Pack.
func WriteAttestation(w io.Writer, sigs []Signature) error {
	file := attestationFile{
		Version:  fileVersion,
		Segments: make([]segmentJSON, 0, len(sigs)),
	}
	for _, sig := range sigs {
		file.Segments = append(file.Segments, segmentJSON{
			Ordinal:       sig.Segment.Ordinal,
			From:          sig.Segment.From,
			To:            sig.Segment.To,
			Payload:       sig.Segment.Payload,
			NextKeyDigest: hex.EncodeToString(sig.Segment.NextKeyDigest[:]),
			PrevSigDigest: hex.EncodeToString(sig.Segment.PrevSigDigest[:]),
			SignerSerial:  sig.SignerSerial,
			Signature:     sig.Bytes,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return serrors.Wrap("encoding attestation", err)
	}
	return nil
}

// ReadAttestation parses a JSON attestation file written by
// WriteAttestation.
func ReadAttestation(r io.Reader) ([]Signature, error) {
	var file attestationFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, serrors.Join(signed.ErrDecode, err)
	}
	if file.Version != fileVersion {
		return nil, serrors.Join(signed.ErrDecode, nil,
			"reason", "unsupported file version", "version", file.Version)
	}
	sigs := make([]Signature, 0, len(file.Segments))
	for i, seg := range file.Segments {
		next, err := decodeDigest(seg.NextKeyDigest)
		if err != nil {
			return nil, serrors.Wrap("decoding next key digest", err, "segment", i)
		}
		prev, err := decodeDigest(seg.PrevSigDigest)
		if err != nil {
			return nil, serrors.Wrap("decoding predecessor digest", err, "segment", i)
		}
		sigs = append(sigs, Signature{
			Segment: Segment{
				Ordinal:       seg.Ordinal,
				From:          seg.From,
				To:            seg.To,
				Payload:       seg.Payload,
				NextKeyDigest: next,
				PrevSigDigest: prev,
			},
			SignerSerial: seg.SignerSerial,
			Bytes:        seg.Signature,
		})
	}
	return sigs, nil
}

func decodeDigest(s string) ([DigestSize]byte, error) {
	var digest [DigestSize]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return digest, serrors.Join(signed.ErrDecode, err)
	}
	if len(raw) != DigestSize {
		return digest, serrors.Join(signed.ErrDecode, nil,
			"reason", "unexpected digest length", "len", len(raw))
	}
	copy(digest[:], raw)
	return digest, nil
}
