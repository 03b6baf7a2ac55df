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

// Package hoppki contains the hop PKI certificate model: subject encoding,
// validity periods and structural certificate checks. The hop identity is
// carried in the certificate subject as a custom attribute, so that a
// certificate can be mapped back to its AS without parsing the common name.
package hoppki

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// OIDNameHopAS is the x509 subject attribute that carries the hop AS number.
var OIDNameHopAS = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 61779, 1, 1}

// ErrNoHopAS indicates that the subject carries no hop AS attribute.
var ErrNoHopAS = serrors.New("hop AS attribute not found")

// Subject builds the certificate subject for the given hop.
func Subject(as addr.AS, commonName string) pkix.Name {
	if commonName == "" {
		commonName = fmt.Sprintf("%s Hop Certificate", as)
	}
	return pkix.Name{
		CommonName: commonName,
		ExtraNames: []pkix.AttributeTypeAndValue{
			{Type: OIDNameHopAS, Value: as.String()},
		},
	}
}

// ExtractAS extracts the hop AS number from the subject. Both freshly
// constructed names (attribute in ExtraNames) and names recovered from
// parsed certificates (attribute in Names) are supported.
func ExtractAS(subject pkix.Name) (addr.AS, error) {
	for _, attrs := range [][]pkix.AttributeTypeAndValue{subject.Names, subject.ExtraNames} {
		for _, attr := range attrs {
			if !attr.Type.Equal(OIDNameHopAS) {
				continue
			}
			raw, ok := attr.Value.(string)
			if !ok {
				return 0, serrors.New("hop AS attribute is not a string",
					"actual", fmt.Sprintf("%T", attr.Value))
			}
			return addr.ParseAS(raw)
		}
	}
	return 0, ErrNoHopAS
}
