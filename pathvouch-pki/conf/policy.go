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

// Package conf holds the TOML configuration of the certificate authority.
package conf

import (
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/private/util"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
)

// Time is a timestamp that accepts unix seconds and RFC 3339 in text based
// configuration.
type Time time.Time

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t *Time) UnmarshalText(b []byte) error {
	unix, err := strconv.ParseUint(string(b), 10, 32)
	if err == nil {
		if unix == 0 {
			*t = Time{}
			return nil
		}
		*t = Time(time.Unix(int64(unix), 0).UTC())
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, string(b))
	if err != nil {
		return serrors.Wrap("unable to parse time", err)
	}
	*t = Time(parsed)
	return nil
}

// Validity defines a validity period.
type Validity struct {
	NotBefore Time         `toml:"not_before"`
	NotAfter  Time         `toml:"not_after"`
	Validity  util.DurWrap `toml:"validity"`
}

// Validate checks that the validity is set.
func (v *Validity) Validate() error {
	if (v.Validity.Duration == 0) == (v.NotAfter.Time().IsZero()) {
		return serrors.New("exactly one of 'validity' or 'not_after' must be set")
	}
	return nil
}

// Eval returns the validity period. The not before parameter is only used if
// the struct's not before field value is zero.
func (v Validity) Eval(notBefore time.Time) hoppki.Validity {
	if nb := time.Time(v.NotBefore); !nb.IsZero() {
		notBefore = nb
	}
	return hoppki.Validity{
		NotBefore: notBefore,
		NotAfter: func() time.Time {
			if !v.NotAfter.Time().IsZero() {
				return v.NotAfter.Time()
			}
			return notBefore.Add(v.Validity.Duration)
		}(),
	}
}

// Policy is the issuance policy of a certificate authority.
type Policy struct {
	// Subject is the authority's own identity.
	Subject addr.AS `toml:"subject"`
	// CommonName overrides the default common name of the root certificate.
	CommonName string `toml:"common_name,omitempty"`
	// Algorithm selects the key algorithm. Defaults to ed25519.
	Algorithm string `toml:"algorithm,omitempty"`
	// Validity is the validity period of issued certificates.
	Validity Validity `toml:"validity"`
}

// LoadPolicy parses the policy file at path.
func LoadPolicy(path string) (Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, serrors.Wrap("reading policy", err, "file", path)
	}
	var p Policy
	if err := toml.Unmarshal(raw, &p); err != nil {
		return Policy{}, serrors.Wrap("parsing policy", err, "file", path)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, serrors.Wrap("validating policy", err, "file", path)
	}
	return p, nil
}

// Validate checks the policy for consistency.
func (p *Policy) Validate() error {
	if p.Subject.IsZero() {
		return serrors.New("subject must be set")
	}
	if p.Algorithm != "" {
		if _, err := signed.ParseAlgorithm(p.Algorithm); err != nil {
			return err
		}
	}
	return p.Validity.Validate()
}

// KeyAlgorithm returns the configured key algorithm.
func (p *Policy) KeyAlgorithm() (signed.Algorithm, error) {
	if p.Algorithm == "" {
		return signed.Ed25519, nil
	}
	return signed.ParseAlgorithm(p.Algorithm)
}
