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

// Package addr contains types for hop identities. A hop on an attested path
// is identified by its autonomous system number.
package addr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// AS is a 4-byte autonomous system number identifying a hop.
type AS uint32

// MaxAS is the highest valid AS number.
const MaxAS AS = 1<<32 - 1

// ParseAS parses an AS number from its decimal or "AS"-prefixed notation,
// e.g. "64496" or "AS64496".
func ParseAS(s string) (AS, error) {
	raw := strings.TrimPrefix(s, "AS")
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, serrors.Wrap("parsing AS number", err, "input", s)
	}
	return AS(v), nil
}

// MustParseAS parses s and panics if s is not a valid AS number.
func MustParseAS(s string) AS {
	a, err := ParseAS(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a AS) String() string {
	return fmt.Sprintf("AS%d", uint32(a))
}

// IsZero reports whether the AS number has the zero value.
func (a AS) IsZero() bool {
	return a == 0
}

// MarshalText implements encoding.TextMarshaler.
func (a AS) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AS) UnmarshalText(text []byte) error {
	parsed, err := ParseAS(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
