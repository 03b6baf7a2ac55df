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

package hoppki

import (
	"fmt"
	"time"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// Validity defines a validity period.
type Validity struct {
	NotBefore time.Time
	NotAfter  time.Time
}

// Contains indicates whether the provided time is inside the validity
// period. The bounds are inclusive.
func (v Validity) Contains(t time.Time) bool {
	return !t.Before(v.NotBefore) && !t.After(v.NotAfter)
}

// IsZero reports whether the validity period is uninitialized.
func (v Validity) IsZero() bool {
	return v.NotBefore.IsZero() && v.NotAfter.IsZero()
}

// Validate checks that the period is well-formed.
func (v Validity) Validate() error {
	if !v.NotAfter.After(v.NotBefore) {
		return serrors.New("validity period ends before it starts",
			"not_before", v.NotBefore.Format(time.RFC3339),
			"not_after", v.NotAfter.Format(time.RFC3339))
	}
	return nil
}

func (v Validity) String() string {
	return fmt.Sprintf("[%s, %s]",
		v.NotBefore.Format(time.RFC3339), v.NotAfter.Format(time.RFC3339))
}
