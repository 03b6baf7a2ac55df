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

package addr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathvouch/pathvouch/pkg/addr"
)

func TestParseAS(t *testing.T) {
	testCases := map[string]struct {
		input     string
		want      addr.AS
		assertErr assert.ErrorAssertionFunc
	}{
		"decimal":        {input: "64496", want: 64496, assertErr: assert.NoError},
		"prefixed":       {input: "AS64496", want: 64496, assertErr: assert.NoError},
		"max":            {input: "4294967295", want: addr.MaxAS, assertErr: assert.NoError},
		"zero":           {input: "0", want: 0, assertErr: assert.NoError},
		"overflow":       {input: "4294967296", assertErr: assert.Error},
		"negative":       {input: "-1", assertErr: assert.Error},
		"empty":          {input: "", assertErr: assert.Error},
		"garbage":        {input: "ASfoo", assertErr: assert.Error},
		"double prefix":  {input: "ASAS64496", assertErr: assert.Error},
		"inner spacing":  {input: "AS 64496", assertErr: assert.Error},
		"hex not a thing": {input: "0x10", assertErr: assert.Error},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := addr.ParseAS(tc.input)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestASString(t *testing.T) {
	assert.Equal(t, "AS64496", addr.AS(64496).String())
	assert.Equal(t, "AS0", addr.AS(0).String())
}

func TestASTextRoundTrip(t *testing.T) {
	raw, err := addr.AS(64511).MarshalText()
	require.NoError(t, err)

	var parsed addr.AS
	require.NoError(t, parsed.UnmarshalText(raw))
	assert.Equal(t, addr.AS(64511), parsed)
}
