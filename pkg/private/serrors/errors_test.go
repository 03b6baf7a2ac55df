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

package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

func TestNewFormatsContext(t *testing.T) {
	err := serrors.New("msg", "b", 2, "a", 1)
	assert.Equal(t, "msg {a=1; b=2}", err.Error())
}

func TestWrapIsCause(t *testing.T) {
	cause := errors.New("cause")
	err := serrors.Wrap("wrapped", cause, "key", "value")
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "wrapped {key=value}: cause", err.Error())
}

func TestJoin(t *testing.T) {
	sentinel := serrors.New("sentinel")
	cause := errors.New("cause")

	testCases := map[string]struct {
		err       error
		isBase    bool
		isCause   bool
		formatted string
	}{
		"base and cause": {
			err:       serrors.Join(sentinel, cause, "key", "value"),
			isBase:    true,
			isCause:   true,
			formatted: "sentinel {key=value}: cause",
		},
		"base only": {
			err:       serrors.Join(sentinel, nil),
			isBase:    true,
			formatted: "sentinel",
		},
		"cause only": {
			err:       serrors.Join(nil, cause),
			isCause:   true,
			formatted: "cause",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.isBase, errors.Is(tc.err, sentinel))
			assert.Equal(t, tc.isCause, errors.Is(tc.err, cause))
			assert.Equal(t, tc.formatted, tc.err.Error())
		})
	}
}

func TestJoinNilNil(t *testing.T) {
	assert.NoError(t, serrors.Join(nil, nil, "key", "value"))
}

func TestList(t *testing.T) {
	var l serrors.List
	assert.NoError(t, l.ToError())

	l = append(l, serrors.New("first"), fmt.Errorf("second"))
	err := l.ToError()
	assert.Error(t, err)
	assert.Equal(t, "[ first; second ]", err.Error())
}
