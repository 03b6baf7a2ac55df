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

package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pathvouch/pathvouch/pkg/log"
)

func TestSetup(t *testing.T) {
	defer log.Discard()

	// Without Setup, the root logger discards everything. A binary that
	// skips Setup runs silent, so the entry point must call it.
	assert.False(t, log.FromCtx(context.Background()).Enabled(zapcore.InfoLevel))

	require.NoError(t, log.Setup(log.Config{Level: "debug", Format: "human"}))
	assert.True(t, log.FromCtx(context.Background()).Enabled(zapcore.InfoLevel))
	assert.True(t, log.Root().Enabled(zapcore.DebugLevel))

	require.NoError(t, log.Setup(log.Config{Level: "error"}))
	assert.False(t, log.Root().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Root().Enabled(zapcore.ErrorLevel))
}

func TestSetupInvalid(t *testing.T) {
	assert.Error(t, log.Setup(log.Config{Level: "chatty"}))
	assert.Error(t, log.Setup(log.Config{Format: "xml"}))
}

func TestCtxWithRoundTrip(t *testing.T) {
	defer log.Discard()
	require.NoError(t, log.Setup(log.Config{Level: "debug"}))

	logger := log.New("component", "test")
	ctx := log.CtxWith(context.Background(), logger)
	assert.Same(t, logger, log.FromCtx(ctx))
}
