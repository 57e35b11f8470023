// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{level: "debug", enabled: zapcore.DebugLevel},
		{level: "warn", enabled: zapcore.WarnLevel},
		{level: "ERROR", enabled: zapcore.ErrorLevel},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestNew_EmptyIsNop(t *testing.T) {
	l, err := New("")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.FatalLevel))
}

func TestContext(t *testing.T) {
	assert.NotNil(t, From(context.Background()))

	l := zap.NewExample()
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, From(ctx))
}
