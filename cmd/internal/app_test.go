// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package internal

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslators(t *testing.T) {
	r := Translators("com.example", nil)
	assert.Equal(t, []string{"avsc", "canonical"}, r.Available())

	tr, err := r.Get("avsc")
	require.NoError(t, err)
	assert.Equal(t, ".avsc", tr.FileExtension())
}

func TestRun_Version(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "avrokit version")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, Run(context.Background(), []string{"nope"}))
}
