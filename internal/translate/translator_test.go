// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"testing"

	"github.com/dacolabs/avrokit/internal/typemodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct{ name string }

func (s *stubTranslator) Name() string { return s.name }

func (s *stubTranslator) Translate(name string, _ *typemodel.Definition) ([]byte, error) {
	return []byte(name), nil
}

func (s *stubTranslator) FileExtension() string { return ".txt" }

func TestRegister(t *testing.T) {
	r := make(Register)
	r.Add(&stubTranslator{name: "b"})
	r.Add(&stubTranslator{name: "a"})

	assert.Equal(t, []string{"a", "b"}, r.Available())

	tr, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", tr.Name())

	_, err = r.Get("missing")
	assert.EqualError(t, err, "unknown translator: missing")
}
