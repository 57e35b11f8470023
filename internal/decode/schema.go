// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package decode reads Avro binary data into Go values, driven by a compiled
// schema.
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hamba/avro/v2"

	"github.com/dacolabs/avrokit/internal/errs"
)

const readerBufferSize = 1024

// Schema is a compiled Avro schema. It is immutable and safe for concurrent
// use; every decode opens its own cursor.
type Schema struct {
	avro avro.Schema
}

// Compile parses an Avro schema document. Each compiled schema has its own
// name cache, so documents declaring the same names do not interfere.
func Compile(text []byte) (*Schema, error) {
	s, err := avro.ParseWithCache(string(text), "", &avro.SchemaCache{})
	if err != nil {
		return nil, errs.New(errs.PhaseCompile, errs.KindInvalidData).
			Cause(err).
			Detail("invalid Avro schema").
			Build()
	}
	return &Schema{avro: s}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(text string) *Schema {
	s, err := Compile([]byte(text))
	if err != nil {
		panic(err)
	}
	return s
}

// Avro returns the underlying parsed schema.
func (s *Schema) Avro() avro.Schema {
	return s.avro
}

// CanonicalForm returns the Parsing Canonical Form of the schema.
func (s *Schema) CanonicalForm() string {
	return s.avro.String()
}

// Fingerprint returns the SHA-256 fingerprint of the canonical form.
func (s *Schema) Fingerprint() [32]byte {
	return s.avro.Fingerprint()
}

// FingerprintCRC64 returns the CRC-64-AVRO (Rabin) fingerprint of the
// canonical form.
func (s *Schema) FingerprintCRC64() (uint64, error) {
	b, err := s.avro.FingerprintUsing(avro.CRC64Avro)
	if err != nil {
		return 0, fmt.Errorf("failed to compute fingerprint: %w", err)
	}
	if len(b) != 8 {
		return 0, fmt.Errorf("unexpected fingerprint length %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// Open returns a cursor over r positioned at the root value.
func (s *Schema) Open(r io.Reader) *Cursor {
	return newCursor(avro.NewReader(r, readerBufferSize), s.avro, nil)
}

// OpenBytes returns a cursor over data positioned at the root value.
func (s *Schema) OpenBytes(data []byte) *Cursor {
	return s.Open(bytes.NewReader(data))
}
