// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import (
	"fmt"

	"github.com/hamba/avro/v2"
	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/avroschema"
	"github.com/dacolabs/avrokit/internal/translate"
	"github.com/dacolabs/avrokit/internal/typemodel"
)

var (
	_ translate.Translator = (*Translator)(nil)
	_ translate.Translator = (*CanonicalTranslator)(nil)
)

// Translator translates type model definitions to Apache Avro schema
// definitions (.avsc).
//
// Standalone expands references nested inside definitions so the file
// declares every named type it uses.
type Translator struct {
	Namespace  string
	Logger     *zap.Logger
	Standalone bool
}

// Name returns the translator identifier.
func (t *Translator) Name() string {
	return "avsc"
}

// FileExtension returns the file extension for Avro schema files.
func (t *Translator) FileExtension() string {
	return ".avsc"
}

// Translate converts a definition to an indented Avro schema JSON document.
func (t *Translator) Translate(name string, def *typemodel.Definition) ([]byte, error) {
	opts := []Option{WithRootName(name), WithNamespace(t.Namespace), WithLogger(t.Logger)}
	if t.Standalone {
		opts = append(opts, WithNestedExpansion())
	}
	s, err := Compile(def, opts...)
	if err != nil {
		return nil, err
	}
	return avroschema.MarshalIndent(s)
}

// CanonicalTranslator emits the Parsing Canonical Form of the translated
// schema. The result is validated by a full Avro schema parser, so schemas
// Avro rejects fail here rather than downstream. Nested references are always
// expanded since the parser needs every named type declared.
type CanonicalTranslator struct {
	Namespace string
	Logger    *zap.Logger
}

// Name returns the translator identifier.
func (t *CanonicalTranslator) Name() string {
	return "canonical"
}

// FileExtension returns the file extension for Avro schema files.
func (t *CanonicalTranslator) FileExtension() string {
	return ".avsc"
}

// Translate converts a definition to canonical Avro schema JSON.
func (t *CanonicalTranslator) Translate(name string, def *typemodel.Definition) ([]byte, error) {
	s, err := Compile(def,
		WithRootName(name),
		WithNamespace(t.Namespace),
		WithLogger(t.Logger),
		WithNestedExpansion(),
	)
	if err != nil {
		return nil, err
	}
	text, err := avroschema.Marshal(s)
	if err != nil {
		return nil, err
	}
	parsed, err := avro.ParseWithCache(string(text), "", &avro.SchemaCache{})
	if err != nil {
		return nil, fmt.Errorf("avro rejected translated schema: %w", err)
	}
	return append([]byte(parsed.String()), '\n'), nil
}
