// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/avroschema"
	"github.com/dacolabs/avrokit/internal/typemodel"
)

// DefaultRootName names an anonymous root type.
const DefaultRootName = "Root"

type options struct {
	rootName  string
	namespace string
	logger    *zap.Logger
	nested    bool
}

// Option configures Compile.
type Option func(*options)

// WithRootName sets the name given to an anonymous root record or enum.
func WithRootName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.rootName = name
		}
	}
}

// WithNamespace sets the namespace of the root record.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithLogger enables debug logging of the translation.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNestedExpansion also expands the references found inside substituted
// definitions, each at its first occurrence in document order. Without it a
// definition that references another keeps that reference by name, and the
// result is only self-contained when every definition is reached from the root.
func WithNestedExpansion() Option {
	return func(o *options) { o.nested = true }
}

// Compile translates a complete definition into a named Avro schema.
//
// References are checked before anything is translated, so an undefined name
// fails with an unknown_reference error and no schema. Each call uses a fresh
// registry and seen set; Compile is safe for concurrent use.
func Compile(def *typemodel.Definition, opts ...Option) (avroschema.Schema, error) {
	o := options{rootName: DefaultRootName, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if def == nil {
		return nil, errors.New("nil definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	reg, err := BuildRegistry(def.Definitions)
	if err != nil {
		return nil, fmt.Errorf("failed to build definitions registry: %w", err)
	}
	o.logger.Debug("built definitions registry",
		zap.Int("definitions", len(reg)),
		zap.Bool("nested_expansion", o.nested),
	)

	seen := make(Seen)
	out, err := translateType(def.Root, reg, seen, o.nested)
	if err != nil {
		return nil, fmt.Errorf("failed to translate root: %w", err)
	}

	assignNames(out, o.rootName, o.namespace)

	if ce := o.logger.Check(zap.DebugLevel, "translated root"); ce != nil {
		ce.Write(
			zap.String("root", avroschema.Name(out)),
			zap.Int("expanded", len(seen)),
			zap.Strings("references", namedReferences(out)),
		)
	}
	return out, nil
}

// namedReferences lists the name-only references left in s, in document order.
func namedReferences(s avroschema.Schema) []string {
	var names []string
	avroschema.Walk(s, func(s avroschema.Schema) bool {
		if r, ok := s.(*avroschema.Reference); ok {
			names = append(names, r.Name)
		}
		return true
	})
	return names
}
