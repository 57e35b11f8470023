// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package avro translates type models into Apache Avro schemas.
package avro

import (
	"github.com/dacolabs/avrokit/internal/avroschema"
	"github.com/dacolabs/avrokit/internal/typemodel"
)

// Translate maps t onto the Avro type algebra.
//
// References are resolved against defs using seen. A nil seen emits every
// reference by name, which is how Registry entries stay flat. Otherwise the
// first reference to a defined name is replaced by its registry entry as is,
// and every later reference to it within the same seen set stays a name-only
// pointer. References inside the substituted entry are left by name.
func Translate(t typemodel.Type, defs Registry, seen Seen) (avroschema.Schema, error) {
	return translateType(t, defs, seen, false)
}

// translateType is Translate with optional expansion of the references found
// inside substituted registry entries.
func translateType(t typemodel.Type, defs Registry, seen Seen, nested bool) (avroschema.Schema, error) {
	c := &converter{defs: defs, seen: seen, nested: nested}
	if err := t.Accept(c); err != nil {
		return nil, err
	}
	return c.out, nil
}

// converter holds the result of one Accept call.
type converter struct {
	defs   Registry
	seen   Seen
	nested bool
	out    avroschema.Schema
}

var _ typemodel.Visitor = (*converter)(nil)

func (c *converter) sub(t typemodel.Type) (avroschema.Schema, error) {
	return translateType(t, c.defs, c.seen, c.nested)
}

func (c *converter) VisitBoolean(typemodel.Boolean) error {
	c.out = avroschema.Boolean{}
	return nil
}

// VisitInteger keeps 32-bit signed integers as int. Everything else is
// widened to long, including uint32 which overflows int.
func (c *converter) VisitInteger(t typemodel.Integer) error {
	if t.Kind == typemodel.Int32 {
		c.out = avroschema.Int{}
	} else {
		c.out = avroschema.Long{}
	}
	return nil
}

func (c *converter) VisitFloat(t typemodel.Float) error {
	if t.Kind == typemodel.Float32 {
		c.out = avroschema.Float{}
	} else {
		c.out = avroschema.Double{}
	}
	return nil
}

func (c *converter) VisitString(typemodel.String) error {
	c.out = avroschema.String{}
	return nil
}

func (c *converter) VisitLiteral(t typemodel.Literal) error {
	c.out = &avroschema.Enum{Symbols: append([]string(nil), t.Values...)}
	return nil
}

func (c *converter) VisitAnyOf(t typemodel.AnyOf) error {
	u := &avroschema.Union{Types: make([]avroschema.Schema, 0, len(t.Types))}
	for _, alt := range t.Types {
		s, err := c.sub(alt)
		if err != nil {
			return err
		}
		u.Types = append(u.Types, s)
	}
	c.out = u
	return nil
}

// VisitOptional emits [inner, null]. Null is second: decoders branch on member
// order, so this must not be flipped to the more common null-first form.
func (c *converter) VisitOptional(t typemodel.Optional) error {
	inner, err := c.sub(t.Type)
	if err != nil {
		return err
	}
	c.out = &avroschema.Union{Types: []avroschema.Schema{inner, avroschema.Null{}}}
	return nil
}

func (c *converter) VisitFixedArray(t typemodel.FixedArray) error {
	items, err := c.sub(t.Item)
	if err != nil {
		return err
	}
	c.out = &avroschema.Array{Items: items}
	return nil
}

func (c *converter) VisitArray(t typemodel.Array) error {
	items, err := c.sub(t.Item)
	if err != nil {
		return err
	}
	c.out = &avroschema.Array{Items: items}
	return nil
}

func (c *converter) VisitStringMap(t typemodel.StringMap) error {
	values, err := c.sub(t.Value)
	if err != nil {
		return err
	}
	c.out = &avroschema.Map{Values: values}
	return nil
}

func (c *converter) VisitObject(t typemodel.Object) error {
	rec := &avroschema.Record{Fields: make([]avroschema.Field, 0, len(t.Fields))}
	for _, f := range t.Fields {
		s, err := c.sub(f.Type)
		if err != nil {
			return err
		}
		rec.Fields = append(rec.Fields, avroschema.Field{Name: f.Name, Type: s})
	}
	c.out = rec
	return nil
}

// VisitTuple emits an empty record. Avro has no positional product type.
// TODO: map tuples to records with generated field names (_0, _1, ...) once
// decoders for that layout exist.
func (c *converter) VisitTuple(typemodel.Tuple) error {
	c.out = &avroschema.Record{Fields: []avroschema.Field{}}
	return nil
}

// VisitValidated drops the constraints; Avro has no validation concept.
func (c *converter) VisitValidated(t typemodel.Validated) error {
	s, err := c.sub(t.Type)
	if err != nil {
		return err
	}
	c.out = s
	return nil
}

// VisitDescription drops the text.
func (c *converter) VisitDescription(t typemodel.Description) error {
	s, err := c.sub(t.Type)
	if err != nil {
		return err
	}
	c.out = s
	return nil
}

func (c *converter) VisitReference(t typemodel.Reference) error {
	c.out = resolveReference(t.Name, c.defs, c.seen, c.nested)
	return nil
}
