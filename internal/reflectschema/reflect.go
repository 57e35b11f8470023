// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package reflectschema derives type models from Go types.
//
// Types are reflected into JSON Schema first and then imported, so struct tags
// follow encoding/json conventions: a field is named by its json tag, or by
// its Go name when untagged. Pointer and omitempty fields are optional.
//
// A struct whose fields are all pointers can stand for a union of its field
// types by implementing OneOf:
//
//	type Shape struct {
//		Circle *Circle
//		Square *Square
//	}
//
//	func (Shape) IsOneOf() {}
package reflectschema

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/dacolabs/avrokit/internal/jschema"
	"github.com/dacolabs/avrokit/internal/typemodel"
)

// OneOf marks a struct of pointer fields as a tagged union. Exactly one field
// is set on a decoded value; field i corresponds to union member i.
type OneOf interface {
	IsOneOf()
}

var (
	oneOfType        = reflect.TypeFor[OneOf]()
	customSchemaType = reflect.TypeFor[interface{ JSONSchema() *jsonschema.Schema }]()
	extenderType     = reflect.TypeFor[interface{ JSONSchemaExtend(*jsonschema.Schema) }]()
)

// For returns the type model of T.
func For[T any]() (*typemodel.Definition, error) {
	return ForType(reflect.TypeFor[T]())
}

// ForType returns the type model of t.
func ForType(t reflect.Type) (*typemodel.Definition, error) {
	s, err := Schema(t)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize reflected schema: %w", err)
	}
	doc, err := jschema.Parse(data, jschema.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reflected schema: %w", err)
	}
	return jschema.Convert(doc)
}

// Schema reflects t into a JSON Schema document with one $defs entry per
// struct type.
func Schema(t reflect.Type) (*jsonschema.Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r := &reflector{unions: make(jsonschema.Definitions)}
	r.base = jsonschema.Reflector{
		Mapper:    r.mapType,
		Anonymous: true,
	}

	s := r.base.ReflectFromType(t)
	if s.Definitions == nil {
		s.Definitions = make(jsonschema.Definitions)
	}
	for name, def := range r.unions {
		if _, ok := s.Definitions[name]; !ok {
			s.Definitions[name] = def
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	relaxPointers(s.Definitions, t, make(map[reflect.Type]struct{}))
	return s, nil
}

type reflector struct {
	base   jsonschema.Reflector
	unions jsonschema.Definitions
	err    error
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

// mapType keeps the width of numeric types, which the default reflection
// collapses into "integer" and "number", and expands OneOf unions.
func (r *reflector) mapType(t reflect.Type) *jsonschema.Schema {
	if implements(t, oneOfType) && t.Kind() == reflect.Struct {
		return r.union(t)
	}
	if implements(t, customSchemaType) || implements(t, extenderType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return &jsonschema.Schema{Type: "integer", Format: "int32"}
	case reflect.Int, reflect.Int64:
		return &jsonschema.Schema{Type: "integer", Format: "int64"}
	case reflect.Uint32:
		return &jsonschema.Schema{Type: "integer", Format: "uint32"}
	case reflect.Uint, reflect.Uint64:
		return &jsonschema.Schema{Type: "integer", Format: "uint64"}
	case reflect.Float32:
		return &jsonschema.Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &jsonschema.Schema{Type: "number", Format: "double"}
	}
	return nil
}

// union registers t as an anyOf definition and returns a reference to it.
// The reference is registered before the members are reflected, so a member
// that contains t again terminates.
func (r *reflector) union(t reflect.Type) *jsonschema.Schema {
	name := t.Name()
	ref := &jsonschema.Schema{Ref: "#/$defs/" + name}
	if _, ok := r.unions[name]; ok {
		return ref
	}
	def := &jsonschema.Schema{}
	r.unions[name] = def

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			r.fail(fmt.Errorf("union %s: field %s must be a pointer", t, f.Name))
			return ref
		}

		sub := r.base
		member := sub.ReflectFromType(f.Type.Elem())
		for defName, d := range member.Definitions {
			if _, ok := r.unions[defName]; !ok {
				r.unions[defName] = d
			}
		}
		member.Definitions = nil
		member.Version = ""
		member.ID = ""
		def.AnyOf = append(def.AnyOf, member)
	}
	if len(def.AnyOf) == 0 {
		r.fail(fmt.Errorf("union %s has no exported fields", t))
	}
	return ref
}

func (r *reflector) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// relaxPointers drops pointer fields from the required lists of struct
// definitions reachable from t.
func relaxPointers(defs jsonschema.Definitions, t reflect.Type, visited map[reflect.Type]struct{}) {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	if _, ok := visited[t]; ok {
		return
	}
	visited[t] = struct{}{}

	def := defs[t.Name()]
	for _, f := range structFields(t) {
		if def != nil && f.Type.Kind() == reflect.Pointer {
			def.Required = slices.DeleteFunc(def.Required, func(n string) bool { return n == jsonName(f) })
		}
		relaxPointers(defs, f.Type, visited)
	}
}

// structFields returns the exported fields of t with embedded structs
// flattened, the way encoding/json sees them.
func structFields(t reflect.Type) []reflect.StructField {
	var fields []reflect.StructField
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous && jsonTagName(f) == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				fields = append(fields, structFields(ft)...)
				continue
			}
		}
		if f.IsExported() && jsonTagName(f) != "-" {
			fields = append(fields, f)
		}
	}
	return fields
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return name
}

func jsonName(f reflect.StructField) string {
	if name := jsonTagName(f); name != "" {
		return name
	}
	return f.Name
}
