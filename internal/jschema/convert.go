// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/avrokit/internal/errs"
	"github.com/dacolabs/avrokit/internal/typemodel"
)

// Convert builds a type model definition from a loaded document.
//
// Entries of $defs and definitions become named definitions; $defs wins when
// both declare the same name. The root is left nil when the document only
// carries definitions; callers then pick one with WithRoot.
func Convert(doc *Document) (*typemodel.Definition, error) {
	c := &converter{order: doc.Order, defs: make(map[string]string)}

	schemas := make(map[string]*jsonschema.Schema)
	for name, s := range doc.Schema.Definitions {
		schemas[name] = s
		c.defs[name] = joinPath("definitions", name)
	}
	for name, s := range doc.Schema.Defs {
		schemas[name] = s
		c.defs[name] = joinPath("$defs", name)
	}

	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	def := &typemodel.Definition{Definitions: make(map[string]typemodel.Type, len(schemas))}
	for _, name := range names {
		t, err := c.convert(schemas[name], c.defs[name])
		if err != nil {
			return nil, err
		}
		def.Definitions[name] = t
	}

	if HasRoot(doc.Schema) {
		root, err := c.convert(doc.Schema, "")
		if err != nil {
			return nil, err
		}
		def.Root = root
	}
	return def, nil
}

// WithRoot returns a copy of def whose root references the named definition.
func WithRoot(def *typemodel.Definition, name string) (*typemodel.Definition, error) {
	if _, ok := def.Definitions[name]; !ok {
		return nil, errs.UnknownReference(errs.PhaseLoad, []string{"$defs"}, name)
	}
	return &typemodel.Definition{Root: typemodel.Ref(name), Definitions: def.Definitions}, nil
}

// HasRoot reports whether s describes a value, as opposed to only holding
// definitions.
func HasRoot(s *jsonschema.Schema) bool {
	cp := *s
	cp.Defs = nil
	cp.Definitions = nil
	cp.Schema = ""
	cp.ID = ""
	cp.Title = ""
	cp.Description = ""
	cp.Comment = ""
	b, err := json.Marshal(&cp)
	if err != nil {
		return true
	}
	return !isTrivial(b)
}

func isTrivial(b []byte) bool {
	s := string(b)
	return s == "true" || s == "{}"
}

type converter struct {
	order KeyOrder
	defs  map[string]string // definition name to document path
}

func (c *converter) unsupported(path, detail string, args ...any) error {
	return errs.New(errs.PhaseLoad, errs.KindUnsupported).
		Path(errPath(path)...).
		Detail(detail, args...).
		Build()
}

func errPath(path string) []string {
	if path == "" {
		return []string{"#"}
	}
	return strings.Split(path, ".")
}

func (c *converter) convert(s *jsonschema.Schema, path string) (typemodel.Type, error) {
	if s == nil {
		return nil, c.unsupported(path, "missing schema")
	}
	t, err := c.core(s, path)
	if err != nil {
		return nil, err
	}
	if cons := constraintsOf(s); !cons.IsZero() {
		t = typemodel.Validated{Type: t, Constraints: cons}
	}
	if s.Description != "" {
		t = typemodel.Doc(t, s.Description)
	}
	return t, nil
}

func (c *converter) core(s *jsonschema.Schema, path string) (typemodel.Type, error) {
	switch {
	case s.Ref != "":
		return c.ref(s.Ref, path)
	case len(s.AnyOf) > 0:
		return c.union(s.AnyOf, path, "anyOf")
	case len(s.OneOf) > 0:
		return c.union(s.OneOf, path, "oneOf")
	case len(s.AllOf) == 1:
		return c.convert(s.AllOf[0], joinPath(path, "allOf.0"))
	case len(s.AllOf) > 1:
		return nil, c.unsupported(path, "allOf with %d members", len(s.AllOf))
	case len(s.Enum) > 0:
		return c.literal(s.Enum, path)
	case s.Const != nil:
		return c.literal([]any{*s.Const}, path)
	case len(s.Types) > 0:
		return c.multi(s, path)
	}
	return c.typed(s, s.Type, path)
}

func (c *converter) ref(ref, path string) (typemodel.Type, error) {
	name, ok := DefName(ref)
	if !ok {
		if IsFileRef(ref) {
			return nil, c.unsupported(path, "unresolved file reference %q", ref)
		}
		return nil, c.unsupported(path, "unsupported reference %q", ref)
	}
	if _, ok := c.defs[name]; !ok {
		return nil, errs.UnknownReference(errs.PhaseLoad, errPath(path), name)
	}
	return typemodel.Ref(name), nil
}

func isNull(s *jsonschema.Schema) bool {
	return s != nil && s.Ref == "" &&
		(s.Type == "null" || (len(s.Types) == 1 && s.Types[0] == "null"))
}

func (c *converter) union(members []*jsonschema.Schema, path, key string) (typemodel.Type, error) {
	var (
		nulls int
		rest  []typemodel.Type
	)
	for i, m := range members {
		if isNull(m) {
			nulls++
			continue
		}
		t, err := c.convert(m, joinPath(path, key+"."+strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		rest = append(rest, t)
	}

	switch {
	case len(rest) == 0:
		return nil, c.unsupported(path, "%s has no non-null member", key)
	case nulls > 1:
		return nil, c.unsupported(path, "%s has %d null members", key, nulls)
	case nulls == 0:
		return typemodel.OneOf(rest...), nil
	case len(rest) == 1:
		return typemodel.Opt(rest[0]), nil
	default:
		return typemodel.Opt(typemodel.OneOf(rest...)), nil
	}
}

func (c *converter) multi(s *jsonschema.Schema, path string) (typemodel.Type, error) {
	var (
		nullable bool
		alts     []typemodel.Type
	)
	for _, typ := range s.Types {
		if typ == "null" {
			nullable = true
			continue
		}
		t, err := c.typed(s, typ, path)
		if err != nil {
			return nil, err
		}
		alts = append(alts, t)
	}

	var t typemodel.Type
	switch len(alts) {
	case 0:
		return nil, c.unsupported(path, "type list has no non-null type")
	case 1:
		t = alts[0]
	default:
		t = typemodel.OneOf(alts...)
	}
	if nullable {
		t = typemodel.Opt(t)
	}
	return t, nil
}

func (c *converter) literal(values []any, path string) (typemodel.Type, error) {
	symbols := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, c.unsupported(path, "enum value %v is not a string", v)
		}
		symbols = append(symbols, s)
	}
	return typemodel.Lit(symbols...), nil
}

func (c *converter) typed(s *jsonschema.Schema, typ, path string) (typemodel.Type, error) {
	switch typ {
	case "boolean":
		return typemodel.Bool(), nil
	case "integer":
		return typemodel.Integer{Kind: integerKind(s.Format)}, nil
	case "number":
		if s.Format == "float" {
			return typemodel.F32(), nil
		}
		return typemodel.F64(), nil
	case "string":
		return typemodel.Str(), nil
	case "array":
		return c.array(s, path)
	case "object":
		return c.object(s, path)
	case "null":
		return nil, c.unsupported(path, "null type outside a union")
	case "":
		switch {
		case len(s.Properties) > 0 || s.AdditionalProperties != nil:
			return c.object(s, path)
		case s.Items != nil || len(s.PrefixItems) > 0:
			return c.array(s, path)
		}
		return nil, c.unsupported(path, "schema has no type")
	default:
		return nil, c.unsupported(path, "unknown type %q", typ)
	}
}

func integerKind(format string) typemodel.IntKind {
	switch format {
	case "int8", "int16", "int32", "uint8", "uint16":
		return typemodel.Int32
	case "uint32":
		return typemodel.UInt32
	case "int64":
		return typemodel.Int64
	case "uint64":
		return typemodel.UInt64
	default:
		return typemodel.Int
	}
}

func (c *converter) array(s *jsonschema.Schema, path string) (typemodel.Type, error) {
	if len(s.PrefixItems) > 0 {
		elems := make([]typemodel.Type, 0, len(s.PrefixItems))
		for i, p := range s.PrefixItems {
			t, err := c.convert(p, joinPath(path, "prefixItems."+strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return typemodel.TupleOf(elems...), nil
	}

	if s.Items == nil {
		return typemodel.ArrayOf(typemodel.Str()), nil
	}
	item, err := c.convert(s.Items, joinPath(path, "items"))
	if err != nil {
		return nil, err
	}
	if s.MinItems != nil && s.MaxItems != nil && *s.MinItems == *s.MaxItems && *s.MinItems > 0 {
		return typemodel.FixedOf(item, *s.MinItems), nil
	}
	return typemodel.ArrayOf(item), nil
}

func (c *converter) object(s *jsonschema.Schema, path string) (typemodel.Type, error) {
	if len(s.Properties) == 0 {
		if ap := s.AdditionalProperties; ap != nil && !isBoolSchema(ap) {
			value, err := c.convert(ap, joinPath(path, "additionalProperties"))
			if err != nil {
				return nil, err
			}
			return typemodel.MapOf(value), nil
		}
		return typemodel.Obj(), nil
	}

	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}

	names := c.order.PropertyNames(path, s)
	fields := make([]typemodel.Field, 0, len(names))
	for _, name := range names {
		t, err := c.convert(s.Properties[name], joinPath(path, "properties."+name))
		if err != nil {
			return nil, err
		}
		if _, ok := required[name]; !ok && !isOptional(t) {
			t = typemodel.Opt(t)
		}
		fields = append(fields, typemodel.F(name, t))
	}
	return typemodel.Obj(fields...), nil
}

// isBoolSchema reports whether s is the true or false schema.
func isBoolSchema(s *jsonschema.Schema) bool {
	b, err := json.Marshal(s)
	if err != nil {
		return false
	}
	return isTrivial(b) || string(b) == "false"
}

func isOptional(t typemodel.Type) bool {
	for {
		switch v := t.(type) {
		case typemodel.Optional:
			return true
		case typemodel.Description:
			t = v.Type
		case typemodel.Validated:
			t = v.Type
		default:
			return false
		}
	}
}

func constraintsOf(s *jsonschema.Schema) typemodel.Constraints {
	return typemodel.Constraints{
		Minimum:          s.Minimum,
		Maximum:          s.Maximum,
		ExclusiveMinimum: s.ExclusiveMinimum,
		ExclusiveMaximum: s.ExclusiveMaximum,
		MultipleOf:       s.MultipleOf,
		MinLength:        s.MinLength,
		MaxLength:        s.MaxLength,
		Pattern:          s.Pattern,
		MinItems:         s.MinItems,
		MaxItems:         s.MaxItems,
	}
}
