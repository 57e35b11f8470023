// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import "github.com/dacolabs/avrokit/internal/avroschema"

// resolveReference returns either a name-only reference or, on the first
// occurrence of a defined name, a copy of its registry entry. The entry is
// flat, so the references inside it stay name-only unless nested is set, in
// which case they are resolved against the same seen set.
func resolveReference(name string, defs Registry, seen Seen, nested bool) avroschema.Schema {
	if seen == nil || seen.Has(name) {
		return &avroschema.Reference{Name: name}
	}
	entry, ok := defs[name]
	if !ok {
		return &avroschema.Reference{Name: name}
	}
	seen[name] = struct{}{}
	if !nested {
		return avroschema.Clone(entry)
	}
	return resolveNested(avroschema.Clone(entry), defs, seen)
}

// resolveNested rewrites the references of an owned subtree in place, in
// document order.
func resolveNested(s avroschema.Schema, defs Registry, seen Seen) avroschema.Schema {
	switch t := s.(type) {
	case *avroschema.Reference:
		return resolveReference(t.Name, defs, seen, true)
	case *avroschema.Array:
		t.Items = resolveNested(t.Items, defs, seen)
	case *avroschema.Map:
		t.Values = resolveNested(t.Values, defs, seen)
	case *avroschema.Record:
		for i := range t.Fields {
			t.Fields[i].Type = resolveNested(t.Fields[i].Type, defs, seen)
		}
	case *avroschema.Union:
		for i := range t.Types {
			t.Types[i] = resolveNested(t.Types[i], defs, seen)
		}
	}
	return s
}
