// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avroschema

// WithName returns s carrying name. Records and enums are copied with the new
// name; every other variant has no name and is returned unchanged.
func WithName(s Schema, name string) Schema {
	switch t := s.(type) {
	case *Record:
		r := *t
		r.Name = name
		return &r
	case *Enum:
		e := *t
		e.Name = name
		return &e
	default:
		return s
	}
}

// Name returns the declared name of a record or enum, or "".
func Name(s Schema) string {
	switch t := s.(type) {
	case *Record:
		return t.Name
	case *Enum:
		return t.Name
	default:
		return ""
	}
}

// Clone returns a deep copy of s.
func Clone(s Schema) Schema {
	switch t := s.(type) {
	case *Enum:
		e := *t
		e.Symbols = append([]string(nil), t.Symbols...)
		return &e
	case *Array:
		return &Array{Items: Clone(t.Items)}
	case *Map:
		return &Map{Values: Clone(t.Values)}
	case *Record:
		r := *t
		r.Fields = make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			r.Fields[i] = Field{Name: f.Name, Type: Clone(f.Type)}
		}
		return &r
	case *Union:
		u := &Union{Types: make([]Schema, len(t.Types))}
		for i, m := range t.Types {
			u.Types[i] = Clone(m)
		}
		return u
	case *Reference:
		r := *t
		return &r
	default:
		return s
	}
}

// Walk visits s and its descendants in pre-order, which is also the order
// they appear in the emitted document. Returning false skips the children of
// the current node.
func Walk(s Schema, fn func(Schema) bool) {
	if s == nil || !fn(s) {
		return
	}
	switch t := s.(type) {
	case *Array:
		Walk(t.Items, fn)
	case *Map:
		Walk(t.Values, fn)
	case *Record:
		for _, f := range t.Fields {
			Walk(f.Type, fn)
		}
	case *Union:
		for _, m := range t.Types {
			Walk(m, fn)
		}
	}
}
