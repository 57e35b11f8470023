// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import (
	"strconv"

	"github.com/dacolabs/avrokit/internal/avroschema"
	"github.com/dacolabs/avrokit/internal/translate"
)

// namer gives every anonymous record and enum a name that is unique within
// one schema tree.
type namer struct {
	used map[string]struct{}
}

// assignNames names the anonymous records and enums of s in place. s must be
// owned by the caller. The root takes rootName and, when it is a record or an
// enum, namespace. Named types keep their names so references to them stay
// valid.
func assignNames(s avroschema.Schema, rootName, namespace string) {
	n := &namer{used: make(map[string]struct{})}
	avroschema.Walk(s, func(s avroschema.Schema) bool {
		switch t := s.(type) {
		case *avroschema.Record:
			n.reserve(t.Name)
		case *avroschema.Enum:
			n.reserve(t.Name)
		case *avroschema.Reference:
			n.reserve(t.Name)
		}
		return true
	})

	n.assign(s, rootName)

	switch t := s.(type) {
	case *avroschema.Record:
		if t.Namespace == "" {
			t.Namespace = namespace
		}
	case *avroschema.Enum:
		if t.Namespace == "" {
			t.Namespace = namespace
		}
	}
}

func (n *namer) reserve(name string) {
	if name != "" {
		n.used[name] = struct{}{}
	}
}

// unique returns base, or base with the smallest numeric suffix from 2 up
// that is not taken yet.
func (n *namer) unique(base string) string {
	name := base
	for i := 2; ; i++ {
		if _, taken := n.used[name]; !taken {
			break
		}
		name = base + strconv.Itoa(i)
	}
	n.used[name] = struct{}{}
	return name
}

func (n *namer) assign(s avroschema.Schema, base string) {
	switch t := s.(type) {
	case *avroschema.Record:
		if t.Name == "" {
			t.Name = n.unique(base)
		}
		for i := range t.Fields {
			n.assign(t.Fields[i].Type, t.Name+translate.ToPascalCase(t.Fields[i].Name))
		}
	case *avroschema.Enum:
		if t.Name == "" {
			t.Name = n.unique(base)
		}
	case *avroschema.Array:
		n.assign(t.Items, base+"Item")
	case *avroschema.Map:
		n.assign(t.Values, base+"Value")
	case *avroschema.Union:
		for _, m := range t.Types {
			n.assign(m, base)
		}
	}
}
