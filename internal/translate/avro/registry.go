// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import (
	"fmt"
	"sort"

	"github.com/dacolabs/avrokit/internal/avroschema"
	"github.com/dacolabs/avrokit/internal/typemodel"
)

// Registry maps definition names to flat Avro schemas. Every reference inside
// an entry is a name-only Reference. A Registry is read-only once built.
type Registry map[string]avroschema.Schema

// Seen tracks which names have been expanded in one root translation.
// It must not be shared between translations.
type Seen map[string]struct{}

// Has reports whether name has already been expanded.
func (s Seen) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// BuildRegistry translates each definition in isolation, with an empty
// companion registry and no seen set, and tags the result with its name.
func BuildRegistry(defs map[string]typemodel.Type) (Registry, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := make(Registry, len(defs))
	for _, name := range names {
		s, err := Translate(defs[name], nil, nil)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", name, err)
		}
		reg[name] = avroschema.WithName(s, name)
	}
	return reg, nil
}
