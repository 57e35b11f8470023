// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate provides schema translation utilities.
package translate

import (
	"fmt"
	"sort"

	"github.com/dacolabs/avrokit/internal/typemodel"
)

// Translator defines the interface all output formats must implement.
type Translator interface {
	// Name returns the translator's identifier (e.g., "avsc", "canonical")
	Name() string

	// Translate converts a type model definition to the target format.
	// name is used for the root type when the root is anonymous.
	Translate(name string, def *typemodel.Definition) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".avsc")
	FileExtension() string
}

// Register maps translator names to implementations.
type Register map[string]Translator

// Add registers t under its own name.
func (r Register) Add(t Translator) {
	r[t.Name()] = t
}

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
