// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"os"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraverse_SimpleSchema(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	doc, err := loader.LoadFile("simple.yaml")
	require.NoError(t, err)

	var paths []string
	for p := range Traverse(doc.Schema) {
		paths = append(paths, p)
	}

	// Root + 2 properties in sorted order
	assert.Equal(t, []string{"", "properties.age", "properties.name"}, paths)
}

func TestTraverse_Paths(t *testing.T) {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"tags": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		AdditionalProperties: &jsonschema.Schema{Type: "integer"},
		AnyOf:                []*jsonschema.Schema{{Type: "string"}, {Type: "null"}},
		PrefixItems:          []*jsonschema.Schema{{Type: "boolean"}},
		Defs: map[string]*jsonschema.Schema{
			"B": {Type: "string"},
			"A": {Type: "string"},
		},
	}

	var paths []string
	for p := range Traverse(schema) {
		paths = append(paths, p)
	}

	assert.Equal(t, []string{
		"",
		"properties.tags",
		"properties.tags.items",
		"additionalProperties",
		"prefixItems.0",
		"anyOf.0",
		"anyOf.1",
		"$defs.A",
		"$defs.B",
	}, paths)
}

func TestTraverse_SharedSchemaVisitedOnce(t *testing.T) {
	shared := &jsonschema.Schema{Type: "string"}
	schema := &jsonschema.Schema{
		Properties: map[string]*jsonschema.Schema{"a": shared, "b": shared},
	}

	var count int
	for range Traverse(schema) {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestTraverse_EarlyTermination(t *testing.T) {
	schema := &jsonschema.Schema{
		AllOf: []*jsonschema.Schema{{Type: "string"}, {Type: "integer"}, {Type: "boolean"}},
	}

	var count int
	for range Traverse(schema) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestTraverse_Conditional(t *testing.T) {
	schema := &jsonschema.Schema{
		If:   &jsonschema.Schema{Type: "string"},
		Then: &jsonschema.Schema{Type: "string"},
		Else: &jsonschema.Schema{Type: "integer"},
		Not:  &jsonschema.Schema{Type: "null"},
	}

	var paths []string
	for p := range Traverse(schema) {
		paths = append(paths, p)
	}
	assert.Equal(t, []string{"", "not", "if", "then", "else"}, paths)
}
