// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"sort"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
)

// Traverse returns an iterator over all schemas in the tree together with
// their dotted paths. It handles shared subschemas by visiting each pointer
// once. Map-valued keywords are visited in sorted key order.
func Traverse(schema *jsonschema.Schema) iter.Seq2[string, *jsonschema.Schema] {
	return func(yield func(string, *jsonschema.Schema) bool) {
		visited := make(map[*jsonschema.Schema]struct{})
		traverseWithVisited(schema, "", yield, visited)
	}
}

func traverseWithVisited(schema *jsonschema.Schema, path string, yield func(string, *jsonschema.Schema) bool, visited map[*jsonschema.Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(path, schema) {
		return false
	}

	one := func(key string, s *jsonschema.Schema) bool {
		return traverseWithVisited(s, joinPath(path, key), yield, visited)
	}
	list := func(key string, ss []*jsonschema.Schema) bool {
		for i, s := range ss {
			if !traverseWithVisited(s, joinPath(path, key+"."+strconv.Itoa(i)), yield, visited) {
				return false
			}
		}
		return true
	}
	keyed := func(key string, m map[string]*jsonschema.Schema) bool {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !traverseWithVisited(m[name], joinPath(path, key+"."+name), yield, visited) {
				return false
			}
		}
		return true
	}

	// Objects
	if !keyed("properties", schema.Properties) ||
		!keyed("patternProperties", schema.PatternProperties) ||
		!one("additionalProperties", schema.AdditionalProperties) ||
		!one("propertyNames", schema.PropertyNames) ||
		!one("unevaluatedProperties", schema.UnevaluatedProperties) {
		return false
	}

	// Arrays
	if !one("items", schema.Items) ||
		!list("prefixItems", schema.PrefixItems) ||
		!one("additionalItems", schema.AdditionalItems) ||
		!one("contains", schema.Contains) ||
		!one("unevaluatedItems", schema.UnevaluatedItems) {
		return false
	}

	// Logic
	if !list("allOf", schema.AllOf) ||
		!list("anyOf", schema.AnyOf) ||
		!list("oneOf", schema.OneOf) ||
		!one("not", schema.Not) {
		return false
	}

	// Conditional
	if !one("if", schema.If) ||
		!one("then", schema.Then) ||
		!one("else", schema.Else) ||
		!keyed("dependentSchemas", schema.DependentSchemas) {
		return false
	}

	// Other
	return one("contentSchema", schema.ContentSchema) &&
		keyed("$defs", schema.Defs) &&
		keyed("definitions", schema.Definitions)
}
