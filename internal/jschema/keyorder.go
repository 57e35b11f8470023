// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// KeyOrder maps the dotted path of each "properties" object in a document to
// its keys in source order, e.g. "properties.address.properties" or
// "$defs.User.properties".
type KeyOrder map[string][]string

// ExtractKeyOrder reads the property order from raw JSON or YAML bytes.
// JSON is parsed as YAML, which it is a subset of.
func ExtractKeyOrder(data []byte) (KeyOrder, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	order := make(KeyOrder)
	for _, n := range doc.Content {
		order.collect(n, "")
	}
	return order, nil
}

func (o KeyOrder) collect(n *yaml.Node, path string) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			child := joinPath(path, key)
			if key == "properties" && val.Kind == yaml.MappingNode {
				keys := make([]string, 0, len(val.Content)/2)
				for j := 0; j+1 < len(val.Content); j += 2 {
					keys = append(keys, val.Content[j].Value)
				}
				o[child] = keys
			}
			o.collect(val, child)
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			o.collect(c, joinPath(path, strconv.Itoa(i)))
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			o.collect(n.Alias, path)
		}
	}
}

// Merge copies the order of another document mounted at prefix. Paths under
// $defs or definitions stay at the top level.
func (o KeyOrder) Merge(other KeyOrder, prefix string) {
	for path, keys := range other {
		if strings.HasPrefix(path, "$defs.") || strings.HasPrefix(path, "definitions.") {
			o[path] = keys
			continue
		}
		o[joinPath(prefix, path)] = keys
	}
}

// PropertyNames returns the property names of s, the schema at path, in
// source order. Names without a recorded position follow in sorted order.
func (o KeyOrder) PropertyNames(path string, s *jsonschema.Schema) []string {
	names := make([]string, 0, len(s.Properties))
	placed := make(map[string]struct{}, len(s.Properties))
	for _, key := range o[joinPath(path, "properties")] {
		if _, ok := s.Properties[key]; !ok {
			continue
		}
		if _, dup := placed[key]; dup {
			continue
		}
		placed[key] = struct{}{}
		names = append(names, key)
	}

	var rest []string
	for key := range s.Properties {
		if _, ok := placed[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
