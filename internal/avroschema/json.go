// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avroschema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// jsonRecord represents an Avro record schema.
type jsonRecord struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Namespace string      `json:"namespace,omitempty"`
	Fields    []jsonField `json:"fields"`
}

// jsonField represents a field within an Avro record.
type jsonField struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type jsonEnum struct {
	Type      string   `json:"type"`
	Name      string   `json:"name"`
	Namespace string   `json:"namespace,omitempty"`
	Symbols   []string `json:"symbols"`
}

type jsonArray struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

type jsonMap struct {
	Type   string `json:"type"`
	Values any    `json:"values"`
}

// Marshal encodes s in Avro's JSON schema notation.
func Marshal(s Schema) ([]byte, error) {
	v, err := toJSON(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalIndent is like Marshal with two-space indentation and a trailing
// newline, suitable for writing .avsc files.
func MarshalIndent(s Schema) ([]byte, error) {
	v, err := toJSON(s)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Avro schema: %w", err)
	}
	return append(out, '\n'), nil
}

func toJSON(s Schema) (any, error) {
	switch t := s.(type) {
	case Null, Boolean, Int, Long, Float, Double, String:
		return string(s.Type()), nil
	case *Reference:
		return t.Name, nil
	case *Enum:
		symbols := t.Symbols
		if symbols == nil {
			symbols = []string{}
		}
		return jsonEnum{Type: "enum", Name: t.Name, Namespace: t.Namespace, Symbols: symbols}, nil
	case *Array:
		items, err := toJSON(t.Items)
		if err != nil {
			return nil, err
		}
		return jsonArray{Type: "array", Items: items}, nil
	case *Map:
		values, err := toJSON(t.Values)
		if err != nil {
			return nil, err
		}
		return jsonMap{Type: "map", Values: values}, nil
	case *Record:
		fields := make([]jsonField, 0, len(t.Fields))
		for _, f := range t.Fields {
			ft, err := toJSON(f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields = append(fields, jsonField{Name: f.Name, Type: ft})
		}
		return jsonRecord{Type: "record", Name: t.Name, Namespace: t.Namespace, Fields: fields}, nil
	case *Union:
		members := make([]any, 0, len(t.Types))
		for _, m := range t.Types {
			mv, err := toJSON(m)
			if err != nil {
				return nil, err
			}
			members = append(members, mv)
		}
		return members, nil
	default:
		return nil, fmt.Errorf("unsupported schema node %T", s)
	}
}
