// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package decode

import (
	"bytes"
	"io"

	"github.com/hamba/avro/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a decoded record whose fields keep their schema order.
type Record = orderedmap.OrderedMap[string, any]

// DecodeValue decodes data without a target type. Scalars become nil, bool,
// int32, int64, float32, float64, string or []byte; enums become their
// symbol; arrays become []any, maps map[string]any and records *Record.
func DecodeValue(s *Schema, data []byte) (any, error) {
	return DecodeValueReader(s, bytes.NewReader(data))
}

// DecodeValueReader is like DecodeValue but reads from r.
func DecodeValueReader(s *Schema, r io.Reader) (any, error) {
	return readValue(s.Open(r))
}

func readValue(c *Cursor) (any, error) {
	switch c.Shape() {
	case ShapeUnion:
		_, m, err := c.Union()
		if err != nil {
			return nil, err
		}
		return readValue(m)

	case ShapeRecord:
		fields, err := c.Record()
		if err != nil {
			return nil, err
		}
		rec := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(fields)))
		for _, f := range fields {
			v, err := readValue(f.Cursor)
			if err != nil {
				return nil, err
			}
			rec.Set(f.Name, v)
		}
		return rec, nil

	case ShapeArray:
		it, err := c.Array()
		if err != nil {
			return nil, err
		}
		items := []any{}
		for it.Next() {
			v, err := readValue(it.Value())
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, it.Err()

	case ShapeMap:
		it, err := c.Map()
		if err != nil {
			return nil, err
		}
		m := map[string]any{}
		for it.Next() {
			v, err := readValue(it.Value())
			if err != nil {
				return nil, err
			}
			m[it.Key()] = v
		}
		return m, it.Err()
	}

	switch c.Type() {
	case avro.Null:
		return nil, c.ReadNull()
	case avro.Boolean:
		return c.ReadBoolean()
	case avro.Int:
		return c.ReadInt()
	case avro.Long:
		return c.ReadLong()
	case avro.Float:
		return c.ReadFloat()
	case avro.Double:
		return c.ReadDouble()
	case avro.String:
		return c.ReadString()
	case avro.Bytes, avro.Fixed:
		return c.ReadBytes()
	case avro.Enum:
		_, sym, err := c.ReadEnum()
		return sym, err
	}
	return nil, c.invalid("unsupported type %s", c.Type())
}
