// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package decode

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/hamba/avro/v2"

	"github.com/dacolabs/avrokit/internal/errs"
	"github.com/dacolabs/avrokit/internal/reflectschema"
)

var oneOfType = reflect.TypeFor[reflectschema.OneOf]()

// Decode decodes data into a new T.
func Decode[T any](s *Schema, data []byte) (T, error) {
	return DecodeReader[T](s, bytes.NewReader(data))
}

// DecodeReader decodes one value from r into a new T.
func DecodeReader[T any](s *Schema, r io.Reader) (T, error) {
	var out T
	if err := s.DecodeFrom(r, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeInto decodes data into the value v points to. v is left untouched
// when decoding fails.
func (s *Schema) DecodeInto(data []byte, v any) error {
	return s.DecodeFrom(bytes.NewReader(data), v)
}

// DecodeFrom decodes one value from r into the value v points to. v is left
// untouched when decoding fails.
func (s *Schema) DecodeFrom(r io.Reader, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errs.New(errs.PhaseDecode, errs.KindInvalidData).
			GoType(fmt.Sprintf("%T", v)).
			Detail("decode target must be a non-nil pointer").
			Build()
	}

	tmp := reflect.New(rv.Elem().Type())
	if err := decodeValue(s.Open(r), tmp.Elem()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

func typeMismatch(c *Cursor, t reflect.Type) error {
	return errs.SchemaMismatch(c.Path(), t.String(), string(c.Type()))
}

func isOneOf(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && (t.Implements(oneOfType) || reflect.PointerTo(t).Implements(oneOfType))
}

// decodeValue consumes the value at c into v, which must be settable.
func decodeValue(c *Cursor, v reflect.Value) error {
	t := v.Type()

	if t.Kind() == reflect.Interface {
		if t.NumMethod() != 0 {
			return typeMismatch(c, t)
		}
		val, err := readValue(c)
		if err != nil {
			return err
		}
		if val == nil {
			v.SetZero()
		} else {
			v.Set(reflect.ValueOf(val))
		}
		return nil
	}

	switch c.Shape() {
	case ShapeUnion:
		return decodeUnion(c, v)
	case ShapeRecord:
		if t.Kind() == reflect.Pointer {
			return decodeElem(c, v)
		}
		return decodeRecord(c, v)
	case ShapeArray:
		if t.Kind() == reflect.Pointer {
			return decodeElem(c, v)
		}
		return decodeArray(c, v)
	case ShapeMap:
		if t.Kind() == reflect.Pointer {
			return decodeElem(c, v)
		}
		return decodeMap(c, v)
	default:
		if t.Kind() == reflect.Pointer && c.Type() != avro.Null {
			return decodeElem(c, v)
		}
		return decodeScalar(c, v)
	}
}

// decodeElem allocates the element of pointer v and decodes into it.
func decodeElem(c *Cursor, v reflect.Value) error {
	p := reflect.New(v.Type().Elem())
	if err := decodeValue(c, p.Elem()); err != nil {
		return err
	}
	v.Set(p)
	return nil
}

func decodeUnion(c *Cursor, v reflect.Value) error {
	t := v.Type()
	idx, member, err := c.Union()
	if err != nil {
		return err
	}

	if isOneOf(t) {
		fields := exportedFields(t)
		if idx >= len(fields) || fields[idx].Type.Kind() != reflect.Pointer {
			return typeMismatch(c, t)
		}
		if member.Type() == avro.Null {
			v.SetZero()
			return nil
		}
		out := reflect.New(t).Elem()
		if err := decodeElem(member, out.FieldByIndex(fields[idx].Index)); err != nil {
			return err
		}
		v.Set(out)
		return nil
	}

	if member.Type() == avro.Null {
		v.SetZero()
		return nil
	}
	if t.Kind() == reflect.Pointer {
		return decodeElem(member, v)
	}
	return decodeValue(member, v)
}

func exportedFields(t reflect.Type) []reflect.StructField {
	var fields []reflect.StructField
	for i := range t.NumField() {
		if f := t.Field(i); f.IsExported() {
			fields = append(fields, f)
		}
	}
	return fields
}

func decodeScalar(c *Cursor, v reflect.Value) error {
	t := v.Type()
	switch c.Type() {
	case avro.Null:
		if err := c.ReadNull(); err != nil {
			return err
		}
		v.SetZero()
		return nil

	case avro.Boolean:
		if t.Kind() != reflect.Bool {
			return typeMismatch(c, t)
		}
		b, err := c.ReadBoolean()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil

	case avro.Int, avro.Long:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := c.ReadLong()
			if err != nil {
				return err
			}
			if v.OverflowInt(n) {
				return overflow(c, t, n)
			}
			v.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := c.ReadLong()
			if err != nil {
				return err
			}
			if n < 0 || v.OverflowUint(uint64(n)) {
				return overflow(c, t, n)
			}
			v.SetUint(uint64(n))
		case reflect.Float32, reflect.Float64:
			f, err := c.ReadDouble()
			if err != nil {
				return err
			}
			v.SetFloat(f)
		default:
			return typeMismatch(c, t)
		}
		return nil

	case avro.Float:
		if t.Kind() != reflect.Float32 && t.Kind() != reflect.Float64 {
			return typeMismatch(c, t)
		}
		f, err := c.ReadFloat()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil

	case avro.Double:
		if t.Kind() != reflect.Float64 {
			return typeMismatch(c, t)
		}
		f, err := c.ReadDouble()
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil

	case avro.String, avro.Bytes, avro.Fixed:
		return decodeBytes(c, v)

	case avro.Enum:
		idx, sym, err := c.ReadEnum()
		if err != nil {
			return err
		}
		switch t.Kind() {
		case reflect.String:
			v.SetString(sym)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v.SetInt(int64(idx))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v.SetUint(uint64(idx))
		default:
			return typeMismatch(c, t)
		}
		return nil
	}
	return typeMismatch(c, t)
}

func overflow(c *Cursor, t reflect.Type, n int64) error {
	return errs.New(errs.PhaseDecode, errs.KindSchemaMismatch).
		Path(c.Path()...).
		GoType(t.String()).
		AvroType(string(c.Type())).
		Value(n).
		Detail("value %d overflows the target type", n).
		Build()
}

func decodeBytes(c *Cursor, v reflect.Value) error {
	t := v.Type()
	switch {
	case t.Kind() == reflect.String:
		s, err := c.ReadString()
		if err != nil {
			return err
		}
		v.SetString(s)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		b, err := c.ReadBytes()
		if err != nil {
			return err
		}
		v.SetBytes(b)
	case t.Kind() == reflect.Array && t.Elem().Kind() == reflect.Uint8:
		b, err := c.ReadBytes()
		if err != nil {
			return err
		}
		if len(b) != t.Len() {
			return errs.New(errs.PhaseDecode, errs.KindSchemaMismatch).
				Path(c.Path()...).
				GoType(t.String()).
				AvroType(string(c.Type())).
				Detail("got %d bytes", len(b)).
				Build()
		}
		reflect.Copy(v, reflect.ValueOf(b))
	default:
		return typeMismatch(c, t)
	}
	return nil
}

func decodeRecord(c *Cursor, v reflect.Value) error {
	t := v.Type()
	switch {
	case t.Kind() == reflect.Struct && !isOneOf(t):
	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String:
		return decodeRecordAsMap(c, v)
	default:
		return typeMismatch(c, t)
	}

	fields, err := c.Record()
	if err != nil {
		return err
	}

	info := structInfoFor(t)
	present := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		present[f.Name] = struct{}{}
	}
	for _, gf := range info.fields {
		if _, ok := present[gf.name]; !ok && !gf.optional {
			return errs.MissingRequiredField(c.Path(), gf.name)
		}
	}

	out := reflect.New(t).Elem()
	for _, f := range fields {
		gf, ok := info.byName[f.Name]
		if !ok {
			if err := f.Skip(); err != nil {
				return err
			}
			continue
		}
		if err := decodeValue(f.Cursor, out.FieldByIndex(gf.index)); err != nil {
			return err
		}
	}
	v.Set(out)
	return nil
}

func decodeRecordAsMap(c *Cursor, v reflect.Value) error {
	t := v.Type()
	fields, err := c.Record()
	if err != nil {
		return err
	}
	out := reflect.MakeMapWithSize(t, len(fields))
	for _, f := range fields {
		elem := reflect.New(t.Elem()).Elem()
		if err := decodeValue(f.Cursor, elem); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(f.Name).Convert(t.Key()), elem)
	}
	v.Set(out)
	return nil
}

func decodeArray(c *Cursor, v reflect.Value) error {
	t := v.Type()
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return typeMismatch(c, t)
	}
	it, err := c.Array()
	if err != nil {
		return err
	}

	if t.Kind() == reflect.Array {
		out := reflect.New(t).Elem()
		n := 0
		for it.Next() {
			if n >= t.Len() {
				return arrayLength(c, t, n+1)
			}
			if err := decodeValue(it.Value(), out.Index(n)); err != nil {
				return err
			}
			n++
		}
		if err := it.Err(); err != nil {
			return err
		}
		if n != t.Len() {
			return arrayLength(c, t, n)
		}
		v.Set(out)
		return nil
	}

	out := reflect.MakeSlice(t, 0, 0)
	for it.Next() {
		elem := reflect.New(t.Elem()).Elem()
		if err := decodeValue(it.Value(), elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	if err := it.Err(); err != nil {
		return err
	}
	v.Set(out)
	return nil
}

func arrayLength(c *Cursor, t reflect.Type, n int) error {
	return errs.New(errs.PhaseDecode, errs.KindSchemaMismatch).
		Path(c.Path()...).
		GoType(t.String()).
		AvroType(string(c.Type())).
		Detail("array has at least %d items, want %d", n, t.Len()).
		Build()
}

func decodeMap(c *Cursor, v reflect.Value) error {
	t := v.Type()
	if t.Kind() != reflect.Map || t.Key().Kind() != reflect.String {
		return typeMismatch(c, t)
	}
	it, err := c.Map()
	if err != nil {
		return err
	}

	out := reflect.MakeMap(t)
	for it.Next() {
		elem := reflect.New(t.Elem()).Elem()
		if err := decodeValue(it.Value(), elem); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(it.Key()).Convert(t.Key()), elem)
	}
	if err := it.Err(); err != nil {
		return err
	}
	v.Set(out)
	return nil
}

type goField struct {
	name     string
	index    []int
	optional bool
}

type structInfo struct {
	fields []goField
	byName map[string]goField
}

var structCache sync.Map // map[reflect.Type]*structInfo

// structInfoFor maps the wire names of t's fields to their indexes. Embedded
// structs without a json name are flattened.
func structInfoFor(t reflect.Type) *structInfo {
	if cached, ok := structCache.Load(t); ok {
		return cached.(*structInfo)
	}
	info := &structInfo{byName: make(map[string]goField)}
	collectFields(t, nil, info)
	actual, _ := structCache.LoadOrStore(t, info)
	return actual.(*structInfo)
}

func collectFields(t reflect.Type, prefix []int, info *structInfo) {
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		name, opts, _ := strings.Cut(tag, ",")
		index := append(append([]int(nil), prefix...), i)

		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			collectFields(f.Type, index, info)
			continue
		}
		if !f.IsExported() || name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, dup := info.byName[name]; dup {
			continue
		}
		gf := goField{
			name:     name,
			index:    index,
			optional: f.Type.Kind() == reflect.Pointer || hasOption(opts, "omitempty"),
		}
		info.fields = append(info.fields, gf)
		info.byName[name] = gf
	}
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}
