// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package decode

import (
	"errors"
	"io"
	"strconv"

	"github.com/hamba/avro/v2"

	"github.com/dacolabs/avrokit/internal/errs"
)

// Shape is the structural class of the value under a cursor.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeRecord
	ShapeArray
	ShapeMap
	ShapeUnion
)

func (s Shape) String() string {
	switch s {
	case ShapeRecord:
		return "record"
	case ShapeArray:
		return "array"
	case ShapeMap:
		return "map"
	case ShapeUnion:
		return "union"
	default:
		return "scalar"
	}
}

// Cursor is one position in a byte stream, governed by the schema at that
// position. A cursor's value must be consumed exactly once, by a read or by
// Skip, before the cursor that follows it in the stream is used.
type Cursor struct {
	r      *avro.Reader
	schema avro.Schema
	path   []string
}

func newCursor(r *avro.Reader, s avro.Schema, path []string) *Cursor {
	return &Cursor{r: r, schema: resolve(s), path: path}
}

// resolve replaces named-type references by their definitions.
func resolve(s avro.Schema) avro.Schema {
	for {
		ref, ok := s.(*avro.RefSchema)
		if !ok {
			return s
		}
		s = ref.Schema()
	}
}

func (c *Cursor) child(s avro.Schema, segment string) *Cursor {
	path := make([]string, len(c.path), len(c.path)+1)
	copy(path, c.path)
	return newCursor(c.r, s, append(path, segment))
}

// Schema returns the schema at the cursor, with references resolved.
func (c *Cursor) Schema() avro.Schema { return c.schema }

// Type returns the Avro type at the cursor.
func (c *Cursor) Type() avro.Type { return c.schema.Type() }

// Path returns the location of the cursor, e.g. ["order", "items", "[2]"].
func (c *Cursor) Path() []string { return c.path }

// Shape returns the structural class of the value at the cursor.
func (c *Cursor) Shape() Shape {
	switch c.schema.Type() {
	case avro.Record, avro.Error:
		return ShapeRecord
	case avro.Array:
		return ShapeArray
	case avro.Map:
		return ShapeMap
	case avro.Union:
		return ShapeUnion
	default:
		return ShapeScalar
	}
}

// check converts the reader's sticky error into a structured error.
func (c *Cursor) check() error {
	err := c.r.Error
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.TruncatedInput(c.path, err)
	}
	return errs.New(errs.PhaseDecode, errs.KindInvalidData).
		Path(c.path...).
		AvroType(string(c.Type())).
		Cause(err).
		Build()
}

func (c *Cursor) mismatch(want string) error {
	return errs.New(errs.PhaseDecode, errs.KindSchemaMismatch).
		Path(c.path...).
		AvroType(string(c.Type())).
		Detail("cannot read as %s", want).
		Build()
}

func (c *Cursor) invalid(detail string, args ...any) error {
	return errs.New(errs.PhaseDecode, errs.KindInvalidData).
		Path(c.path...).
		AvroType(string(c.Type())).
		Detail(detail, args...).
		Build()
}

// ReadNull consumes a null.
func (c *Cursor) ReadNull() error {
	if c.Type() != avro.Null {
		return c.mismatch("null")
	}
	return nil
}

// ReadBoolean reads a boolean.
func (c *Cursor) ReadBoolean() (bool, error) {
	if c.Type() != avro.Boolean {
		return false, c.mismatch("boolean")
	}
	v := c.r.ReadBool()
	return v, c.check()
}

// ReadInt reads an int.
func (c *Cursor) ReadInt() (int32, error) {
	if c.Type() != avro.Int {
		return 0, c.mismatch("int")
	}
	v := c.r.ReadInt()
	return v, c.check()
}

// ReadLong reads a long, promoting an int.
func (c *Cursor) ReadLong() (int64, error) {
	switch c.Type() {
	case avro.Int:
		v := c.r.ReadInt()
		return int64(v), c.check()
	case avro.Long:
		v := c.r.ReadLong()
		return v, c.check()
	default:
		return 0, c.mismatch("long")
	}
}

// ReadFloat reads a float, promoting an int or a long.
func (c *Cursor) ReadFloat() (float32, error) {
	switch c.Type() {
	case avro.Int, avro.Long:
		v, err := c.ReadLong()
		return float32(v), err
	case avro.Float:
		v := c.r.ReadFloat()
		return v, c.check()
	default:
		return 0, c.mismatch("float")
	}
}

// ReadDouble reads a double, promoting an int, a long or a float.
func (c *Cursor) ReadDouble() (float64, error) {
	switch c.Type() {
	case avro.Int, avro.Long:
		v, err := c.ReadLong()
		return float64(v), err
	case avro.Float:
		v := c.r.ReadFloat()
		return float64(v), c.check()
	case avro.Double:
		v := c.r.ReadDouble()
		return v, c.check()
	default:
		return 0, c.mismatch("double")
	}
}

// ReadString reads a string. Bytes are promoted to string.
func (c *Cursor) ReadString() (string, error) {
	switch c.Type() {
	case avro.String:
		v := c.r.ReadString()
		return v, c.check()
	case avro.Bytes:
		v := c.r.ReadBytes()
		return string(v), c.check()
	default:
		return "", c.mismatch("string")
	}
}

// ReadBytes reads bytes or a fixed. Strings are promoted to bytes.
func (c *Cursor) ReadBytes() ([]byte, error) {
	switch c.Type() {
	case avro.Bytes:
		v := c.r.ReadBytes()
		return v, c.check()
	case avro.String:
		v := c.r.ReadString()
		return []byte(v), c.check()
	case avro.Fixed:
		v := make([]byte, c.schema.(*avro.FixedSchema).Size())
		c.r.Read(v)
		return v, c.check()
	default:
		return nil, c.mismatch("bytes")
	}
}

// ReadEnum reads an enum and returns its ordinal and symbol.
func (c *Cursor) ReadEnum() (int, string, error) {
	enum, ok := c.schema.(*avro.EnumSchema)
	if !ok {
		return 0, "", c.mismatch("enum")
	}
	idx := c.r.ReadInt()
	if err := c.check(); err != nil {
		return 0, "", err
	}
	symbols := enum.Symbols()
	if idx < 0 || int(idx) >= len(symbols) {
		return 0, "", c.invalid("enum ordinal %d out of range (%d symbols)", idx, len(symbols))
	}
	return int(idx), symbols[idx], nil
}

// Field is a record field cursor.
type Field struct {
	*Cursor
	Name string
}

// Record returns cursors for the record's fields in wire order.
func (c *Cursor) Record() ([]Field, error) {
	rec, ok := c.schema.(*avro.RecordSchema)
	if !ok {
		return nil, c.mismatch("record")
	}
	fields := make([]Field, 0, len(rec.Fields()))
	for _, f := range rec.Fields() {
		fields = append(fields, Field{Cursor: c.child(f.Type(), f.Name()), Name: f.Name()})
	}
	return fields, nil
}

// Union reads the discriminant and returns it with the selected member's
// cursor.
func (c *Cursor) Union() (int, *Cursor, error) {
	u, ok := c.schema.(*avro.UnionSchema)
	if !ok {
		return 0, nil, c.mismatch("union")
	}
	disc := c.r.ReadLong()
	if err := c.check(); err != nil {
		return 0, nil, err
	}
	members := u.Types()
	if disc < 0 || disc >= int64(len(members)) {
		return 0, nil, errs.UnknownUnionDiscriminant(c.path, disc, len(members))
	}
	return int(disc), newCursor(c.r, members[disc], c.path), nil
}

// Array returns an iterator over the items of an array.
func (c *Cursor) Array() (*Iterator, error) {
	a, ok := c.schema.(*avro.ArraySchema)
	if !ok {
		return nil, c.mismatch("array")
	}
	return &Iterator{parent: c, elem: a.Items()}, nil
}

// Map returns an iterator over the entries of a map.
func (c *Cursor) Map() (*Iterator, error) {
	m, ok := c.schema.(*avro.MapSchema)
	if !ok {
		return nil, c.mismatch("map")
	}
	return &Iterator{parent: c, elem: m.Values(), keyed: true}, nil
}

// Iterator walks the blocks of an array or map. The value of each step must
// be consumed before Next is called again.
type Iterator struct {
	parent    *Cursor
	elem      avro.Schema
	keyed     bool
	remaining int64
	index     int
	done      bool
	key       string
	cur       *Cursor
	err       error
}

// Next advances to the next item, reading block headers as needed.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	r := it.parent.r
	for it.remaining == 0 {
		count, _ := r.ReadBlockHeader()
		if it.err = it.parent.check(); it.err != nil {
			return false
		}
		if count == 0 {
			it.done = true
			return false
		}
		it.remaining = count
	}
	it.remaining--

	segment := "[" + strconv.Itoa(it.index) + "]"
	if it.keyed {
		it.key = r.ReadString()
		if it.err = it.parent.check(); it.err != nil {
			return false
		}
		segment = "[" + it.key + "]"
	}
	it.cur = it.parent.child(it.elem, segment)
	it.index++
	return true
}

// Value returns the cursor of the current item.
func (it *Iterator) Value() *Cursor { return it.cur }

// Key returns the key of the current map entry.
func (it *Iterator) Key() string { return it.key }

// Index returns the position of the current item.
func (it *Iterator) Index() int { return it.index - 1 }

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error { return it.err }

// Skip consumes the value at the cursor without materializing it.
func (c *Cursor) Skip() error {
	switch c.Type() {
	case avro.Null:
		return nil
	case avro.Boolean:
		c.r.SkipBool()
	case avro.Int, avro.Enum:
		c.r.SkipInt()
	case avro.Long:
		c.r.SkipLong()
	case avro.Float:
		c.r.SkipFloat()
	case avro.Double:
		c.r.SkipDouble()
	case avro.String:
		c.r.SkipString()
	case avro.Bytes:
		c.r.SkipBytes()
	case avro.Fixed:
		c.r.SkipNBytes(c.schema.(*avro.FixedSchema).Size())
	case avro.Record, avro.Error:
		fields, err := c.Record()
		if err != nil {
			return err
		}
		for _, f := range fields {
			if err := f.Skip(); err != nil {
				return err
			}
		}
	case avro.Array, avro.Map:
		return c.skipBlocks()
	case avro.Union:
		_, m, err := c.Union()
		if err != nil {
			return err
		}
		return m.Skip()
	default:
		return c.invalid("cannot skip type %s", c.Type())
	}
	return c.check()
}

// skipBlocks skips an array or map, jumping over whole blocks when the
// writer recorded their byte size.
func (c *Cursor) skipBlocks() error {
	var it *Iterator
	var err error
	if c.Type() == avro.Map {
		it, err = c.Map()
	} else {
		it, err = c.Array()
	}
	if err != nil {
		return err
	}

	for {
		count, size := c.r.ReadBlockHeader()
		if err := c.check(); err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if size > 0 {
			c.r.SkipNBytes(int(size))
			if err := c.check(); err != nil {
				return err
			}
			continue
		}
		for range count {
			if it.keyed {
				c.r.SkipString()
			}
			if err := newCursor(c.r, it.elem, c.path).Skip(); err != nil {
				return err
			}
		}
	}
}
