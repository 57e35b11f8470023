// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package reflectschema

import (
	"reflect"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/dacolabs/avrokit/internal/typemodel"
)

type widths struct {
	A int8
	B int16
	C int32
	D int64
	E int
	F uint8
	G uint16
	H uint32
	I uint64
	J uint
	K float32
	L float64
	S string
	T bool
}

type node struct {
	Value    int32  `json:"value"`
	Next     *node  `json:"next"`
	Children []node `json:"children,omitempty"`
}

type status string

func (status) JSONSchemaExtend(s *jsonschema.Schema) {
	s.Enum = []any{"OPEN", "CLOSED"}
}

type ticket struct {
	ID     int64            `json:"id"`
	Status status           `json:"status"`
	Labels map[string]int32 `json:"labels"`
	Tags   []string         `json:"tags"`
	Ignore string           `json:"-"`
}

type circle struct {
	Radius float64 `json:"radius"`
}

type square struct {
	Side float64 `json:"side"`
}

type shape struct {
	Circle *circle
	Square *square
}

func (shape) IsOneOf() {}

type drawing struct {
	Shape shape   `json:"shape"`
	Label *string `json:"label"`
}

type badUnion struct {
	A string
}

func (badUnion) IsOneOf() {}

func TestFor_IntegerWidths(t *testing.T) {
	def, err := For[widths]()
	require.NoError(t, err)

	assert.Equal(t, tm.Ref("widths"), def.Root)
	assert.Equal(t, tm.Obj(
		tm.F("A", tm.I32()),
		tm.F("B", tm.I32()),
		tm.F("C", tm.I32()),
		tm.F("D", tm.I64()),
		tm.F("E", tm.I64()),
		tm.F("F", tm.I32()),
		tm.F("G", tm.I32()),
		tm.F("H", tm.U32()),
		tm.F("I", tm.U64()),
		tm.F("J", tm.U64()),
		tm.F("K", tm.F32()),
		tm.F("L", tm.F64()),
		tm.F("S", tm.Str()),
		tm.F("T", tm.Bool()),
	), def.Definitions["widths"])
}

func TestFor_RecursiveStruct(t *testing.T) {
	def, err := For[node]()
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	assert.Equal(t, tm.Ref("node"), def.Root)
	assert.Equal(t, tm.Obj(
		tm.F("value", tm.I32()),
		tm.F("next", tm.Opt(tm.Ref("node"))),
		tm.F("children", tm.Opt(tm.ArrayOf(tm.Ref("node")))),
	), def.Definitions["node"])
}

func TestFor_FieldsAndEnums(t *testing.T) {
	def, err := For[*ticket]()
	require.NoError(t, err)

	obj, ok := def.Definitions["ticket"].(tm.Object)
	require.True(t, ok)

	var names []string
	for _, f := range obj.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "status", "labels", "tags"}, names)

	assert.Equal(t, tm.I64(), obj.Fields[0].Type)
	assert.Equal(t, tm.Lit("OPEN", "CLOSED"), resolve(def, obj.Fields[1].Type))
	assert.Equal(t, tm.MapOf(tm.I32()), resolve(def, obj.Fields[2].Type))
	assert.Equal(t, tm.ArrayOf(tm.Str()), obj.Fields[3].Type)
}

func TestFor_OneOf(t *testing.T) {
	def, err := For[drawing]()
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	assert.Equal(t, tm.Obj(
		tm.F("shape", tm.Ref("shape")),
		tm.F("label", tm.Opt(tm.Str())),
	), def.Definitions["drawing"])
	assert.Equal(t, tm.OneOf(tm.Ref("circle"), tm.Ref("square")), def.Definitions["shape"])
	assert.Equal(t, tm.Obj(tm.F("radius", tm.F64())), def.Definitions["circle"])
}

func TestFor_OneOfRequiresPointers(t *testing.T) {
	_, err := For[badUnion]()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a pointer")
}

func TestSchema_NilType(t *testing.T) {
	_, err := Schema(nil)
	assert.Error(t, err)
}

func TestForType_Scalar(t *testing.T) {
	def, err := ForType(reflect.TypeFor[[]uint16]())
	require.NoError(t, err)
	assert.Equal(t, tm.ArrayOf(tm.I32()), def.Root)
	assert.Empty(t, def.Definitions)
}

// resolve follows references to their definitions.
func resolve(def *tm.Definition, t tm.Type) tm.Type {
	for {
		ref, ok := t.(tm.Reference)
		if !ok {
			return t
		}
		t = def.Definitions[ref.Name]
	}
}
