// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package avroschema models the Avro type algebra as an owned tree.
//
// Composite nodes own their children exclusively and the tree never contains
// a cycle: recursion is expressed with Reference nodes naming a record or enum
// declared elsewhere in the same document.
package avroschema

// Type identifies a schema variant. The values match the Avro JSON type names
// where one exists.
type Type string

const (
	TypeNull      Type = "null"
	TypeBoolean   Type = "boolean"
	TypeInt       Type = "int"
	TypeLong      Type = "long"
	TypeFloat     Type = "float"
	TypeDouble    Type = "double"
	TypeString    Type = "string"
	TypeEnum      Type = "enum"
	TypeArray     Type = "array"
	TypeMap       Type = "map"
	TypeRecord    Type = "record"
	TypeUnion     Type = "union"
	TypeReference Type = "reference"
)

// Schema is a node of the Avro schema tree.
type Schema interface {
	Type() Type
	schema()
}

type (
	Null    struct{}
	Boolean struct{}
	Int     struct{}
	Long    struct{}
	Float   struct{}
	Double  struct{}
	String  struct{}
)

// Enum is a named set of symbols.
type Enum struct {
	Name      string
	Namespace string
	Symbols   []string
}

// Array is a sequence of Items.
type Array struct {
	Items Schema
}

// Map is a string-keyed map of Values.
type Map struct {
	Values Schema
}

// Field is a named record member.
type Field struct {
	Name string
	Type Schema
}

// Record is a named product type.
type Record struct {
	Name      string
	Namespace string
	Fields    []Field
}

// Union is an ordered list of alternatives. Member uniqueness is not checked.
type Union struct {
	Types []Schema
}

// Reference names a record or enum declared elsewhere in the document.
type Reference struct {
	Name string
}

func (Null) Type() Type       { return TypeNull }
func (Boolean) Type() Type    { return TypeBoolean }
func (Int) Type() Type        { return TypeInt }
func (Long) Type() Type       { return TypeLong }
func (Float) Type() Type      { return TypeFloat }
func (Double) Type() Type     { return TypeDouble }
func (String) Type() Type     { return TypeString }
func (*Enum) Type() Type      { return TypeEnum }
func (*Array) Type() Type     { return TypeArray }
func (*Map) Type() Type       { return TypeMap }
func (*Record) Type() Type    { return TypeRecord }
func (*Union) Type() Type     { return TypeUnion }
func (*Reference) Type() Type { return TypeReference }

func (Null) schema()       {}
func (Boolean) schema()    {}
func (Int) schema()        {}
func (Long) schema()       {}
func (Float) schema()      {}
func (Double) schema()     {}
func (String) schema()     {}
func (*Enum) schema()      {}
func (*Array) schema()     {}
func (*Map) schema()       {}
func (*Record) schema()    {}
func (*Union) schema()     {}
func (*Reference) schema() {}
