// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typemodel defines the source-side description of a value's shape.
//
// The variant set is closed. Every consumer dispatches through Visitor, so
// adding a variant means adding a Visitor method, and any consumer that has
// not been updated stops compiling.
package typemodel

// Type is a node of the type model.
type Type interface {
	Accept(v Visitor) error
}

// Visitor has one method per Type variant.
type Visitor interface {
	VisitBoolean(Boolean) error
	VisitInteger(Integer) error
	VisitFloat(Float) error
	VisitString(String) error
	VisitOptional(Optional) error
	VisitAnyOf(AnyOf) error
	VisitObject(Object) error
	VisitFixedArray(FixedArray) error
	VisitArray(Array) error
	VisitStringMap(StringMap) error
	VisitLiteral(Literal) error
	VisitTuple(Tuple) error
	VisitReference(Reference) error
	VisitValidated(Validated) error
	VisitDescription(Description) error
}

// IntKind is the width class of an integer.
type IntKind int

const (
	// Int is an integer of unspecified width.
	Int IntKind = iota
	Int32
	UInt32
	Int64
	UInt64
)

func (k IntKind) String() string {
	switch k {
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	default:
		return "integer"
	}
}

// FloatKind is the precision of a floating point number.
type FloatKind int

const (
	Float64 FloatKind = iota
	Float32
)

func (k FloatKind) String() string {
	if k == Float32 {
		return "float"
	}
	return "double"
}

// Boolean is a true/false value.
type Boolean struct{}

// Integer is a signed or unsigned integer.
type Integer struct {
	Kind IntKind
}

// Float is a floating point number.
type Float struct {
	Kind FloatKind
}

// String is a UTF-8 string.
type String struct{}

// Optional is a value that may be absent.
type Optional struct {
	Type Type
}

// AnyOf is a tagged union of ordered alternatives.
type AnyOf struct {
	Types []Type
}

// Field is a named member of an Object.
type Field struct {
	Name string
	Type Type
}

// Object is a product type with named, ordered fields.
type Object struct {
	Fields []Field
}

// FixedArray is an array whose length is part of the type.
type FixedArray struct {
	Item Type
	Size int
}

// Array is a variable-length array.
type Array struct {
	Item Type
}

// StringMap is a map keyed by strings.
type StringMap struct {
	Value Type
}

// Literal is a closed, ordered set of allowed string values.
type Literal struct {
	Values []string
}

// Tuple is a product type with positional fields.
type Tuple struct {
	Types []Type
}

// Reference names a type held in Definition.Definitions.
type Reference struct {
	Name string
}

// Constraints is validation metadata attached by Validated. It is carried
// through the model untouched.
type Constraints struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
	MinLength        *int
	MaxLength        *int
	Pattern          string
	MinItems         *int
	MaxItems         *int
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return c == Constraints{}
}

// Validated wraps a type with validation constraints.
type Validated struct {
	Type        Type
	Constraints Constraints
}

// Description wraps a type with documentation text.
type Description struct {
	Type Type
	Text string
}

func (t Boolean) Accept(v Visitor) error     { return v.VisitBoolean(t) }
func (t Integer) Accept(v Visitor) error     { return v.VisitInteger(t) }
func (t Float) Accept(v Visitor) error       { return v.VisitFloat(t) }
func (t String) Accept(v Visitor) error      { return v.VisitString(t) }
func (t Optional) Accept(v Visitor) error    { return v.VisitOptional(t) }
func (t AnyOf) Accept(v Visitor) error       { return v.VisitAnyOf(t) }
func (t Object) Accept(v Visitor) error      { return v.VisitObject(t) }
func (t FixedArray) Accept(v Visitor) error  { return v.VisitFixedArray(t) }
func (t Array) Accept(v Visitor) error       { return v.VisitArray(t) }
func (t StringMap) Accept(v Visitor) error   { return v.VisitStringMap(t) }
func (t Literal) Accept(v Visitor) error     { return v.VisitLiteral(t) }
func (t Tuple) Accept(v Visitor) error       { return v.VisitTuple(t) }
func (t Reference) Accept(v Visitor) error   { return v.VisitReference(t) }
func (t Validated) Accept(v Visitor) error   { return v.VisitValidated(t) }
func (t Description) Accept(v Visitor) error { return v.VisitDescription(t) }
