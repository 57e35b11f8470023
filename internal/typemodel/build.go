// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typemodel

// Shorthand constructors for building models by hand.

func Bool() Type                   { return Boolean{} }
func I32() Type                    { return Integer{Kind: Int32} }
func U32() Type                    { return Integer{Kind: UInt32} }
func I64() Type                    { return Integer{Kind: Int64} }
func U64() Type                    { return Integer{Kind: UInt64} }
func F32() Type                    { return Float{Kind: Float32} }
func F64() Type                    { return Float{Kind: Float64} }
func Str() Type                    { return String{} }
func Opt(t Type) Type              { return Optional{Type: t} }
func Ref(name string) Type         { return Reference{Name: name} }
func ArrayOf(item Type) Type       { return Array{Item: item} }
func MapOf(value Type) Type        { return StringMap{Value: value} }
func OneOf(types ...Type) Type     { return AnyOf{Types: types} }
func Lit(values ...string) Type    { return Literal{Values: values} }
func TupleOf(types ...Type) Type   { return Tuple{Types: types} }
func F(name string, t Type) Field  { return Field{Name: name, Type: t} }
func Obj(fields ...Field) Type     { return Object{Fields: fields} }
func Doc(t Type, text string) Type { return Description{Type: t, Text: text} }

// FixedOf builds a fixed-size array.
func FixedOf(item Type, size int) Type {
	return FixedArray{Item: item, Size: size}
}
