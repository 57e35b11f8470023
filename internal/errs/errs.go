// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package errs provides the structured error type shared by translation and
// decoding.
//
// Errors carry the Phase they were raised in, a Kind, and the path of the
// value being processed:
//
//	err := errs.New(errs.PhaseDecode, errs.KindMissingRequiredField).
//		Path("order", "customer").
//		Detail("field %q not present in schema", "id").
//		Build()
//
// Matching works with errors.Is against either a fully built error (phase and
// kind compared) or one of the kind-only sentinels such as ErrSchemaMismatch.
package errs

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred.
type Phase string

const (
	PhaseTranslate Phase = "translate" // type model to Avro schema
	PhaseCompile   Phase = "compile"   // Avro schema text to compiled handle
	PhaseDecode    Phase = "decode"    // Avro binary to Go values
	PhaseLoad      Phase = "load"      // schema document loading
)

// Kind categorizes the error.
type Kind string

const (
	KindUnknownReference         Kind = "unknown_reference"
	KindSchemaMismatch           Kind = "schema_mismatch"
	KindTruncatedInput           Kind = "truncated_input"
	KindUnknownUnionDiscriminant Kind = "unknown_union_discriminant"
	KindMissingRequiredField     Kind = "missing_required_field"
	KindInvalidData              Kind = "invalid_data"
	KindUnsupported              Kind = "unsupported"
)

// Kind-only sentinels. errors.Is(err, ErrSchemaMismatch) matches any phase.
var (
	ErrUnknownReference         = &Error{Kind: KindUnknownReference}
	ErrSchemaMismatch           = &Error{Kind: KindSchemaMismatch}
	ErrTruncatedInput           = &Error{Kind: KindTruncatedInput}
	ErrUnknownUnionDiscriminant = &Error{Kind: KindUnknownUnionDiscriminant}
	ErrMissingRequiredField     = &Error{Kind: KindMissingRequiredField}
	ErrInvalidData              = &Error{Kind: KindInvalidData}
	ErrUnsupported              = &Error{Kind: KindUnsupported}
)

// Error is the structured error type.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Avro   string
	Detail string
	Path   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.GoType != "" || e.Avro != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.Avro != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", Avro type ")
			b.WriteString(e.Avro)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("Avro type ")
			b.WriteString(e.Avro)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Avro != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// JoinPath renders a path. Segments starting with '[' (indices, map keys)
// attach to the previous segment without a dot.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the value path. The slice is copied.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = append([]string(nil), path...)
	return b
}

// GoType sets the Go type name.
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// AvroType sets the Avro type name.
func (b *Builder) AvroType(t string) *Builder {
	b.err.Avro = t
	return b
}

// Value sets the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// UnknownReference reports a Reference to a name with no definition.
func UnknownReference(phase Phase, path []string, name string) *Error {
	return New(phase, KindUnknownReference).
		Path(path...).
		Value(name).
		Detail("reference to undefined type %q", name).
		Build()
}

// SchemaMismatch reports a cursor shape that disagrees with the consuming type.
func SchemaMismatch(path []string, goType, avroType string) *Error {
	return New(PhaseDecode, KindSchemaMismatch).
		Path(path...).
		GoType(goType).
		AvroType(avroType).
		Build()
}

// MissingRequiredField reports a consuming-type field the schema does not carry.
func MissingRequiredField(path []string, field string) *Error {
	return New(PhaseDecode, KindMissingRequiredField).
		Path(path...).
		Value(field).
		Detail("required field %q not present in schema", field).
		Build()
}

// UnknownUnionDiscriminant reports a union index outside the member list.
func UnknownUnionDiscriminant(path []string, disc int64, members int) *Error {
	return New(PhaseDecode, KindUnknownUnionDiscriminant).
		Path(path...).
		Value(disc).
		Detail("discriminant %d out of range (%d members)", disc, members).
		Build()
}

// TruncatedInput reports a buffer exhausted mid-value.
func TruncatedInput(path []string, cause error) *Error {
	return New(PhaseDecode, KindTruncatedInput).
		Path(path...).
		Cause(cause).
		Detail("input ended mid-value").
		Build()
}
