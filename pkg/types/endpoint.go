// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the OpenAPI document model and the endpoint
// descriptions the generator consumes.
package types

import (
	"errors"
	"reflect"
	"strings"
)

// Verb classifies a handler by its HTTP method semantics.
type Verb string

// Handler verbs.
const (
	VerbGet     Verb = "GET"
	VerbPost    Verb = "POST"
	VerbPut     Verb = "PUT"
	VerbPatch   Verb = "PATCH"
	VerbDelete  Verb = "DELETE"
	VerbHead    Verb = "HEAD"
	VerbOptions Verb = "OPTIONS"
	VerbTrace   Verb = "TRACE"
)

// Verbs lists every known verb in path item order.
var Verbs = []Verb{VerbGet, VerbPut, VerbPost, VerbDelete, VerbOptions, VerbHead, VerbPatch, VerbTrace}

// ParseVerb parses an HTTP method name, ignoring case.
func ParseVerb(s string) (Verb, bool) {
	v := Verb(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Verbs {
		if v == known {
			return v, true
		}
	}
	return "", false
}

// HandlerSignature is what the generator knows about a request handler.
type HandlerSignature struct {
	// Name is the handler function or method name
	Name string

	// Verb is the HTTP method the handler is mapped to
	Verb Verb
}

// TypeRef refers to a payload type by its simple schema name.
// A TypeRef with an empty name declares a success without a body.
type TypeRef struct {
	Name string
}

// Ref returns a reference to the named type. Package qualifiers, pointer and
// slice markers and a trailing ".class" are stripped.
func Ref(name string) *TypeRef {
	return &TypeRef{Name: SimpleName(name)}
}

// NoBody declares a success response without a payload.
func NoBody() *TypeRef {
	return &TypeRef{}
}

// TypeOf returns a reference to the Go type T. Pointers, slices and arrays
// refer to their element type. It panics unless the element is a named type
// declared in a package.
func TypeOf[T any]() *TypeRef {
	t := reflect.TypeFor[T]()
	for k := t.Kind(); k == reflect.Pointer || k == reflect.Slice || k == reflect.Array; k = t.Kind() {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		panic("types: TypeOf needs a named type, got " + t.String())
	}
	return &TypeRef{Name: t.Name()}
}

// IsNoBody reports whether the reference declares an empty body.
func (t *TypeRef) IsNoBody() bool {
	return t != nil && t.Name == ""
}

// SimpleName reduces a qualified type expression to its last identifier.
//
//	"*dto.User"          -> "User"
//	"com.acme.UserDto"   -> "UserDto"
//	"UserDto.class"      -> "UserDto"
func SimpleName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".class")
	name = strings.TrimLeft(name, "*[]")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if strings.EqualFold(name, "void") {
		return ""
	}
	return name
}

// ErrMissingSummary is returned for an annotation without a summary.
var ErrMissingSummary = errors.New("annotation summary is required")

// Annotation is the documentation declared on a handler.
type Annotation struct {
	// Summary is a short human description of the operation (required)
	Summary string

	// Success is the success payload type. Nil means no success type was
	// declared; NoBody means a success without a body was declared.
	Success *TypeRef

	// Errors are raw "<statusCode>[:<description>]" declarations
	Errors []string
}

// Validate checks the annotation's required fields.
func (a *Annotation) Validate() error {
	if strings.TrimSpace(a.Summary) == "" {
		return ErrMissingSummary
	}
	return nil
}

// Endpoint is a discovered request handler bound to a path.
type Endpoint struct {
	// Path is the URL path template (e.g., "/users/{id}")
	Path string

	// Handler describes the handler's name and verb
	Handler HandlerSignature

	// Annotation is the declared documentation; nil when the handler has none
	Annotation *Annotation

	// Package is the Java package or Go package directory of the handler
	Package string

	// SourceFile is the file where the handler was defined
	SourceFile string

	// SourceLine is the line number where the handler was defined
	SourceLine int
}
