// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package discovery finds annotated request handlers in source files and
// turns them into endpoints for the document generator.
package discovery

import (
	"github.com/api2spec/apidoc/internal/parser"
	"github.com/api2spec/apidoc/internal/scanner"
	"github.com/api2spec/apidoc/pkg/types"
)

// Source extracts endpoints from the files of one language.
type Source interface {
	// Name returns the source identifier (e.g., "go", "spring").
	Name() string

	// Language returns the scanner language this source reads.
	Language() string

	// Discover extracts endpoints and data types from a single file.
	// A returned error means the file could not be read at all; malformed
	// annotations are reported in Result.Issues instead.
	Discover(file scanner.SourceFile) (*Result, error)
}

// Result holds what was discovered in one or more files.
type Result struct {
	// Endpoints are listed in file then declaration order
	Endpoints []types.Endpoint

	// Structs are Go struct definitions usable as component schemas
	Structs []parser.StructDefinition

	// Issues are NotValid errors for annotations that were dropped
	Issues []error
}

// Merge appends other to r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Endpoints = append(r.Endpoints, other.Endpoints...)
	r.Structs = append(r.Structs, other.Structs...)
	r.Issues = append(r.Issues, other.Issues...)
}

// annotationBuilder collects the pieces of an annotation as they are read.
type annotationBuilder struct {
	summary    string
	hasSummary bool
	success    *types.TypeRef
	errors     []string
}

// declared reports whether any annotation element was written.
func (b *annotationBuilder) declared() bool {
	return b.hasSummary || b.success != nil || len(b.errors) > 0
}

// build returns the annotation, nil when nothing was declared, or an error
// when the declaration is incomplete.
func (b *annotationBuilder) build() (*types.Annotation, error) {
	if !b.declared() {
		return nil, nil
	}
	ann := &types.Annotation{
		Summary: b.summary,
		Success: b.success,
		Errors:  b.errors,
	}
	if err := ann.Validate(); err != nil {
		return nil, err
	}
	return ann, nil
}
