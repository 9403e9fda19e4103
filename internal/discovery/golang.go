// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package discovery

import (
	"strings"

	"github.com/juju/errors"

	"github.com/api2spec/apidoc/internal/parser"
	"github.com/api2spec/apidoc/internal/scanner"
	"github.com/api2spec/apidoc/pkg/types"
)

// Go doc-comment directives.
const (
	DirectiveRoute   = "@Route"
	DirectiveSummary = "@Summary"
	DirectiveSuccess = "@Success"
	DirectiveError   = "@Error"
)

// GoSource reads handler directives from Go doc comments:
//
//	// @Route GET /users/{id}
//	// @Summary Get a user
//	// @Success User
//	// @Error 404:User not found
//	func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request)
//
// "@Success void" declares a success without a body. @Error may repeat.
// A @Route without @Summary is discovered without an annotation.
type GoSource struct{}

// NewGoSource creates the Go directive source.
func NewGoSource() *GoSource {
	return &GoSource{}
}

// Name implements Source.
func (s *GoSource) Name() string { return "go" }

// Language implements Source.
func (s *GoSource) Language() string { return scanner.LanguageGo }

// Discover implements Source.
func (s *GoSource) Discover(file scanner.SourceFile) (*Result, error) {
	p := parser.NewGoParser()
	pf, err := p.Parse(file.RelPath, file.Content)
	if err != nil {
		return nil, errors.Trace(err)
	}

	result := &Result{
		Structs: p.ExtractStructs(pf),
	}

	for _, fn := range p.ExtractFuncs(pf) {
		ep, err := s.endpoint(fn, file)
		if err != nil {
			result.Issues = append(result.Issues, errors.Annotatef(err, "%s:%d", file.RelPath, fn.Line))
		}
		if ep != nil {
			result.Endpoints = append(result.Endpoints, *ep)
		}
	}

	return result, nil
}

// endpoint reads the directives of one function. It returns a nil endpoint
// for functions without @Route. An error reports dropped directives; the
// endpoint may still be returned without its annotation.
func (s *GoSource) endpoint(fn parser.FuncDecl, file scanner.SourceFile) (*types.Endpoint, error) {
	var (
		route    string
		routeSet bool
		ann      annotationBuilder
	)

	for _, line := range fn.Doc {
		directive, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch directive {
		case DirectiveRoute:
			if routeSet {
				return nil, errors.NotValidf("second %s on %s", DirectiveRoute, fn.QualifiedName())
			}
			route, routeSet = arg, true
		case DirectiveSummary:
			ann.summary = arg
			ann.hasSummary = true
		case DirectiveSuccess:
			if arg == "" {
				return nil, errors.NotValidf("empty %s on %s", DirectiveSuccess, fn.QualifiedName())
			}
			ann.success = types.Ref(arg)
		case DirectiveError:
			ann.errors = append(ann.errors, arg)
		}
	}

	if !routeSet {
		if ann.declared() {
			return nil, errors.NotValidf("annotation without %s on %s", DirectiveRoute, fn.QualifiedName())
		}
		return nil, nil
	}

	method, path, _ := strings.Cut(route, " ")
	verb, ok := types.ParseVerb(method)
	path = strings.TrimSpace(path)
	if !ok || !strings.HasPrefix(path, "/") {
		return nil, errors.NotValidf("route %q on %s", route, fn.QualifiedName())
	}

	ep := &types.Endpoint{
		Path: path,
		Handler: types.HandlerSignature{
			Name: fn.QualifiedName(),
			Verb: verb,
		},
		Package:    file.Dir(),
		SourceFile: file.RelPath,
		SourceLine: fn.Line,
	}

	annotation, err := ann.build()
	if err != nil {
		return ep, errors.NewNotValid(err, fn.QualifiedName())
	}
	ep.Annotation = annotation
	return ep, nil
}
