// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package discovery

import (
	"path"
	"strings"

	"github.com/juju/errors"

	"github.com/api2spec/apidoc/internal/parser"
	"github.com/api2spec/apidoc/internal/scanner"
	"github.com/api2spec/apidoc/pkg/types"
)

// ApiAnnotation is the handler documentation annotation read by JavaSource:
//
//	@Api(summary = "Get user", success = UserDto.class, errors = {"404:Not found"})
const ApiAnnotation = "Api"

// mappingVerbs maps Spring shortcut mapping annotations to their verbs.
var mappingVerbs = map[string]types.Verb{
	"GetMapping":    types.VerbGet,
	"PostMapping":   types.VerbPost,
	"PutMapping":    types.VerbPut,
	"PatchMapping":  types.VerbPatch,
	"DeleteMapping": types.VerbDelete,
}

const requestMapping = "RequestMapping"

// JavaSource discovers Spring MVC controller methods. Paths come from the
// class-level @RequestMapping prefix and the method mapping annotation,
// documentation from @Api. Void.class as success declares no body.
type JavaSource struct{}

// NewJavaSource creates the Spring source.
func NewJavaSource() *JavaSource {
	return &JavaSource{}
}

// Name implements Source.
func (s *JavaSource) Name() string { return "spring" }

// Language implements Source.
func (s *JavaSource) Language() string { return scanner.LanguageJava }

// Discover implements Source.
func (s *JavaSource) Discover(file scanner.SourceFile) (*Result, error) {
	pf, err := parser.NewJavaParser().Parse(file.RelPath, file.Content)
	if err != nil {
		return nil, errors.Trace(err)
	}

	result := &Result{}
	for _, class := range pf.Classes {
		prefixes := []string{""}
		if mapping := class.GetAnnotation(requestMapping); mapping != nil {
			if p := mappingPaths(mapping); len(p) > 0 {
				prefixes = p
			}
		}

		for _, method := range class.Methods {
			eps, err := s.endpoints(pf.Package, class, method, prefixes, file)
			if err != nil {
				result.Issues = append(result.Issues, errors.Annotatef(err, "%s:%d", file.RelPath, method.Line))
			}
			result.Endpoints = append(result.Endpoints, eps...)
		}
	}

	return result, nil
}

func (s *JavaSource) endpoints(pkg string, class parser.JavaClass, method parser.JavaMethod, prefixes []string, file scanner.SourceFile) ([]types.Endpoint, error) {
	handler := class.Name + "." + method.Name

	verbs, paths, mapped := methodMapping(&method)
	api := method.GetAnnotation(ApiAnnotation)
	if !mapped {
		if api != nil {
			return nil, errors.NotValidf("@%s without a request mapping on %s", ApiAnnotation, handler)
		}
		return nil, nil
	}
	if len(verbs) == 0 {
		return nil, errors.NotValidf("request mapping without a supported method on %s", handler)
	}

	var (
		annotation *types.Annotation
		annErr     error
	)
	if api != nil {
		annotation, annErr = apiAnnotation(api)
		if annErr != nil {
			annErr = errors.NewNotValid(annErr, handler)
		}
	}

	var eps []types.Endpoint
	for _, prefix := range prefixes {
		for _, p := range paths {
			for _, verb := range verbs {
				eps = append(eps, types.Endpoint{
					Path: joinPath(prefix, p),
					Handler: types.HandlerSignature{
						Name: handler,
						Verb: verb,
					},
					Annotation: annotation,
					Package:    pkg,
					SourceFile: file.RelPath,
					SourceLine: method.Line,
				})
			}
		}
	}
	return eps, annErr
}

// methodMapping returns the verbs and paths of a handler method. mapped is
// false when the method carries no mapping annotation.
func methodMapping(method *parser.JavaMethod) (verbs []types.Verb, paths []string, mapped bool) {
	for i := range method.Annotations {
		anno := &method.Annotations[i]

		if verb, ok := mappingVerbs[anno.Name]; ok {
			return []types.Verb{verb}, pathsOrRoot(anno), true
		}

		if anno.Name == requestMapping {
			for _, m := range anno.Values("method") {
				name := m[strings.LastIndex(m, ".")+1:]
				if verb, ok := types.ParseVerb(name); ok {
					verbs = append(verbs, verb)
				}
			}
			return verbs, pathsOrRoot(anno), true
		}
	}
	return nil, nil, false
}

func apiAnnotation(api *parser.JavaAnnotation) (*types.Annotation, error) {
	b := annotationBuilder{}
	if summary, ok := api.Value("summary"); ok {
		b.summary = summary
		b.hasSummary = true
	}
	if success, ok := api.Value("success"); ok {
		b.success = types.Ref(success)
	}
	b.errors = append(b.errors, api.Values("errors")...)

	ann, err := b.build()
	if err != nil {
		return nil, err
	}
	if ann == nil {
		// @Api with no attributes
		return nil, types.ErrMissingSummary
	}
	return ann, nil
}

// mappingPaths returns the "value" or "path" attribute of a mapping annotation.
func mappingPaths(anno *parser.JavaAnnotation) []string {
	if values := anno.Values("value"); len(values) > 0 {
		return values
	}
	return anno.Values("path")
}

func pathsOrRoot(anno *parser.JavaAnnotation) []string {
	if paths := mappingPaths(anno); len(paths) > 0 {
		return paths
	}
	return []string{""}
}

// joinPath joins a controller prefix and a method path into a clean
// absolute path without a trailing slash.
func joinPath(prefix, p string) string {
	return path.Clean("/" + strings.Trim(prefix, "/") + "/" + strings.Trim(p, "/"))
}
