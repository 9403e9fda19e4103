// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/api2spec/apidoc/pkg/types"
)

var (
	pathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)
	versionRegex   = regexp.MustCompile(`^v\d+$`)
)

// DefaultOperation returns the operation a host framework would register for
// ep before any annotation is applied.
func DefaultOperation(ep types.Endpoint, defaultResponses []string) *types.Operation {
	return &types.Operation{
		OperationID: OperationID(ep.Handler.Verb, ep.Path, ep.Handler.Name),
		Tags:        InferTags(ep.Path),
		Parameters:  PathParameters(ep.Path),
		Responses:   DefaultResponses(defaultResponses),
	}
}

// PathParameters declares a required string parameter for every "{name}"
// segment of path, in order.
func PathParameters(path string) []types.Parameter {
	var params []types.Parameter
	for _, m := range pathParamRegex.FindAllStringSubmatch(path, -1) {
		params = append(params, types.Parameter{
			Name:     m[1],
			In:       "path",
			Required: true,
			Schema:   &types.Schema{Type: "string"},
		})
	}
	return params
}

// DefaultResponses builds the response set for unannotated operations.
// An empty code list yields a single 200 response.
func DefaultResponses(codes []string) *types.OrderedMap[types.Response] {
	responses := types.NewResponses()
	for _, code := range codes {
		code = strings.TrimSpace(code)
		description := "Response " + code
		if n, err := strconv.Atoi(code); err == nil {
			if text := http.StatusText(n); text != "" {
				description = text
			}
		}
		responses.Set(code, types.Response{Description: description})
	}

	if responses.Len() == 0 {
		responses.Set("200", types.Response{Description: http.StatusText(http.StatusOK)})
	}

	return responses
}

// OperationID derives an operation id. The handler name is used when known
// (lower camel case); otherwise it is built from the verb and path, so
// "GET /users/{id}" becomes "getUsersById".
func OperationID(verb types.Verb, path, handler string) string {
	if idx := strings.LastIndex(handler, "."); idx >= 0 {
		handler = handler[idx+1:]
	}
	if handler != "" {
		return lowerFirst(handler)
	}

	method := strings.ToLower(string(verb))
	path = pathParamRegex.ReplaceAllString(path, "By ${1}")
	words := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})

	var sb strings.Builder
	sb.WriteString(method)
	titleCaser := cases.Title(language.English)
	for _, word := range words {
		sb.WriteString(titleCaser.String(strings.ToLower(word)))
	}
	return sb.String()
}

// InferTags infers the tag from the first meaningful path segment, skipping
// "api" and version segments like "v1".
func InferTags(path string) []string {
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "api" || versionRegex.MatchString(part) || strings.HasPrefix(part, "{") {
			continue
		}
		return []string{part}
	}
	return nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
