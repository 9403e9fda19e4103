// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/api2spec/apidoc/pkg/types"
)

// JSONMediaType is the media type of success bodies.
const JSONMediaType = "application/json"

// Enricher rewrites operations from their handler annotations.
type Enricher struct {
	log logrus.FieldLogger
}

// NewEnricher creates an enricher. A nil logger uses the standard logger.
func NewEnricher(log logrus.FieldLogger) *Enricher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Enricher{log: log}
}

// Enrich applies ann to op and returns it. Without an annotation op is
// returned untouched. With one, the summary is set and the response set is
// replaced by the success response (when a body type is declared) followed
// by the declared errors in order.
//
// Enrich never fails: unknown status codes get placeholder descriptions.
func (e *Enricher) Enrich(op *types.Operation, sig types.HandlerSignature, ann *types.Annotation) *types.Operation {
	if ann == nil {
		return op
	}
	if op == nil {
		op = &types.Operation{}
	}

	log := e.log.WithField("handler", sig.Name)

	op.Summary = ann.Summary
	op.Responses = types.NewResponses()

	if ann.Success != nil && !ann.Success.IsNoBody() {
		code := SuccessStatus(sig.Verb)
		resp := types.Response{
			Description: statusDescription(code, "Status"),
		}
		if code >= 200 && code < 600 {
			resp.Content = map[string]types.MediaType{
				JSONMediaType: {Schema: types.SchemaRef(ann.Success.Name)},
			}
		}
		op.Responses.Set(strconv.Itoa(code), resp)
	}

	for _, raw := range ann.Errors {
		key, resp := parseErrorResponse(raw)
		if key == "" {
			log.WithField("declaration", raw).Warn("error declaration has an empty status code")
		}
		if op.Responses.Set(key, resp) {
			log.WithField("code", key).Warn("duplicate response code, last declaration wins")
		}
	}

	return op
}

// SuccessStatus infers the success status code from the handler verb.
func SuccessStatus(verb types.Verb) int {
	switch verb {
	case types.VerbPost:
		return http.StatusCreated
	case types.VerbDelete:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

// parseErrorResponse splits "<code>[:<description>]" on the first colon.
// Without a description the standard reason phrase is used, or
// "Error <code>" when the code is not a known status.
func parseErrorResponse(raw string) (string, types.Response) {
	code, description, _ := strings.Cut(raw, ":")
	code = strings.TrimSpace(code)
	description = strings.TrimSpace(description)

	if description == "" {
		description = "Error " + code
		if n, err := strconv.Atoi(code); err == nil {
			if text := http.StatusText(n); text != "" {
				description = text
			}
		}
	}

	return code, types.Response{Description: description}
}

// statusDescription returns the reason phrase for code, or
// "<prefix> <code>" when there is none.
func statusDescription(code int, prefix string) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return prefix + " " + strconv.Itoa(code)
}
