// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// OpenAPI is an assembled OpenAPI 3.0 document.
//
// Optional sections are pointers or nil slices so that an absent section can
// be told apart from an empty one: a nil Components or Security is never
// serialized.
type OpenAPI struct {
	// OpenAPI is the OpenAPI specification version (e.g., "3.0.3")
	OpenAPI string `json:"openapi" yaml:"openapi"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Servers is the ordered list of server objects
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`

	// Paths holds the available paths and operations
	Paths map[string]*PathItem `json:"paths" yaml:"paths"`

	// Components holds reusable objects; nil when nothing is registered
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`

	// Security lists alternative security requirements
	Security []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`

	// Tags is the ordered list of document tags
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	// ExternalDocs links to external documentation
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Contact     *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License     *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version     string   `json:"version" yaml:"version"`
}

// Contact provides contact information.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License provides license information.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag represents a tag object.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ExternalDocs provides external documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// PathItem holds the operations available on a single path.
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Operation returns the operation registered for verb, or nil.
func (p *PathItem) Operation(verb Verb) *Operation {
	switch verb {
	case VerbGet:
		return p.Get
	case VerbPut:
		return p.Put
	case VerbPost:
		return p.Post
	case VerbDelete:
		return p.Delete
	case VerbOptions:
		return p.Options
	case VerbHead:
		return p.Head
	case VerbPatch:
		return p.Patch
	case VerbTrace:
		return p.Trace
	}
	return nil
}

// SetOperation registers op for verb. It reports false for an unknown verb.
func (p *PathItem) SetOperation(verb Verb, op *Operation) bool {
	switch verb {
	case VerbGet:
		p.Get = op
	case VerbPut:
		p.Put = op
	case VerbPost:
		p.Post = op
	case VerbDelete:
		p.Delete = op
	case VerbOptions:
		p.Options = op
	case VerbHead:
		p.Head = op
	case VerbPatch:
		p.Patch = op
	case VerbTrace:
		p.Trace = op
	default:
		return false
	}
	return true
}

// Operation represents a single API operation on a path.
type Operation struct {
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string   `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Responses maps status-code keys to responses in declaration order
	Responses *OrderedMap[Response] `json:"responses" yaml:"responses"`
}

// NewResponses returns an empty response set.
func NewResponses() *OrderedMap[Response] {
	return NewOrderedMap[Response]()
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name string `json:"name" yaml:"name"`

	// In is the parameter location (path, query, header, cookie)
	In string `json:"in" yaml:"in"`

	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response represents an OpenAPI response.
type Response struct {
	// Description is required by OpenAPI
	Description string `json:"description" yaml:"description"`

	// Content maps media types to their schemas
	Content map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType represents an OpenAPI media type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Components holds reusable objects.
type Components struct {
	// Schemas is a map of schema objects
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`

	// SecuritySchemes holds the advertised schemes in assembly order
	SecuritySchemes *OrderedMap[*SecurityScheme] `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// SecurityRequirement names the schemes that must all be satisfied.
// A document lists several requirements when any one of them suffices.
type SecurityRequirement map[string][]string

// SecurityScheme represents a security scheme object.
type SecurityScheme struct {
	// Type is one of apiKey, http, oauth2
	Type string `json:"type" yaml:"type"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Name is the header, query or cookie parameter name for apiKey schemes
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// In is the apiKey location (query, header, cookie)
	In string `json:"in,omitempty" yaml:"in,omitempty"`

	// Scheme is the HTTP authorization scheme (basic, bearer)
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`

	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`

	Flows *OAuthFlows `json:"flows,omitempty" yaml:"flows,omitempty"`
}

// OAuthFlows represents OAuth2 flow definitions.
// Only the authorization code flow is produced.
type OAuthFlows struct {
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty" yaml:"authorizationCode,omitempty"`
}

// OAuthFlow represents an OAuth2 flow.
type OAuthFlow struct {
	AuthorizationURL string `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`
	TokenURL         string `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty"`
	RefreshURL       string `json:"refreshUrl,omitempty" yaml:"refreshUrl,omitempty"`

	// Scopes is required by OpenAPI and may be empty
	Scopes map[string]string `json:"scopes" yaml:"scopes"`
}
