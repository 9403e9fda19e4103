// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema converts discovered Go struct definitions into component
// schemas so that success payload references resolve.
package schema

import (
	"strconv"
	"strings"

	"github.com/api2spec/apidoc/internal/parser"
	"github.com/api2spec/apidoc/pkg/types"
)

// GoSchemaExtractor converts Go struct definitions to schemas and records
// them in a registry.
type GoSchemaExtractor struct {
	registry *Registry
}

// NewGoSchemaExtractor creates an extractor. A nil registry gets a fresh one.
func NewGoSchemaExtractor(registry *Registry) *GoSchemaExtractor {
	if registry == nil {
		registry = NewRegistry()
	}
	return &GoSchemaExtractor{
		registry: registry,
	}
}

// Registry returns the registry schemas are recorded in.
func (e *GoSchemaExtractor) Registry() *Registry {
	return e.registry
}

// ExtractFromStruct converts def to an object schema and registers it under
// the struct name together with its embedded types.
func (e *GoSchemaExtractor) ExtractFromStruct(def parser.StructDefinition) *types.Schema {
	schema := e.objectSchema(def.Fields)
	schema.Title = def.Name
	schema.Description = def.Description

	if def.Name != "" {
		e.registry.Add(def.Name, schema)
		if len(def.Embedded) > 0 {
			e.registry.Embed(def.Name, embeddedNames(def.Embedded))
		}
	}
	return schema
}

// ExtractAll converts every definition and returns the number registered.
func (e *GoSchemaExtractor) ExtractAll(defs []parser.StructDefinition) int {
	for _, def := range defs {
		e.ExtractFromStruct(def)
	}
	return len(defs)
}

func (e *GoSchemaExtractor) objectSchema(fields []parser.StructField) *types.Schema {
	schema := &types.Schema{
		Type:       "object",
		Properties: make(map[string]*types.Schema),
	}

	for _, field := range fields {
		if field.JSONName == "-" {
			continue
		}
		schema.Properties[field.JSONName] = e.fieldSchema(field)
		if field.IsRequired {
			schema.Required = append(schema.Required, field.JSONName)
		}
	}
	return schema
}

func (e *GoSchemaExtractor) fieldSchema(field parser.StructField) *types.Schema {
	var schema *types.Schema
	if len(field.NestedStruct) > 0 {
		schema = e.objectSchema(field.NestedStruct)
	} else {
		schema = typeSchema(field.Type)
	}

	if field.Description != "" && schema.Ref == "" {
		schema.Description = field.Description
	}
	applyValidationTags(schema, field.ValidationTags)
	return schema
}

// typeSchema maps a Go type expression to a schema. Pointers become nullable
// and named types become component references.
func typeSchema(typ string) *types.Schema {
	switch {
	case strings.HasPrefix(typ, "*"):
		schema := typeSchema(typ[1:])
		if schema.Ref == "" {
			schema.Nullable = true
		}
		return schema
	case typ == "[]byte":
		return &types.Schema{Type: "string", Format: "byte"}
	case strings.HasPrefix(typ, "[]"):
		return &types.Schema{Type: "array", Items: typeSchema(typ[2:])}
	case strings.HasPrefix(typ, "["):
		// fixed-size array
		if end := strings.Index(typ, "]"); end > 0 {
			return &types.Schema{Type: "array", Items: typeSchema(typ[end+1:])}
		}
	case strings.HasPrefix(typ, "map["):
		if _, value, ok := cutMapType(typ); ok {
			return &types.Schema{Type: "object", AdditionalProperties: typeSchema(value)}
		}
		return &types.Schema{Type: "object"}
	}

	if schema, ok := wellKnownSchema(typ); ok {
		return schema
	}
	if parser.IsGoPrimitive(typ) {
		return primitiveSchema(typ)
	}
	switch typ {
	case "interface{}", "any", "struct{}", "unknown", "chan", "func":
		return &types.Schema{}
	}
	return types.SchemaRef(types.SimpleName(typ))
}

func primitiveSchema(typ string) *types.Schema {
	switch typ {
	case "string":
		return &types.Schema{Type: "string"}
	case "bool":
		return &types.Schema{Type: "boolean"}
	case "float32":
		return &types.Schema{Type: "number", Format: "float"}
	case "float64":
		return &types.Schema{Type: "number", Format: "double"}
	case "int32", "rune":
		return &types.Schema{Type: "integer", Format: "int32"}
	case "int64":
		return &types.Schema{Type: "integer", Format: "int64"}
	}
	return &types.Schema{Type: "integer"}
}

func wellKnownSchema(typ string) (*types.Schema, bool) {
	switch typ {
	case "time.Time":
		return &types.Schema{Type: "string", Format: "date-time"}, true
	case "time.Duration":
		return &types.Schema{Type: "integer", Format: "int64"}, true
	case "uuid.UUID":
		return &types.Schema{Type: "string", Format: "uuid"}, true
	case "json.RawMessage":
		return &types.Schema{}, true
	}
	return nil, false
}

// cutMapType splits "map[K]V" into K and V, honoring nested brackets in K.
func cutMapType(typ string) (key, value string, ok bool) {
	rest := strings.TrimPrefix(typ, "map[")
	depth := 1
	for i, r := range rest {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return rest[:i], rest[i+1:], true
			}
		}
	}
	return "", "", false
}

func embeddedNames(embedded []string) []string {
	names := make([]string, 0, len(embedded))
	for _, e := range embedded {
		names = append(names, types.SimpleName(e))
	}
	return names
}

// applyValidationTags maps go-playground validate rules onto schema constraints.
func applyValidationTags(schema *types.Schema, tags map[string]string) {
	if schema.Ref != "" {
		return
	}
	for key, value := range tags {
		switch key {
		case "min", "gte":
			applyBound(schema, value, true)
		case "max", "lte":
			applyBound(schema, value, false)
		case "len":
			applyBound(schema, value, true)
			applyBound(schema, value, false)
		case "email":
			schema.Format = "email"
		case "url", "uri":
			schema.Format = "uri"
		case "uuid", "uuid4":
			schema.Format = "uuid"
		case "datetime":
			schema.Format = "date-time"
		case "ip", "ipv4":
			schema.Format = "ipv4"
		case "ipv6":
			schema.Format = "ipv6"
		case "hostname":
			schema.Format = "hostname"
		case "alphanum":
			schema.Pattern = "^[a-zA-Z0-9]+$"
		case "alpha":
			schema.Pattern = "^[a-zA-Z]+$"
		case "numeric":
			schema.Pattern = "^[0-9]+$"
		case "oneof":
			for _, v := range strings.Fields(value) {
				schema.Enum = append(schema.Enum, v)
			}
		}
	}
}

// applyBound sets the lower or upper constraint matching the schema type.
func applyBound(schema *types.Schema, value string, lower bool) {
	switch schema.Type {
	case "string", "array":
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		switch {
		case schema.Type == "string" && lower:
			schema.MinLength = &n
		case schema.Type == "string":
			schema.MaxLength = &n
		case lower:
			schema.MinItems = &n
		default:
			schema.MaxItems = &n
		}
	case "integer", "number":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return
		}
		if lower {
			schema.Minimum = &f
		} else {
			schema.Maximum = &f
		}
	}
}
