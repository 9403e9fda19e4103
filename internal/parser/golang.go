// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser turns Go and Java sources into the declarations annotation
// discovery works on: handler functions with their doc comments or
// annotations, and data type definitions.
package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"reflect"
	"strings"
)

// GoParser provides Go AST parsing capabilities.
type GoParser struct {
	fset *token.FileSet
}

// NewGoParser creates a new Go parser.
func NewGoParser() *GoParser {
	return &GoParser{
		fset: token.NewFileSet(),
	}
}

// ParsedFile is a parsed Go source file.
type ParsedFile struct {
	Path string

	// Package is the package clause name
	Package string

	AST     *ast.File
	FileSet *token.FileSet
}

// FuncDecl is a top-level function or method declaration.
type FuncDecl struct {
	// Name is the function name
	Name string

	// Receiver is the receiver base type for methods ("UserHandler" for
	// "func (h *UserHandler) List"), empty for plain functions
	Receiver string

	// Doc holds the doc comment lines with comment markers removed
	Doc []string

	// Line is the 1-based line of the func keyword
	Line int
}

// QualifiedName returns "Receiver.Name" for methods and Name otherwise.
func (f FuncDecl) QualifiedName() string {
	if f.Receiver == "" {
		return f.Name
	}
	return f.Receiver + "." + f.Name
}

// TypeKind classifies Go types for schema conversion.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindStruct
	KindSlice
	KindMap
	KindPointer
	KindInterface
	KindTime
	KindUnknown
)

// StructField is a field of a Go struct.
type StructField struct {
	// Name is the Go field name
	Name string

	// JSONName is the json tag name, the field name when untagged, or "-"
	JSONName string

	// Type is the Go type as written ("*string", "[]Item", "map[string]int")
	Type string

	TypeKind TypeKind

	// ElementType is the element type for slices and the value type for maps
	ElementType string

	// KeyType is the key type for maps
	KeyType string

	Omitempty  bool
	IsPointer  bool
	IsRequired bool

	// ValidationTags holds validate tag constraints ("min" -> "1")
	ValidationTags map[string]string

	Description string

	// NestedStruct holds the fields of an inline struct type
	NestedStruct []StructField

	Position token.Position
}

// StructDefinition is a named Go struct type.
type StructDefinition struct {
	Name        string
	Fields      []StructField
	Description string

	// Embedded holds the type names of embedded fields
	Embedded []string

	Position token.Position
}

// Parse parses Go source code.
func (p *GoParser) Parse(filename string, src []byte) (*ParsedFile, error) {
	file, err := parser.ParseFile(p.fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go source: %w", err)
	}

	return &ParsedFile{
		Path:    filename,
		Package: file.Name.Name,
		AST:     file,
		FileSet: p.fset,
	}, nil
}

// ParseSource parses Go source code from a string.
func (p *GoParser) ParseSource(filename, source string) (*ParsedFile, error) {
	return p.Parse(filename, []byte(source))
}

// ParseFile parses a Go source file from disk.
func (p *GoParser) ParseFile(path string) (*ParsedFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return p.Parse(path, src)
}

// ExtractFuncs returns every top-level function and method in source order.
func (p *GoParser) ExtractFuncs(pf *ParsedFile) []FuncDecl {
	var funcs []FuncDecl

	for _, decl := range pf.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		fd := FuncDecl{
			Name: fn.Name.Name,
			Line: p.fset.Position(fn.Pos()).Line,
		}
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			fd.Receiver = receiverType(fn.Recv.List[0].Type)
		}
		if fn.Doc != nil {
			fd.Doc = docLines(fn.Doc)
		}
		funcs = append(funcs, fd)
	}

	return funcs
}

// ExtractStructs returns every named struct type in source order.
func (p *GoParser) ExtractStructs(pf *ParsedFile) []StructDefinition {
	var structs []StructDefinition

	for _, decl := range pf.AST.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}

			def := StructDefinition{
				Name:     typeSpec.Name.Name,
				Position: p.fset.Position(typeSpec.Pos()),
			}
			def.Fields, def.Embedded = p.parseFields(structType)

			// A grouped declaration's doc belongs to the group, not each type.
			switch {
			case typeSpec.Doc != nil:
				def.Description = strings.TrimSpace(typeSpec.Doc.Text())
			case genDecl.Doc != nil && len(genDecl.Specs) == 1:
				def.Description = strings.TrimSpace(genDecl.Doc.Text())
			}

			structs = append(structs, def)
		}
	}

	return structs
}

func (p *GoParser) parseFields(st *ast.StructType) (fields []StructField, embedded []string) {
	if st.Fields == nil {
		return nil, nil
	}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			embedded = append(embedded, typeString(field.Type))
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			fields = append(fields, p.parseField(name.Name, field))
		}
	}
	return fields, embedded
}

func (p *GoParser) parseField(name string, field *ast.Field) StructField {
	sf := StructField{
		Name:           name,
		JSONName:       name,
		Type:           typeString(field.Type),
		TypeKind:       classifyType(field.Type),
		ValidationTags: make(map[string]string),
		Position:       p.fset.Position(field.Pos()),
	}
	sf.IsPointer = sf.TypeKind == KindPointer

	expr := field.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.ArrayType:
		sf.ElementType = typeString(t.Elt)
	case *ast.MapType:
		sf.KeyType = typeString(t.Key)
		sf.ElementType = typeString(t.Value)
	case *ast.StructType:
		sf.NestedStruct, _ = p.parseFields(t)
	}

	if field.Tag != nil {
		sf.parseTag(field.Tag.Value)
	}

	switch {
	case field.Doc != nil:
		sf.Description = strings.TrimSpace(field.Doc.Text())
	case field.Comment != nil:
		sf.Description = strings.TrimSpace(field.Comment.Text())
	}

	return sf
}

// parseTag reads the json and validate struct tags.
func (sf *StructField) parseTag(raw string) {
	tag := reflect.StructTag(strings.Trim(raw, "`"))

	if jsonTag, ok := tag.Lookup("json"); ok {
		name, opts, _ := strings.Cut(jsonTag, ",")
		if name != "" {
			sf.JSONName = name
		}
		for _, opt := range strings.Split(opts, ",") {
			if opt == "omitempty" {
				sf.Omitempty = true
			}
		}
	}

	if validateTag, ok := tag.Lookup("validate"); ok {
		sf.parseValidateTag(validateTag)
	}
}

// parseValidateTag parses go-playground style rules: "required,min=1,email".
func (sf *StructField) parseValidateTag(tag string) {
	for _, rule := range strings.Split(tag, ",") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		if rule == "required" {
			sf.IsRequired = true
			continue
		}
		if key, value, ok := strings.Cut(rule, "="); ok && key != "" {
			sf.ValidationTags[key] = value
		} else {
			sf.ValidationTags[rule] = "true"
		}
	}
}

func docLines(doc *ast.CommentGroup) []string {
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	}
	return ""
}

// typeString renders a type expression the way it is written in source.
func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeString(t.Elt)
		}
		if lit, ok := t.Len.(*ast.BasicLit); ok {
			return "[" + lit.Value + "]" + typeString(t.Elt)
		}
		return "[...]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.StructType:
		return "struct{}"
	case *ast.ChanType:
		return "chan"
	case *ast.FuncType:
		return "func"
	}
	return "unknown"
}

func classifyType(expr ast.Expr) TypeKind {
	switch t := expr.(type) {
	case *ast.Ident:
		if t.Name == "any" {
			return KindInterface
		}
		if IsGoPrimitive(t.Name) {
			return KindPrimitive
		}
		// Named types are assumed to be structs.
		return KindStruct
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "time" && t.Sel.Name == "Time" {
			return KindTime
		}
		return KindUnknown
	case *ast.StarExpr:
		return KindPointer
	case *ast.ArrayType:
		return KindSlice
	case *ast.MapType:
		return KindMap
	case *ast.InterfaceType:
		return KindInterface
	case *ast.StructType:
		return KindStruct
	}
	return KindUnknown
}

// IsGoPrimitive reports whether name is a predeclared Go scalar type.
func IsGoPrimitive(name string) bool {
	switch name {
	case "string", "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64", "bool", "byte", "rune":
		return true
	}
	return false
}
