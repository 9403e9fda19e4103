// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaParser parses Java sources with tree-sitter.
type JavaParser struct {
	parser *sitter.Parser
}

// NewJavaParser creates a new Java parser.
func NewJavaParser() *JavaParser {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return &JavaParser{
		parser: parser,
	}
}

// ParsedJavaFile is a parsed Java compilation unit.
type ParsedJavaFile struct {
	Path string

	// Package is the declared package ("com.example.api")
	Package string

	// Classes holds class and interface declarations, nested ones included
	Classes []JavaClass
}

// JavaClass is a class or interface declaration.
type JavaClass struct {
	Name        string
	Annotations []JavaAnnotation
	Methods     []JavaMethod

	// Line is the 1-based line of the class name
	Line int
}

// JavaMethod is a method declaration.
type JavaMethod struct {
	Name        string
	Annotations []JavaAnnotation

	// ReturnType is the declared return type as written
	ReturnType string

	Line int
}

// JavaAnnotation is an annotation use such as @GetMapping("/users").
//
// Attribute values are kept as source text with string literals unquoted.
// Array initializers are flattened into several values, and a lone
// positional argument is stored under "value".
type JavaAnnotation struct {
	// Name is the simple annotation name ("GetMapping")
	Name string

	Attributes map[string][]string

	Line int
}

// Values returns the values of an attribute, or nil.
func (a *JavaAnnotation) Values(key string) []string {
	return a.Attributes[key]
}

// Value returns the first value of an attribute.
func (a *JavaAnnotation) Value(key string) (string, bool) {
	values := a.Attributes[key]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Has reports whether the attribute was written.
func (a *JavaAnnotation) Has(key string) bool {
	_, ok := a.Attributes[key]
	return ok
}

// Parse parses Java source code.
func (p *JavaParser) Parse(filename string, content []byte) (*ParsedJavaFile, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Java: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("failed to get root node")
	}

	pf := &ParsedJavaFile{
		Path: filename,
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			pf.Package = packageName(child, content)
		case "class_declaration", "interface_declaration":
			pf.Classes = append(pf.Classes, p.parseClass(child, content)...)
		}
	}

	return pf, nil
}

// parseClass returns the class and any classes nested in its body.
func (p *JavaParser) parseClass(node *sitter.Node, content []byte) []JavaClass {
	class := JavaClass{}
	if name := node.ChildByFieldName("name"); name != nil {
		class.Name = name.Content(content)
		class.Line = int(name.StartPoint().Row) + 1
	}
	class.Annotations = annotations(node, content)

	var nested []JavaClass
	body := node.ChildByFieldName("body")
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			switch member.Type() {
			case "method_declaration":
				class.Methods = append(class.Methods, p.parseMethod(member, content))
			case "class_declaration", "interface_declaration":
				nested = append(nested, p.parseClass(member, content)...)
			}
		}
	}

	return append([]JavaClass{class}, nested...)
}

func (p *JavaParser) parseMethod(node *sitter.Node, content []byte) JavaMethod {
	method := JavaMethod{
		Annotations: annotations(node, content),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		method.Name = name.Content(content)
		method.Line = int(name.StartPoint().Row) + 1
	}
	if typ := node.ChildByFieldName("type"); typ != nil {
		method.ReturnType = typ.Content(content)
	}
	return method
}

func packageName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return child.Content(content)
		}
	}
	return ""
}

// annotations reads the annotations in a declaration's modifiers.
func annotations(decl *sitter.Node, content []byte) []JavaAnnotation {
	var result []JavaAnnotation

	for i := 0; i < int(decl.NamedChildCount()); i++ {
		mods := decl.NamedChild(i)
		if mods.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(mods.NamedChildCount()); j++ {
			node := mods.NamedChild(j)
			if node.Type() != "annotation" && node.Type() != "marker_annotation" {
				continue
			}
			result = append(result, parseAnnotation(node, content))
		}
	}

	return result
}

func parseAnnotation(node *sitter.Node, content []byte) JavaAnnotation {
	anno := JavaAnnotation{
		Attributes: make(map[string][]string),
		Line:       int(node.StartPoint().Row) + 1,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		full := name.Content(content)
		anno.Name = full[strings.LastIndex(full, ".")+1:]
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return anno
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() == "element_value_pair" {
			key := arg.ChildByFieldName("key")
			value := arg.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			anno.Attributes[key.Content(content)] = elementValues(value, content)
			continue
		}
		if arg.Type() == "comment" {
			continue
		}
		anno.Attributes["value"] = elementValues(arg, content)
	}

	return anno
}

// elementValues renders an annotation element value, flattening arrays.
func elementValues(node *sitter.Node, content []byte) []string {
	if node.Type() == "element_value_array_initializer" {
		values := []string{}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			values = append(values, elementValues(child, content)...)
		}
		return values
	}
	return []string{elementText(node, content)}
}

func elementText(node *sitter.Node, content []byte) string {
	switch node.Type() {
	case "string_literal":
		return unquoteJava(node.Content(content))
	case "binary_expression":
		// "a" + "b"
		left := node.ChildByFieldName("left")
		right := node.ChildByFieldName("right")
		if left != nil && right != nil {
			return elementText(left, content) + elementText(right, content)
		}
	case "parenthesized_expression":
		if node.NamedChildCount() == 1 {
			return elementText(node.NamedChild(0), content)
		}
	}
	return node.Content(content)
}

func unquoteJava(lit string) string {
	if strings.HasPrefix(lit, `"""`) {
		return strings.TrimSpace(strings.Trim(lit, `"`))
	}
	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}
	return strings.Trim(lit, `"`)
}

// GetAnnotation returns the method annotation with the given simple name, or nil.
func (m *JavaMethod) GetAnnotation(name string) *JavaAnnotation {
	return findAnnotation(m.Annotations, name)
}

// GetAnnotation returns the class annotation with the given simple name, or nil.
func (c *JavaClass) GetAnnotation(name string) *JavaAnnotation {
	return findAnnotation(c.Annotations, name)
}

func findAnnotation(annos []JavaAnnotation, name string) *JavaAnnotation {
	for i := range annos {
		if annos[i].Name == name {
			return &annos[i]
		}
	}
	return nil
}
