// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/api2spec/apidoc/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// Section names the part of the document a change belongs to.
type Section string

const (
	SectionOperation Section = "operation"
	SectionResponse  Section = "response"
	SectionSchema    Section = "schema"
	SectionSecurity  Section = "security"
)

// Change is a single difference between two documents.
type Change struct {
	Type    DiffType
	Section Section

	// Target identifies the changed item, e.g. "GET /users" or "UserDto"
	Target string

	// Detail is a short human description
	Detail string

	// Breaking is set when clients of the old document may fail
	Breaking bool
}

// DiffResult contains the differences between two OpenAPI documents.
type DiffResult struct {
	Changes []Change

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.Changes) == 0
}

// Count returns the number of changes in a section with the given type.
func (d *DiffResult) Count(section Section, typ DiffType) int {
	n := 0
	for _, c := range d.Changes {
		if c.Section == section && c.Type == typ {
			n++
		}
	}
	return n
}

// Differ compares two OpenAPI documents.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff compares the old document a with the new document b.
func (d *Differ) Diff(a, b *types.OpenAPI) *DiffResult {
	if a == nil {
		a = &types.OpenAPI{}
	}
	if b == nil {
		b = &types.OpenAPI{}
	}

	result := &DiffResult{}
	d.diffPaths(a.Paths, b.Paths, result)
	d.diffSchemas(schemasOf(a), schemasOf(b), result)
	d.diffSecurity(schemesOf(a), schemesOf(b), result)

	for _, c := range result.Changes {
		if c.Breaking {
			result.HasBreakingChanges = true
			break
		}
	}
	result.Summary = Summarize(result)

	return result
}

func (d *Differ) diffPaths(a, b map[string]*types.PathItem, result *DiffResult) {
	for _, path := range unionKeys(a, b) {
		aItem, bItem := a[path], b[path]
		if aItem == nil {
			aItem = &types.PathItem{}
		}
		if bItem == nil {
			bItem = &types.PathItem{}
		}

		for _, verb := range types.Verbs {
			aOp, bOp := aItem.Operation(verb), bItem.Operation(verb)
			target := string(verb) + " " + path

			switch {
			case aOp == nil && bOp == nil:
			case aOp == nil:
				result.add(Change{Type: DiffTypeAdded, Section: SectionOperation, Target: target, Detail: "Added " + target})
			case bOp == nil:
				result.add(Change{Type: DiffTypeRemoved, Section: SectionOperation, Target: target, Detail: "Removed " + target, Breaking: true})
			default:
				d.diffOperation(target, aOp, bOp, result)
			}
		}
	}
}

func (d *Differ) diffOperation(target string, a, b *types.Operation, result *DiffResult) {
	if a.Summary != b.Summary ||
		a.Description != b.Description ||
		a.OperationID != b.OperationID ||
		a.Deprecated != b.Deprecated ||
		!slices.Equal(a.Tags, b.Tags) ||
		!reflect.DeepEqual(a.Parameters, b.Parameters) {
		result.add(Change{Type: DiffTypeModified, Section: SectionOperation, Target: target, Detail: "Modified " + target})
	}

	for _, code := range unionOrdered(a.Responses.Keys(), b.Responses.Keys()) {
		aResp, inA := a.Responses.Get(code)
		bResp, inB := b.Responses.Get(code)
		responseTarget := target + " " + code

		switch {
		case !inA:
			result.add(Change{Type: DiffTypeAdded, Section: SectionResponse, Target: responseTarget, Detail: fmt.Sprintf("Added response %s to %s", code, target)})
		case !inB:
			result.add(Change{Type: DiffTypeRemoved, Section: SectionResponse, Target: responseTarget, Detail: fmt.Sprintf("Removed response %s from %s", code, target), Breaking: true})
		case !reflect.DeepEqual(aResp, bResp):
			result.add(Change{Type: DiffTypeModified, Section: SectionResponse, Target: responseTarget, Detail: fmt.Sprintf("Modified response %s of %s", code, target)})
		}
	}
}

func (d *Differ) diffSchemas(a, b map[string]*types.Schema, result *DiffResult) {
	for _, name := range unionKeys(a, b) {
		aSchema, inA := a[name]
		bSchema, inB := b[name]

		switch {
		case !inA:
			result.add(Change{Type: DiffTypeAdded, Section: SectionSchema, Target: name, Detail: "Added schema: " + name})
		case !inB:
			result.add(Change{Type: DiffTypeRemoved, Section: SectionSchema, Target: name, Detail: "Removed schema: " + name, Breaking: true})
		case !reflect.DeepEqual(aSchema, bSchema):
			result.add(Change{Type: DiffTypeModified, Section: SectionSchema, Target: name, Detail: "Modified schema: " + name})
		}
	}
}

func (d *Differ) diffSecurity(a, b *types.OrderedMap[*types.SecurityScheme], result *DiffResult) {
	for _, name := range unionOrdered(a.Keys(), b.Keys()) {
		aScheme, inA := a.Get(name)
		bScheme, inB := b.Get(name)

		switch {
		case !inA:
			result.add(Change{Type: DiffTypeAdded, Section: SectionSecurity, Target: name, Detail: "Added security scheme: " + name})
		case !inB:
			result.add(Change{Type: DiffTypeRemoved, Section: SectionSecurity, Target: name, Detail: "Removed security scheme: " + name, Breaking: true})
		case !reflect.DeepEqual(aScheme, bScheme):
			result.add(Change{Type: DiffTypeModified, Section: SectionSecurity, Target: name, Detail: "Modified security scheme: " + name, Breaking: aScheme.Type != bScheme.Type})
		}
	}
}

// Summarize creates a human-readable summary of changes.
func Summarize(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	for _, section := range []Section{SectionOperation, SectionResponse, SectionSchema, SectionSecurity} {
		for _, typ := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
			if n := result.Count(section, typ); n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s(s) %s", n, section, typ))
			}
		}
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

func (d *DiffResult) add(c Change) {
	d.Changes = append(d.Changes, c)
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== OpenAPI Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	changes := slices.Clone(result.Changes)
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Section != changes[j].Section {
			return changes[i].Section < changes[j].Section
		}
		return changes[i].Target < changes[j].Target
	})

	var section Section
	for _, c := range changes {
		if c.Section != section {
			if section != "" {
				sb.WriteString("\n")
			}
			section = c.Section
			fmt.Fprintf(&sb, "--- %s changes ---\n", section)
		}

		symbol := "~ "
		switch c.Type {
		case DiffTypeAdded:
			symbol = "+ "
		case DiffTypeRemoved:
			symbol = "- "
		}
		sb.WriteString(symbol)
		sb.WriteString(c.Target)
		if c.Breaking {
			sb.WriteString(" (breaking)")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func schemasOf(doc *types.OpenAPI) map[string]*types.Schema {
	if doc.Components == nil {
		return nil
	}
	return doc.Components.Schemas
}

func schemesOf(doc *types.OpenAPI) *types.OrderedMap[*types.SecurityScheme] {
	if doc.Components == nil {
		return nil
	}
	return doc.Components.SecuritySchemes
}

// unionKeys returns the sorted keys present in either map.
func unionKeys[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// unionOrdered returns a's keys followed by b's keys not in a.
func unionOrdered(a, b []string) []string {
	keys := slices.Clone(a)
	for _, k := range b {
		if !slices.Contains(a, k) {
			keys = append(keys, k)
		}
	}
	return keys
}
