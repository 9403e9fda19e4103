// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner finds the handler source files that annotation discovery reads.
package scanner

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Languages recognized by discovery.
const (
	LanguageGo   = "go"
	LanguageJava = "java"
)

// SourceFile is a discovered source file with its content loaded.
type SourceFile struct {
	// Path is the absolute path to the file
	Path string

	// RelPath is the slash-separated path relative to the scan base
	RelPath string

	// Language is LanguageGo or LanguageJava
	Language string

	Content []byte

	ModTime time.Time
}

// Dir returns the slash-separated directory of RelPath, or "" for the base directory.
func (f SourceFile) Dir() string {
	dir := filepath.ToSlash(filepath.Dir(f.RelPath))
	if dir == "." {
		return ""
	}
	return dir
}

var languageExtensions = map[string]string{
	".go":   LanguageGo,
	".java": LanguageJava,
}

// DetectLanguage returns the language for a file path, or "" when unsupported.
func DetectLanguage(path string) string {
	return languageExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the supported file extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(languageExtensions))
	for ext := range languageExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupportedFile reports whether path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectLanguage(path) != ""
}
