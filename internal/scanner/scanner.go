// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIncludePatterns selects every Go and Java file.
var DefaultIncludePatterns = []string{"**/*.go", "**/*.java"}

// Config holds scanner configuration.
type Config struct {
	// BasePath is the directory patterns are relative to (defaults to ".")
	BasePath string

	// IncludePatterns are doublestar globs a file must match (e.g., "**/*.go")
	IncludePatterns []string

	// ExcludePatterns are doublestar globs that reject files and prune directories
	ExcludePatterns []string
}

// Scanner discovers source files in a project.
type Scanner struct {
	config   Config
	basePath string
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = DefaultIncludePatterns
	}

	basePath, err := filepath.Abs(config.BasePath)
	if err != nil {
		basePath = config.BasePath
	}

	return &Scanner{
		config:   config,
		basePath: basePath,
	}
}

// BasePath returns the absolute scan base.
func (s *Scanner) BasePath() string {
	return s.basePath
}

// Scan discovers all source files under the base path.
func (s *Scanner) Scan() ([]SourceFile, error) {
	return s.ScanPath(s.basePath)
}

// ScanPath scans a file or directory. Patterns are still evaluated relative
// to the base path.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		if !s.Matches(absPath) {
			return nil, nil
		}
		file, err := s.load(absPath, info)
		if err != nil {
			return nil, err
		}
		return []SourceFile{file}, nil
	}

	var files []SourceFile
	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if d.IsDir() {
			if s.excludesDir(filePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.Matches(filePath) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		file, err := s.load(filePath, info)
		if err != nil {
			// Skip files we can't read
			return nil
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths scans several paths, returning each file once.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	if len(paths) == 0 {
		return s.Scan()
	}

	var allFiles []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.basePath, path)
		}
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	return allFiles, nil
}

// Matches reports whether a file path would be picked up by a scan.
// Watch mode uses it to filter file system events.
func (s *Scanner) Matches(path string) bool {
	if !IsSupportedFile(path) {
		return false
	}

	rel := s.relPath(path)
	if matchesAny(rel, s.config.ExcludePatterns) {
		return false
	}
	return matchesAny(rel, s.config.IncludePatterns)
}

// Dirs returns every non-excluded directory under the given roots.
func (s *Scanner) Dirs(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{s.basePath}
	}

	var dirs []string
	seen := make(map[string]bool)
	for _, root := range roots {
		if !filepath.IsAbs(root) {
			root = filepath.Join(s.basePath, root)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !info.IsDir() {
			root = filepath.Dir(root)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if s.excludesDir(path) {
				return filepath.SkipDir
			}
			if !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}
	return dirs, nil
}

func (s *Scanner) load(path string, info fs.FileInfo) (SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return SourceFile{
		Path:     path,
		RelPath:  s.relPath(path),
		Language: DetectLanguage(path),
		Content:  content,
		ModTime:  info.ModTime(),
	}, nil
}

func (s *Scanner) relPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// excludesDir reports whether a directory is pruned by an exclude pattern,
// e.g. "vendor" by "vendor/**".
func (s *Scanner) excludesDir(path string) bool {
	rel := s.relPath(path)
	if rel == "." || strings.HasPrefix(rel, "../") {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")
		if rel == dirPattern {
			return true
		}
		if matched, _ := doublestar.Match(dirPattern, rel); matched && dirPattern != pattern {
			return true
		}
	}
	return false
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
