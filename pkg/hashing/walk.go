// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashing expands command-line paths into the files to digest.
package hashing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// gitRelatedPaths are skipped when IgnoreGitPaths is set.
var gitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// Walker expands directories into the regular files below them.
type Walker struct {
	// IgnorePaths are skipped along with everything below them. Relative
	// entries are matched against the path relative to the walked root.
	IgnorePaths []string
	// IgnoreGitPaths skips .git and related files.
	IgnoreGitPaths bool
	// AllowSymlinks follows symlinks to files. Symlinks to directories are
	// never followed.
	AllowSymlinks bool
}

// Expand returns the files named by paths, in order. Directories are
// replaced by the files below them in lexical order; other paths are kept
// as given.
func (w *Walker) Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, p)
			continue
		}
		files, err := w.walk(p)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

func (w *Walker) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && w.shouldIgnore(path, root) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !w.AllowSymlinks {
				return nil
			}
			target, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to resolve symlink %s: %w", path, err)
			}
			if target.IsDir() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

func (w *Walker) shouldIgnore(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	for _, ignored := range w.IgnorePaths {
		compareWith := rel
		if filepath.IsAbs(ignored) {
			compareWith = path
		}
		ignored = filepath.Clean(ignored)
		if compareWith == ignored || strings.HasPrefix(compareWith, ignored+string(filepath.Separator)) {
			return true
		}
	}

	if w.IgnoreGitPaths {
		for _, g := range gitRelatedPaths {
			if rel == g || strings.HasPrefix(rel, g+string(filepath.Separator)) {
				return true
			}
		}
	}
	return false
}
