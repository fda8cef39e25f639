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

// Package manifest pairs file paths with digests and reads and writes them
// as checksum lists.
package manifest

import (
	"sort"

	"github.com/sigstore/streamdigest/pkg/hashing/digests"
)

// Entry is one path and its digest.
type Entry struct {
	Path   string
	Digest digests.Digest
}

// Manifest maps paths to digests computed with one algorithm.
type Manifest struct {
	algorithm string
	items     map[string]digests.Digest
}

// New builds a manifest. Later entries for the same path replace earlier
// ones.
func New(algorithm string, entries ...Entry) *Manifest {
	m := &Manifest{
		algorithm: algorithm,
		items:     make(map[string]digests.Digest, len(entries)),
	}
	for _, e := range entries {
		m.Add(e.Path, e.Digest)
	}
	return m
}

// Algorithm returns the algorithm the manifest was built with.
func (m *Manifest) Algorithm() string {
	return m.algorithm
}

// Add records the digest of path.
func (m *Manifest) Add(path string, d digests.Digest) {
	m.items[path] = d
}

// Lookup returns the digest recorded for path.
func (m *Manifest) Lookup(path string) (digests.Digest, bool) {
	d, ok := m.items[path]
	return d, ok
}

func (m *Manifest) Len() int {
	return len(m.items)
}

// Entries returns every entry sorted by path.
func (m *Manifest) Entries() []Entry {
	paths := make([]string, 0, len(m.items))
	for p := range m.items {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]Entry, 0, len(paths))
	for _, p := range paths {
		out = append(out, Entry{Path: p, Digest: m.items[p]})
	}
	return out
}

// Equal reports whether both manifests hold the same path to digest
// mapping. Digests compare by algorithm and value.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == other {
		return true
	}
	if other == nil || len(m.items) != len(other.items) {
		return false
	}
	for p, d := range m.items {
		od, ok := other.items[p]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}
