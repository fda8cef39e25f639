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

package manifest

import "sort"

// Diff lists the differences between a computed and an expected manifest.
type Diff struct {
	// ExtraFiles are in actual but not in expected.
	ExtraFiles []string

	// MissingFiles are in expected but not in actual.
	MissingFiles []string

	// Mismatches are in both with different digests.
	Mismatches []Mismatch
}

// Mismatch is one path whose digests differ.
type Mismatch struct {
	Path         string
	ExpectedHash string
	ActualHash   string
}

// IsEmpty returns true if there are no differences.
func (d *Diff) IsEmpty() bool {
	return len(d.ExtraFiles) == 0 && len(d.MissingFiles) == 0 && len(d.Mismatches) == 0
}

// ComputeDiff compares actual against expected. All slices are sorted by
// path.
func ComputeDiff(actual, expected *Manifest) *Diff {
	diff := &Diff{
		ExtraFiles:   []string{},
		MissingFiles: []string{},
		Mismatches:   []Mismatch{},
	}

	for p := range actual.items {
		if _, ok := expected.items[p]; !ok {
			diff.ExtraFiles = append(diff.ExtraFiles, p)
		}
	}
	sort.Strings(diff.ExtraFiles)

	var common []string
	for p := range expected.items {
		if _, ok := actual.items[p]; ok {
			common = append(common, p)
		} else {
			diff.MissingFiles = append(diff.MissingFiles, p)
		}
	}
	sort.Strings(diff.MissingFiles)
	sort.Strings(common)

	for _, p := range common {
		a, e := actual.items[p], expected.items[p]
		if !a.Equal(e) {
			diff.Mismatches = append(diff.Mismatches, Mismatch{
				Path:         p,
				ExpectedHash: e.Hex(),
				ActualHash:   a.Hex(),
			})
		}
	}

	return diff
}
