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

package memory

import (
	"fmt"

	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

// ComputeRootDigest hashes the raw bytes of each digest, in order, with the
// named algorithm.
//
// It condenses the per-file digests of a multi-file run into one value:
//
//	root, err := memory.ComputeRootDigest("sha256", []digests.Digest{d1, d2})
func ComputeRootDigest(algorithm string, digestList []digests.Digest) (digests.Digest, error) {
	hasher, err := hashengines.Create(algorithm)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to create %s hasher: %w", algorithm, err)
	}

	for _, d := range digestList {
		hasher.Update(d.Value())
	}

	rootDigest, err := hasher.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to compute root digest: %w", err)
	}

	return rootDigest, nil
}
