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

// Package hashengines defines the hashing capability that digest sessions
// drive, and a name-keyed registry of engine factories.
//
// An engine accepts bytes through Update and can be asked for its current
// digest at any time through Compute; reading a digest never invalidates
// further updates. Sealing the input is the caller's job.
package hashengines

import (
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
)

// HashEngine reports the digest of everything written so far.
type HashEngine interface {
	// Compute returns the digest of all bytes appended so far. The returned
	// Digest's Hex method is the engine's lowercase hexadecimal rendering.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical name of the hash algorithm.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this engine.
	DigestSize() int
}

// Streaming feeds data to a hash engine incrementally.
type Streaming interface {
	// Update appends bytes to the hash state, in call order.
	Update(data []byte)

	// Reset clears the hash state and optionally seeds it with data.
	Reset(data []byte)
}

// StreamingHashEngine combines HashEngine and Streaming for incremental hashing.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}

// Cloner is implemented by engines that can duplicate their accumulated
// state. The clone must not share mutable state with the receiver.
type Cloner interface {
	Clone() (StreamingHashEngine, error)
}
