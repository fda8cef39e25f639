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
	"encoding"
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/sigstore/streamdigest/pkg/errdefs"
	"github.com/sigstore/streamdigest/pkg/hashing/digests"
	hashengines "github.com/sigstore/streamdigest/pkg/hashing/engines"
)

var (
	_ hashengines.StreamingHashEngine = (*GenericHashEngine)(nil)
	_ hashengines.Cloner              = (*GenericHashEngine)(nil)
)

// HashFactoryFunc creates a new hash.Hash instance with empty state.
type HashFactoryFunc func() (hash.Hash, error)

// GenericHashEngine adapts any hash.Hash to StreamingHashEngine.
//
// Clone is supported when the underlying hash implements
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler, which is true of
// the standard library digests and the x/crypto BLAKE2 digests, or when it
// duplicates itself like the x/crypto SHA-3 and Keccak states.
type GenericHashEngine struct {
	name    string
	size    int
	factory HashFactoryFunc
	h       hash.Hash
}

// NewGenericHashEngine creates a new generic hash engine.
//
// Parameters:
//   - name: The canonical name of the hash algorithm (e.g., "sha512", "blake2b-256")
//   - size: The size of the digest in bytes
//   - factory: A function that creates new hash.Hash instances
//   - initialData: Optional initial data to hash immediately
func NewGenericHashEngine(name string, size int, factory HashFactoryFunc, initialData []byte) (*GenericHashEngine, error) {
	h, err := factory()
	if err != nil {
		return nil, err
	}

	engine := &GenericHashEngine{
		name:    name,
		size:    size,
		factory: factory,
		h:       h,
	}
	engine.Update(initialData)

	return engine, nil
}

// Update appends additional bytes to the data to be hashed.
func (e *GenericHashEngine) Update(data []byte) {
	if len(data) > 0 {
		// hash.Hash.Write never returns an error
		_, _ = e.h.Write(data)
	}
}

// Reset clears the hash state and optionally seeds it with initial data.
func (e *GenericHashEngine) Reset(data []byte) {
	e.h.Reset()
	e.Update(data)
}

// Compute returns the digest of everything written so far. The hash state
// is left untouched, so updates may continue afterwards.
func (e *GenericHashEngine) Compute() (digests.Digest, error) {
	return digests.NewDigest(e.name, e.h.Sum(nil)), nil
}

// DigestName returns the canonical name of the hash algorithm.
func (e *GenericHashEngine) DigestName() string {
	return e.name
}

// DigestSize returns the size, in bytes, of digests produced by this engine.
func (e *GenericHashEngine) DigestSize() int {
	return e.size
}

// Clone returns an engine holding a copy of the current hash state.
func (e *GenericHashEngine) Clone() (hashengines.StreamingHashEngine, error) {
	if c, ok := e.h.(sha3Cloner); ok {
		if h, ok := c.Clone().(hash.Hash); ok {
			return e.withHash(h), nil
		}
	}

	marshaler, ok := e.h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedOperation, "clone",
			"%s state cannot be duplicated", e.name)
	}
	state, err := marshaler.MarshalBinary()
	if err != nil {
		return nil, errdefs.New(errdefs.ErrTypeUnsupportedOperation, "clone",
			e.name+" state cannot be duplicated", err)
	}

	h, err := e.factory()
	if err != nil {
		return nil, err
	}
	unmarshaler, ok := h.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, errdefs.Newf(errdefs.ErrTypeUnsupportedOperation, "clone",
			"%s state cannot be restored", e.name)
	}
	if err := unmarshaler.UnmarshalBinary(state); err != nil {
		return nil, errdefs.New(errdefs.ErrTypeUnsupportedOperation, "clone",
			e.name+" state cannot be restored", err)
	}

	return e.withHash(h), nil
}

// sha3Cloner is implemented by the x/crypto SHA-3 and Keccak states. The
// copy keeps the fixed output length of the original.
type sha3Cloner interface {
	Clone() sha3.ShakeHash
}

func (e *GenericHashEngine) withHash(h hash.Hash) *GenericHashEngine {
	return &GenericHashEngine{
		name:    e.name,
		size:    e.size,
		factory: e.factory,
		h:       h,
	}
}
